// Package schema defines the manifest contract of the learning engine: the
// course, lesson and exercise manifests and the assets they reference, with
// the struct tags used to decode them (json, yaml) and to check them
// (validate).
package schema
