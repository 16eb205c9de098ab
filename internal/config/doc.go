// Package config defines the format-agnostic model of a course library as it
// was found on disk, along with the Loader interface that turns a single
// manifest file into that model.
//
// The `config.Model` is the single input of the `builder` package. Concrete
// loaders for each authoring format (JSON, YAML, HCL) live in separate
// packages.
package config
