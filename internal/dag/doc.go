// Package dag holds the dependency graph between learning units. The builder
// uses it to reject dependency cycles among courses and among lessons, and to
// put courses in an order where every course comes after its prerequisites.
package dag
