// Package cli is responsible for parsing command-line arguments, picking the
// command to run, and handling process-level concerns like exit codes. It
// layers explicitly set flags over the application's configuration.
package cli
