package config

import (
	"context"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Format names the authoring format, e.g. "json".
	Format() string

	// Extensions lists the file extensions (with the leading dot) handled by
	// this loader.
	Extensions() []string

	// Load decodes the manifest file at path, which is known to hold a
	// manifest of the given kind.
	Load(ctx context.Context, path string, kind Kind) (*Document, error)
}
