// Package json_adapter loads manifests written in the learning engine's native
// JSON format.
package json_adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
)

// Loader is the JSON implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new JSON manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Format implements config.Loader.
func (l *Loader) Format() string { return "json" }

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".json"} }

// Load decodes a JSON manifest. Unknown fields are rejected so that typos in
// field names surface instead of being silently dropped.
func (l *Loader) Load(ctx context.Context, path string, kind config.Kind) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding JSON manifest.", "path", path, "kind", kind)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := config.NewDocument(kind, l.Format(), path)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc.Target()); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: unexpected data after the manifest object")
	}

	return doc, nil
}
