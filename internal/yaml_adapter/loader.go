// Package yaml_adapter loads manifests authored in YAML. The document shape is
// identical to the engine's JSON manifests, including the externally tagged
// asset unions.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Format implements config.Loader.
func (l *Loader) Format() string { return "yaml" }

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".yaml", ".yml"} }

// Load decodes a YAML manifest, rejecting unknown keys and multi-document files.
func (l *Loader) Load(ctx context.Context, path string, kind config.Kind) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding YAML manifest.", "path", path, "kind", kind)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc := config.NewDocument(kind, l.Format(), path)
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(doc.Target()); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid YAML: a manifest file must hold a single document")
	}

	return doc, nil
}
