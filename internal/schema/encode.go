package schema

import (
	"bytes"
	"encoding/json"
)

// EncodeJSON renders v the way the engine's manifest files are written:
// two-space indentation, no HTML escaping and a trailing newline. Map keys are
// sorted by encoding/json, so equal values always encode to equal bytes.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
