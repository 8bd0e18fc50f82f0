package dto

import (
	"bytes"
	"encoding/json"
)

// MarshalIndent serializes a record or document the way the external
// storage and portal collaborators expect: 2-space indent, UTF-8 with
// non-ASCII glyphs (the Rupee sign in particular) left unescaped.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
