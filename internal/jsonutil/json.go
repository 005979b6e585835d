// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"io"
	"strings"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// String encodes v compactly, without the trailing newline or HTML escaping.
func String(v any) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// DecodeString decodes a single JSON value from s into v. Trailing data is an error.
func DecodeString(s string, v any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return &json.SyntaxError{Offset: dec.InputOffset()}
	}
	return nil
}
