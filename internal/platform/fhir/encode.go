package fhir

import (
	"bytes"
	"encoding/json"
	"io"
)

// Encode writes v as two-space indented JSON. HTML characters are not
// escaped and non-ASCII text (German ICD labels) is written as UTF-8.
func Encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// MarshalPretty is Encode into a byte slice.
func MarshalPretty(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
