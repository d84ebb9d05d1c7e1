// Package render: JSON renderer.
// Serializes a Newsletter record into the metadata file written next to the
// issue's images.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/issuepipe/core"
)

// JSONRenderer produces the <slug>.json metadata document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals rec with two-space indentation. A missing date or issue
// number is written as null.
func (r *JSONRenderer) Render(rec core.Newsletter) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
