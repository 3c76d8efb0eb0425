package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
)

// WriteJSON encodes d as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(d *diagram.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
