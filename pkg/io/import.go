package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// ReadJSON decodes a JSON diagram from r.
//
// Cells with an unknown "type" and malformed JSON are reported with
// [errors.ErrCodeInvalidInput]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	var d diagram.Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode diagram")
	}
	return &d, nil
}

// ImportJSON reads a JSON file at path and returns the decoded diagram.
// A missing file is reported with [errors.ErrCodeFileNotFound].
func ImportJSON(path string) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
