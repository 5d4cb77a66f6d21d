package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pieforge/pieforge/pkg/errors"
)

// WriteDocument encodes a document as indented JSON and writes it to w.
// Map keys serialize in sorted order, so equal documents produce equal
// bytes and the output diffs cleanly under version control.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return nil
}

// ExportDocument writes a document to a JSON file at path.
func ExportDocument(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteDocument(d, f)
}
