package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pieforge/pieforge/pkg/errors"
)

// ReadDocument decodes a board document from r and validates it.
//
// Missing optional sections keep their zero values; callers that want the
// defaults applied should go through the pipeline's option validation,
// which fills them in. ReadDocument does not close r.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ImportDocument reads a board document from a JSON file at path.
func ImportDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f)
}
