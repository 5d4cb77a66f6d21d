package io

import (
	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/dataset"
	"github.com/pieforge/pieforge/pkg/errors"
	"github.com/pieforge/pieforge/pkg/geom"
	"github.com/pieforge/pieforge/pkg/style"
)

// Version is the current document format version. Importers accept only
// this version; the field exists so future revisions can migrate.
const Version = 1

// Document is the serializable description of one chart board.
type Document struct {
	Version   int                  `json:"version"`
	Dataset   dataset.Dataset      `json:"dataset"`
	Mapping   dataset.FieldMapping `json:"mapping,omitempty"`
	Config    geom.Config          `json:"config"`
	Overrides board.Overrides      `json:"overrides,omitempty"`
	Theme     style.Theme          `json:"theme,omitempty"`
}

// New creates a document with default config and theme around a dataset.
func New(ds dataset.Dataset) Document {
	return Document{
		Version: Version,
		Dataset: ds,
		Config:  geom.DefaultConfig(),
		Theme:   style.DefaultTheme(),
	}
}

// Validate checks the structural invariants an imported document must
// satisfy before it reaches the pipeline.
func (d Document) Validate() error {
	if d.Version != Version {
		return errors.New(errors.ErrCodeInvalidDocument, "unsupported document version %d (want %d)", d.Version, Version)
	}
	if len(d.Dataset.Rows) == 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no data rows")
	}
	for id, a := range d.Overrides.Annotations {
		if a.ID != id {
			return errors.New(errors.ErrCodeInvalidDocument, "annotation key %q does not match its id %q", id, a.ID)
		}
	}
	return nil
}
