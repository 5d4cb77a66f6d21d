package dataset

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pieforge/pieforge/pkg/errors"
)

// LoadFile reads a dataset from path, dispatching on the file extension.
// Supported extensions: .csv, .json, .xlsx.
func LoadFile(path string) (Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		defer f.Close()
		return ReadJSON(f)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return Dataset{}, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format: %s", filepath.Ext(path))
	}
}

// ReadCSV parses a dataset from CSV. The first record is the header; field
// types are inferred per column by attempting to parse every value as a
// number. Numeric columns become measures aggregated by sum.
func ReadCSV(r io.Reader) (Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse csv")
	}
	if len(records) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeInvalidDataset, "csv has no header row")
	}

	header := records[0]
	rows := make([]DataRow, 0, len(records)-1)
	numeric := make([]bool, len(header))
	for i := range numeric {
		numeric[i] = true
	}

	for _, rec := range records[1:] {
		row := make(DataRow, len(header))
		for i, id := range header {
			if i >= len(rec) {
				row[id] = nil
				continue
			}
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				row[id] = nil
				continue
			}
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				row[id] = f
			} else {
				row[id] = cell
				numeric[i] = false
			}
		}
		rows = append(rows, row)
	}

	ds := Dataset{Rows: rows}
	for i, id := range header {
		if err := errors.ValidateFieldID(id); err != nil {
			return Dataset{}, err
		}
		if numeric[i] {
			ds.Measures = append(ds.Measures, Measure{ID: id, Label: id, Type: FieldNumber, Aggregation: AggSum})
		} else {
			ds.Dimensions = append(ds.Dimensions, Dimension{ID: id, Label: id, Type: FieldString})
		}
	}
	return ds, nil
}

// ReadJSON parses a dataset from JSON. Two shapes are accepted: a full
// Dataset object with declared dimensions and measures, or a bare array of
// row objects, in which case descriptors are inferred like ReadCSV does.
func ReadJSON(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read json")
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var rows []DataRow
		if err := json.Unmarshal(data, &rows); err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse json rows")
		}
		return inferFromRows(rows), nil
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse json dataset")
	}
	for _, d := range ds.Dimensions {
		if err := errors.ValidateFieldID(d.ID); err != nil {
			return Dataset{}, err
		}
	}
	for _, m := range ds.Measures {
		if err := errors.ValidateFieldID(m.ID); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}

// inferFromRows synthesizes field descriptors for bare row arrays. A field
// is a measure when every non-nil value is numeric.
func inferFromRows(rows []DataRow) Dataset {
	numeric := make(map[string]bool)
	seen := make(map[string]bool)

	for _, row := range rows {
		for id, v := range row {
			if !seen[id] {
				seen[id] = true
				numeric[id] = true
			}
			switch v.(type) {
			case float64, float32, int, int64, json.Number, nil:
			default:
				numeric[id] = false
			}
		}
	}

	ds := Dataset{Rows: rows}
	for _, id := range stableFieldOrder(rows) {
		if numeric[id] {
			ds.Measures = append(ds.Measures, Measure{ID: id, Label: id, Type: FieldNumber, Aggregation: AggSum})
		} else {
			ds.Dimensions = append(ds.Dimensions, Dimension{ID: id, Label: id, Type: FieldString})
		}
	}
	return ds
}

// stableFieldOrder returns all field ids sorted lexically. Row objects
// arrive as Go maps, so the original JSON key order is already lost; a
// sorted order is the deterministic choice.
func stableFieldOrder(rows []DataRow) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, row := range rows {
		for id := range row {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}
