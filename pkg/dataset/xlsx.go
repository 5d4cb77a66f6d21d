package dataset

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pieforge/pieforge/pkg/errors"
)

// LoadXLSX reads a dataset from the first sheet of an Excel workbook.
// The first row is the header; column types are inferred the same way as
// for CSV input.
func LoadXLSX(path string) (Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open workbook %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeInvalidDataset, "workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read sheet %s", sheets[0])
	}
	if len(records) == 0 {
		return Dataset{}, errors.New(errors.ErrCodeInvalidDataset, "sheet %s has no header row", sheets[0])
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
			if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
				row[id] = nil
				continue
			}
			cell := strings.TrimSpace(rec[i])
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				row[id] = v
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
