package dataset

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/montanaflynn/stats"
)

// Fallback field ids used when the dataset declares no dimensions or
// measures and the mapping gives no hint.
const (
	fallbackCategoryField = "category"
	fallbackValueField    = "value"
)

// Process groups the dataset's rows by the resolved category field,
// aggregates the resolved value field per group, and returns slices sorted
// by descending aggregated value. Ties keep the encounter order of their
// category, so re-running on reordered rows with the same label multiset
// yields the same slice id set.
//
// Percentages always sum to 100 within floating tolerance; when the total
// is zero every slice receives an equal share. Aggregates below zero clamp
// to zero, keeping percentages in [0, 100] and angular spans nonnegative.
// Process never fails: the worst input still yields a well-formed
// (possibly empty) result.
func Process(ds Dataset, mapping FieldMapping) ProcessedPieData {
	catField := resolveCategoryField(ds, mapping)
	valField := resolveValueField(ds, mapping)
	method := resolveAggregation(ds, mapping, valField)

	type group struct {
		label   string
		values  []float64
		indices []int
	}

	// Group rows by string-coerced category, preserving encounter order.
	var order []string
	groups := make(map[string]*group)
	for i, row := range ds.Rows {
		key := coerceString(row[catField])
		g, ok := groups[key]
		if !ok {
			g = &group{label: key}
			groups[key] = g
			order = append(order, key)
		}
		g.values = append(g.values, coerceNumber(row[valField]))
		g.indices = append(g.indices, i)
	}

	out := ProcessedPieData{
		CategoryField: catField,
		ValueField:    valField,
		Slices:        make([]ProcessedSlice, 0, len(order)),
	}

	for _, key := range order {
		g := groups[key]
		v := aggregate(g.values, method)
		if v < 0 {
			v = 0
		}
		out.Total += v
		out.Slices = append(out.Slices, ProcessedSlice{
			Label:      g.label,
			RawValue:   v,
			RowIndices: g.indices,
		})
	}

	// Stable sort keeps encounter order among equal values.
	slices.SortStableFunc(out.Slices, func(a, b ProcessedSlice) int {
		switch {
		case a.RawValue > b.RawValue:
			return -1
		case a.RawValue < b.RawValue:
			return 1
		}
		return 0
	})

	for i := range out.Slices {
		s := &out.Slices[i]
		if out.Total != 0 {
			s.Percentage = s.RawValue / out.Total * 100
		} else {
			s.Percentage = 100 / float64(len(out.Slices))
		}
		s.SliceID = GenerateSliceID(s.Label)
		if s.SliceID == "" {
			s.SliceID = fmt.Sprintf("slice-%d", i)
		}
	}

	return out
}

// GenerateSliceID derives a stable slice identifier from a label: lowered,
// with every run of non-alphanumeric characters collapsed to a single
// hyphen and leading/trailing hyphens trimmed. Blank labels produce the
// empty string; Process substitutes a positional fallback in that case.
//
// Distinct labels can collide on the same slug (for example "A/B" and
// "A B"); the generator does not disambiguate.
func GenerateSliceID(label string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// aggregate combines a group's values with the given method.
// Unknown methods behave as sum.
func aggregate(values []float64, method Aggregation) float64 {
	if len(values) == 0 {
		return 0
	}
	var v float64
	var err error
	switch method {
	case AggAvg:
		v, err = stats.Mean(values)
	case AggMin:
		v, err = stats.Min(values)
	case AggMax:
		v, err = stats.Max(values)
	case AggCount:
		return float64(len(values))
	default: // AggSum and anything unrecognized
		v, err = stats.Sum(values)
	}
	if err != nil {
		return 0
	}
	return v
}

// resolveCategoryField picks the category field id: explicit mapping,
// else the first dimension, else a literal fallback.
func resolveCategoryField(ds Dataset, mapping FieldMapping) string {
	if mapping.CategoryField != "" {
		return mapping.CategoryField
	}
	if len(ds.Dimensions) > 0 {
		return ds.Dimensions[0].ID
	}
	return fallbackCategoryField
}

// resolveValueField picks the value field id: explicit mapping, else the
// first measure, else a literal fallback.
func resolveValueField(ds Dataset, mapping FieldMapping) string {
	if mapping.ValueField != "" {
		return mapping.ValueField
	}
	if len(ds.Measures) > 0 {
		return ds.Measures[0].ID
	}
	return fallbackValueField
}

// resolveAggregation picks the aggregation method: mapping override, else
// the declared method of the measure matching the value field, else sum.
func resolveAggregation(ds Dataset, mapping FieldMapping, valField string) Aggregation {
	if mapping.Aggregation != "" {
		return mapping.Aggregation
	}
	for _, m := range ds.Measures {
		if m.ID == valField && m.Aggregation != "" {
			return m.Aggregation
		}
	}
	return AggSum
}

// coerceString renders a row value as a category key. Nil becomes the
// empty string; floats drop insignificant trailing digits.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// coerceNumber extracts a numeric value from a row cell. Non-numeric and
// missing values coerce to 0 rather than failing.
func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
