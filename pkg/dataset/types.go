package dataset

// FieldType is the semantic type of a field's values.
type FieldType string

const (
	// FieldString marks categorical text fields.
	FieldString FieldType = "string"
	// FieldNumber marks numeric fields.
	FieldNumber FieldType = "number"
)

// Aggregation is the method used to combine a group's measure values.
type Aggregation string

// Supported aggregation methods. Anything else silently behaves as sum.
const (
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
	AggCount Aggregation = "count"
)

// Dimension describes a categorical field.
type Dimension struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// Measure describes a numeric field together with its aggregation method.
type Measure struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Type        FieldType   `json:"type"`
	Aggregation Aggregation `json:"aggregation"`
}

// DataRow maps field id to a scalar value (string, number, or nil).
type DataRow map[string]any

// Dataset is the raw tabular input of a chart board.
type Dataset struct {
	Dimensions []Dimension `json:"dimensions"`
	Measures   []Measure   `json:"measures"`
	Rows       []DataRow   `json:"rows"`
}

// FieldMapping is an optional hint that selects which fields feed the
// chart. Empty fields fall back to the first dimension/measure, then to
// synthesized literals.
type FieldMapping struct {
	CategoryField string `json:"categoryField,omitempty"`
	ValueField    string `json:"valueField,omitempty"`
	// Aggregation, when set, overrides the measure's declared method.
	Aggregation Aggregation `json:"aggregation,omitempty"`
}

// ProcessedSlice is one aggregated category, the fundamental unit flowing
// through every pipeline stage.
type ProcessedSlice struct {
	// SliceID is a stable identifier derived from the label. It does not
	// depend on row order.
	SliceID string `json:"sliceId"`
	Label   string `json:"label"`
	// RawValue is the aggregated value for the group.
	RawValue float64 `json:"rawValue"`
	// Percentage of the total, in [0, 100].
	Percentage float64 `json:"percentage"`
	// RowIndices back-references the contributing rows by index into the
	// source dataset. The slice does not own the rows.
	RowIndices []int `json:"rowIndices"`
}

// ProcessedPieData is the output of the data processor: slices ordered by
// descending raw value, plus the resolved field ids and the total.
type ProcessedPieData struct {
	Slices        []ProcessedSlice `json:"slices"`
	Total         float64          `json:"total"`
	CategoryField string           `json:"categoryField"`
	ValueField    string           `json:"valueField"`
}
