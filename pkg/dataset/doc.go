// Package dataset holds the tabular input model of a chart board and the
// data processor that turns raw rows into percentage-normalized slices.
//
// A Dataset couples field descriptors (dimensions and measures) with plain
// rows mapping field id → scalar. Process groups the rows by a category
// field, aggregates a value field per group, and emits an ordered slice
// list with stable, label-derived identifiers. The processor is a total
// function: missing mappings fall back to synthesized field ids, malformed
// values coerce to zero, and unknown aggregation methods default to sum.
//
// Loaders are provided for CSV, JSON, and XLSX files; they live at the
// input boundary and are the only part of the package that can fail.
package dataset
