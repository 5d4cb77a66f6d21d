// Package io provides JSON import and export for chart board documents.
//
// # Overview
//
// A board document is the complete, self-contained description of a chart:
// the raw dataset, the field mapping, the geometry configuration, all
// per-slice and per-label overrides, the annotations, and the theme.
// Re-running the pipeline on an imported document reproduces the chart
// exactly, so documents double as a cache format and an interchange format
// for external tools.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "dataset": {"dimensions": [...], "measures": [...], "rows": [...]},
//	  "mapping": {"categoryField": "region", "valueField": "sales"},
//	  "config": {"center": {"x": 200, "y": 200}, "outerRadius": 150, ...},
//	  "overrides": {"slices": {...}, "labels": {...}, "annotations": {...}},
//	  "theme": {"palette": [...], "background": "#FFFFFF", ...}
//	}
//
// Only "version" and "dataset" are required; every other section falls
// back to its defaults on import. Override and annotation maps are keyed
// by slice or annotation id, and encoding/json writes map keys in sorted
// order, so exporting the same document twice produces identical bytes.
//
// # Round-Trip
//
// Export then import is lossless: the imported document compares equal to
// the original, field for field. This invariant is what lets editor
// frontends treat the JSON form as the document of record.
package io
