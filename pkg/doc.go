// Package pkg provides the core libraries for pieforge chart computation.
//
// # Overview
//
// Pieforge turns tabular data into fully computed pie and donut charts.
// The pkg directory is organized around the pipeline stages:
//
//  1. [dataset] - Data processing (field mapping, aggregation, sorting)
//  2. [geom] - Arc geometry, label anchors, and leader lines
//  3. [scene] - Scene graph construction and override application
//  4. [style] - Theme handling and per-node style resolution
//  5. [pipeline] - Orchestration, caching, and rendering
//
// Supporting packages: [board] holds the override and annotation types
// shared across stages, [io] reads and writes board documents, [cache]
// provides the result cache backends, [render/svg] serializes scene
// graphs to SVG, and [errors] defines the structured error model.
//
// # Architecture
//
// The typical data flow:
//
//	Rows + Mapping
//	         ↓
//	dataset.Process            aggregated, sorted slices
//	         ↓
//	geom.ComputeSlices         arc geometry per slice
//	geom.PlaceLabels           label anchors and leader lines
//	         ↓
//	scene.Build                addressable node tree + overrides
//	         ↓
//	style.ResolveAll           concrete paint per node
//	         ↓
//	render/svg                 SVG artifact
//
// Every stage is a pure function of its inputs. Caching happens only at
// the pipeline boundary, keyed by content hashes of the inputs.
package pkg
