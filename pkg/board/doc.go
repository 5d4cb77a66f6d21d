// Package board defines the caller-owned override layer of a chart board.
//
// The interactive authoring surface lets a user override individual visual
// and spatial properties per data-derived entity (slice, label, annotation).
// Those overrides live in the containers defined here, keyed by the entity's
// stable id. Every field of an override is optional; a present field wins
// over any computed default downstream.
//
// Override containers are owned exclusively by the caller and passed by
// reference into the pipeline stages. No stage mutates them; updates are
// expressed by the With* helpers, which return new maps merging the change.
//
// All containers serialize as plain JSON objects keyed by id and deserialize
// back to lookup maps with O(1) access, so boards round-trip losslessly
// through persistence.
package board
