// Package hybrid reconstructs an editable, page-faithful document from a
// layout-analysis result and optional rasterized page images.
//
// For every page the reconstruction emits, in this fixed order:
//
//   - a "Page N" heading
//   - the page image, scaled to at most MaxImageWidth units wide
//   - every table whose bounding regions include the page, numbered with one
//     counter shared by the whole document
//   - the page's text lines, minus any line whose spans overlap a table span
//     (that text is already present in a table)
//
// Pages are separated by exactly one page break.
//
// The reconstruction is a pure in-memory computation. It never fails on bad
// data: out-of-range cells, missing fields and malformed spans are dropped or
// defaulted, and reported in Document.Diagnostics without changing the blocks.
//
// Main Functions:
//
//   - Assemble: builds the whole Document
//   - ComposePage: builds the blocks of a single page
//   - BuildGrid: turns a sparse cell list into a dense grid
//   - PlaceImage: computes the placed size of a page image
//   - NewSpanSet: indexes table spans for line deduplication
//   - NormalizeText: collapses whitespace in line and cell text
package hybrid
