// Package model provides the shared data structures for extracted
// tables and charts.
//
// This package defines the user-facing types that every stage of the
// pipeline produces or consumes. All extraction and analysis
// operations ultimately produce these types, making them the primary
// API for consuming results.
//
// # Tables
//
// Recognized text flows from a [TableBlock] (candidate text lines)
// into a [Table], which keeps three parallel views of the same data:
//
//   - Headers - ordered column names
//   - Rows - raw string tokens, one slice per row
//   - Cleaned - typed [Record] values keyed by column name
//
// Individual values are [Cell] tagged unions produced by [ParseCell].
// Parsing is total: a token that fails numeric interpretation stays
// text, it never raises an error.
//
// # Charts
//
// A [Region] is a rectangular sub-image proposed as containing a
// chart, tagged with a [ChartType]. A [Chart] pairs the classified
// region with its extracted data points ([BarPoint], [PieSlice], or
// [LinePoint] depending on type). Chart values derived from pixel
// measurements are approximate and are named accordingly.
//
// # Geometry
//
// Geometric primitives support position calculations in image pixel
// coordinates:
//
//   - [Rect] - integer rectangle with intersection, union, and clamping
//   - [Point] - 2D point with distance calculation
package model
