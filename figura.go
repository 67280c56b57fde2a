// Package figura provides a fluent API for extracting tables and
// chart data from scanned document images.
//
// Basic usage:
//
//	result, err := figura.Open("page.png").
//	    WithOCR(engine).
//	    ExtractTable(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Table().ToCSV())
//
// Chart detection needs no OCR engine:
//
//	detection, err := figura.Open("report.png").DetectCharts(ctx)
//
// Analyze runs the whole pipeline and bundles the table, charts,
// validation and summary into one report:
//
//	report, err := figura.FromImage(img).WithOCR(engine).Analyze(ctx)
//
// For advanced use cases, the lower-level tables, charts, validate,
// and insights packages are also available.
package figura

import (
	"image"
)

// Open prepares an image file for extraction and returns an Extractor
// for fluent configuration. The file is not read until a terminal
// operation runs.
//
// Example:
//
//	result, err := figura.Open("page.png").ExtractTable(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromImage creates an Extractor over an already-decoded image. This
// is useful when the caller manages decoding, cropping, or storage
// itself.
//
// Example:
//
//	report, err := figura.FromImage(img).Analyze(ctx)
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		img:     img,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning
// (T, error) and panics if the error is non-nil. It is intended for
// use in scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	report := figura.Must(figura.Open("page.png").Analyze(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
