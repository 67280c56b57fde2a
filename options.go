package figura

import (
	"github.com/tsawler/figura/charts"
	"github.com/tsawler/figura/insights"
	"github.com/tsawler/figura/ocr"
	"github.com/tsawler/figura/preprocess"
	"github.com/tsawler/figura/tables"
)

// extractOptions holds configuration for an extraction run.
type extractOptions struct {
	// OCR engine; nil means Tesseract is constructed on first use
	engine ocr.Engine

	// Image preparation
	preprocess       bool
	preprocessConfig preprocess.Config

	// Stage configuration
	tablesConfig   tables.Config
	chartsConfig   charts.Config
	insightsConfig insights.Config

	// When set, ExtractTable writes the table to this path as CSV
	csvPath string
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		engine:           nil,
		preprocess:       true,
		preprocessConfig: preprocess.DefaultConfig(),
		tablesConfig:     tables.DefaultConfig(),
		chartsConfig:     charts.DefaultConfig(),
		insightsConfig:   insights.DefaultConfig(),
		csvPath:          "",
	}
}

// clone creates a deep copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	newOpts := o

	// Deep copy the prefix slice inside the tables config
	if o.tablesConfig.SkipPrefixes != nil {
		newOpts.tablesConfig.SkipPrefixes = make([]string, len(o.tablesConfig.SkipPrefixes))
		copy(newOpts.tablesConfig.SkipPrefixes, o.tablesConfig.SkipPrefixes)
	}

	return newOpts
}
