package figura

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/tsawler/figura/charts"
	"github.com/tsawler/figura/export"
	"github.com/tsawler/figura/format"
	"github.com/tsawler/figura/imagestore"
	"github.com/tsawler/figura/insights"
	"github.com/tsawler/figura/model"
	"github.com/tsawler/figura/ocr"
	"github.com/tsawler/figura/preprocess"
	"github.com/tsawler/figura/tables"
	"github.com/tsawler/figura/validate"
)

// DetectionStatus reports how table extraction ended.
type DetectionStatus string

const (
	// StatusTableFound means a table block was found and yielded rows.
	StatusTableFound DetectionStatus = "table_found"
	// StatusNoValidRows means a block was found but no data rows
	// survived structuring.
	StatusNoValidRows DetectionStatus = "no_valid_rows"
	// StatusNoTableFound means no table block was found in the text.
	StatusNoTableFound DetectionStatus = "no_table_found"
)

// TableExtractionResult is the outcome of one table extraction pass.
type TableExtractionResult struct {
	OCRText    string          `json:"ocr_text"`
	BlockLines []string        `json:"raw_table_lines"`
	Headers    []string        `json:"headers"`
	Rows       [][]string      `json:"rows"`
	Cleaned    []model.Record  `json:"cleaned_table"`
	CSVPath    string          `json:"csv_path,omitempty"`
	Status     DetectionStatus `json:"detection_status"`
}

// Table reassembles the result into the model table form.
func (r TableExtractionResult) Table() *model.Table {
	return &model.Table{
		Headers: r.Headers,
		Rows:    r.Rows,
		Cleaned: r.Cleaned,
	}
}

// Report bundles every pipeline stage over one image.
type Report struct {
	Table      TableExtractionResult  `json:"table"`
	Charts     charts.DetectionResult `json:"charts"`
	Validation validate.Result        `json:"validation"`
	Summary    insights.Summary       `json:"summary"`
}

// Extractor provides a fluent interface for extracting tables and
// charts from page images. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string
	img      image.Image
	loaded   bool

	// Configuration
	options extractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a
// new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		img:      e.img,
		loaded:   e.loaded,
		options:  e.options.clone(),
	}
}

// ensureImage decodes the source file if no image is loaded yet.
func (e *Extractor) ensureImage() error {
	if e.loaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no image specified")
	}

	data, err := os.ReadFile(e.filename)
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}
	if f := format.DetectFromMagic(data); f != format.Unknown && !f.IsImage() {
		return fmt.Errorf("unsupported input format: %s", f)
	}

	img, err := imagestore.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	e.img = img
	e.loaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithOCR sets the OCR engine used for table extraction. Without one,
// a local Tesseract engine is constructed on first use.
//
// Example:
//
//	engine, _ := ocr.NewGoogleVision(ctx)
//	result, err := figura.Open("page.png").WithOCR(engine).ExtractTable(ctx)
func (e *Extractor) WithOCR(engine ocr.Engine) *Extractor {
	newExt := e.clone()
	newExt.options.engine = engine
	return newExt
}

// WithPreprocessing enables or disables image enhancement before OCR.
// Enhancement is on by default.
func (e *Extractor) WithPreprocessing(enabled bool) *Extractor {
	newExt := e.clone()
	newExt.options.preprocess = enabled
	return newExt
}

// WithPreprocessConfig overrides the image enhancement parameters.
func (e *Extractor) WithPreprocessConfig(config preprocess.Config) *Extractor {
	newExt := e.clone()
	newExt.options.preprocessConfig = config
	return newExt
}

// WithTableConfig overrides the table recovery parameters.
func (e *Extractor) WithTableConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tablesConfig = config
	return newExt
}

// WithChartConfig overrides the chart detection parameters.
func (e *Extractor) WithChartConfig(config charts.Config) *Extractor {
	newExt := e.clone()
	newExt.options.chartsConfig = config
	return newExt
}

// WithInsightConfig overrides the summary generation parameters.
func (e *Extractor) WithInsightConfig(config insights.Config) *Extractor {
	newExt := e.clone()
	newExt.options.insightsConfig = config
	return newExt
}

// WithCSVOutput makes ExtractTable write the recovered table to path
// as CSV and record the path in the result.
func (e *Extractor) WithCSVOutput(path string) *Extractor {
	newExt := e.clone()
	newExt.options.csvPath = path
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// ExtractTable runs OCR over the image and recovers a table from the
// recognized text. An image without a table is not an error: the
// result's Status field reports what was found.
func (e *Extractor) ExtractTable(ctx context.Context) (TableExtractionResult, error) {
	var result TableExtractionResult

	if err := e.ensureImage(); err != nil {
		return result, err
	}

	engine := e.options.engine
	if engine == nil {
		t, err := ocr.NewTesseract("eng")
		if err != nil {
			return result, fmt.Errorf("creating OCR engine: %w", err)
		}
		defer t.Close()
		engine = t
	}

	ocrImg := image.Image(e.img)
	if e.options.preprocess {
		pp := preprocess.NewPreprocessor()
		if err := pp.Configure(e.options.preprocessConfig); err != nil {
			return result, fmt.Errorf("configuring preprocessor: %w", err)
		}
		ocrImg = pp.Enhance(ocrImg)
	}

	recognized, err := engine.Recognize(ctx, ocrImg)
	if err != nil {
		return result, fmt.Errorf("recognizing text: %w", err)
	}
	result.OCRText = ocr.Clean(recognized.Text)

	selector := tables.NewSelector()
	if err := selector.Configure(e.options.tablesConfig); err != nil {
		return result, fmt.Errorf("configuring selector: %w", err)
	}
	block := selector.Select(splitLines(result.OCRText))
	if block.IsEmpty() {
		result.Status = StatusNoTableFound
		return result, nil
	}
	result.BlockLines = block

	structurer := tables.NewStructurer()
	if err := structurer.Configure(e.options.tablesConfig); err != nil {
		return result, fmt.Errorf("configuring structurer: %w", err)
	}
	table := structurer.Structure(block)
	result.Headers = table.Headers
	result.Rows = table.Rows
	result.Cleaned = table.Cleaned

	if len(table.Rows) == 0 {
		result.Status = StatusNoValidRows
		return result, nil
	}
	result.Status = StatusTableFound

	if e.options.csvPath != "" {
		if err := export.WriteFile(e.options.csvPath, table, export.CSV); err != nil {
			return result, fmt.Errorf("writing CSV: %w", err)
		}
		result.CSVPath = e.options.csvPath
	}

	return result, nil
}

// DetectCharts finds chart regions in the image and extracts their
// data points. No OCR engine is involved.
func (e *Extractor) DetectCharts(ctx context.Context) (charts.DetectionResult, error) {
	if err := e.ensureImage(); err != nil {
		return charts.DetectionResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return charts.DetectionResult{}, err
	}
	return charts.Detect(e.img, e.options.chartsConfig), nil
}

// Analyze runs the whole pipeline: table extraction, chart detection,
// table validation, and summary generation. The table and chart
// stages are independent; validation and summary run over whatever
// table was recovered, including an empty one.
func (e *Extractor) Analyze(ctx context.Context) (Report, error) {
	var report Report

	table, err := e.ExtractTable(ctx)
	if err != nil {
		return report, err
	}
	report.Table = table

	detection, err := e.DetectCharts(ctx)
	if err != nil {
		return report, err
	}
	report.Charts = detection

	report.Validation = validate.Validate(table.Rows)

	generator := insights.NewGenerator()
	if err := generator.Configure(e.options.insightsConfig); err != nil {
		return report, fmt.Errorf("configuring generator: %w", err)
	}
	report.Summary = generator.Summarize(insights.FromTable(table.Table()))

	return report, nil
}

// splitLines breaks cleaned OCR text into lines; empty text yields no
// lines at all.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
