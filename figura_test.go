package figura

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/figura/model"
	"github.com/tsawler/figura/ocr"
)

// fakeEngine returns canned OCR text.
type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) Recognize(ctx context.Context, img image.Image) (ocr.Result, error) {
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	return ocr.Result{Text: f.text, Confidence: 0.9}, nil
}

func (f *fakeEngine) Name() string { return "fake" }

const tableText = `Report

Year Sales Profit
2020 1,200 340
2021 980 210.5
2022 1,410 505
`

func blankImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestExtractTable_Found(t *testing.T) {
	result, err := FromImage(blankImage(100, 80)).
		WithOCR(&fakeEngine{text: tableText}).
		WithPreprocessing(false).
		ExtractTable(context.Background())
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}

	if result.Status != StatusTableFound {
		t.Fatalf("got status %q, want %q", result.Status, StatusTableFound)
	}
	wantHeaders := []string{"Year", "Sales", "Profit"}
	if len(result.Headers) != 3 {
		t.Fatalf("got headers %v, want %v", result.Headers, wantHeaders)
	}
	for i, h := range wantHeaders {
		if result.Headers[i] != h {
			t.Errorf("header %d = %q, want %q", i, result.Headers[i], h)
		}
	}
	if len(result.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(result.Rows))
	}

	record := result.Cleaned[0]
	if record[model.LabelColumn].Text != "2020" {
		t.Errorf("got label %v, want 2020", record[model.LabelColumn])
	}
	if cell := record["Year"]; cell.Kind != model.CellInteger || cell.Int != 1200 {
		t.Errorf("got Year cell %+v, want integer 1200", cell)
	}
	if cell := result.Cleaned[1]["Sales"]; cell.Kind != model.CellFloat || cell.Float != 210.5 {
		t.Errorf("got Sales cell %+v, want float 210.5", cell)
	}
}

func TestExtractTable_NoTable(t *testing.T) {
	result, err := FromImage(blankImage(50, 50)).
		WithOCR(&fakeEngine{text: ""}).
		WithPreprocessing(false).
		ExtractTable(context.Background())
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	if result.Status != StatusNoTableFound {
		t.Errorf("got status %q, want %q", result.Status, StatusNoTableFound)
	}
	if len(result.Rows) != 0 {
		t.Errorf("got rows %v, want none", result.Rows)
	}
}

func TestExtractTable_NoValidRows(t *testing.T) {
	result, err := FromImage(blankImage(50, 50)).
		WithOCR(&fakeEngine{text: "Region Total Count"}).
		WithPreprocessing(false).
		ExtractTable(context.Background())
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	if result.Status != StatusNoValidRows {
		t.Errorf("got status %q, want %q", result.Status, StatusNoValidRows)
	}
	if len(result.BlockLines) == 0 {
		t.Error("block lines should record the header-only block")
	}
}

func TestExtractTable_EngineError(t *testing.T) {
	engineErr := errors.New("scanner on fire")
	_, err := FromImage(blankImage(10, 10)).
		WithOCR(&fakeEngine{err: engineErr}).
		WithPreprocessing(false).
		ExtractTable(context.Background())
	if !errors.Is(err, engineErr) {
		t.Errorf("got error %v, want wrapped engine error", err)
	}
}

func TestExtractTable_CSVOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")

	result, err := FromImage(blankImage(50, 50)).
		WithOCR(&fakeEngine{text: tableText}).
		WithPreprocessing(false).
		WithCSVOutput(path).
		ExtractTable(context.Background())
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	if result.CSVPath != path {
		t.Errorf("got CSVPath %q, want %q", result.CSVPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if !strings.HasPrefix(string(data), "Year,Sales,Profit\n") {
		t.Errorf("unexpected CSV contents: %q", data)
	}
}

func TestDetectCharts_BlankImage(t *testing.T) {
	detection, err := FromImage(blankImage(200, 200)).DetectCharts(context.Background())
	if err != nil {
		t.Fatalf("DetectCharts failed: %v", err)
	}
	if len(detection.Charts) != 0 {
		t.Errorf("got %d charts on a blank image, want 0", len(detection.Charts))
	}
}

func TestAnalyze(t *testing.T) {
	report, err := FromImage(blankImage(100, 80)).
		WithOCR(&fakeEngine{text: tableText}).
		WithPreprocessing(false).
		Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Table.Status != StatusTableFound {
		t.Errorf("got table status %q, want %q", report.Table.Status, StatusTableFound)
	}
	if !report.Validation.IsValid {
		t.Errorf("validation should pass: %+v", report.Validation)
	}
	if report.Summary.Statistics.RowCount != 3 {
		t.Errorf("got summary row count %d, want 3", report.Summary.Statistics.RowCount)
	}
	if report.Summary.Quality.Overall <= 0 {
		t.Errorf("got quality %v, want positive", report.Summary.Quality.Overall)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.png")).
		WithOCR(&fakeEngine{}).
		ExtractTable(context.Background())
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpen_NoFilename(t *testing.T) {
	_, err := Open("").DetectCharts(context.Background())
	if err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestOpen_RealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	if err := png.Encode(f, blankImage(60, 40)); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	f.Close()

	result, err := Open(path).
		WithOCR(&fakeEngine{text: "Name Value\nalpha 1"}).
		WithPreprocessing(false).
		ExtractTable(context.Background())
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	if result.Status != StatusTableFound {
		t.Errorf("got status %q, want %q", result.Status, StatusTableFound)
	}
}

func TestOpen_RejectsHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, []byte("<html><body></body></html>"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, err := Open(path).DetectCharts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unsupported input format") {
		t.Errorf("got error %v, want unsupported format", err)
	}
}

func TestConfiguration_Immutable(t *testing.T) {
	base := FromImage(blankImage(10, 10))
	withEngine := base.WithOCR(&fakeEngine{text: "x"})

	if base.options.engine != nil {
		t.Error("configuring a clone mutated the original")
	}
	if withEngine.options.engine == nil {
		t.Error("clone lost its configuration")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("got %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
