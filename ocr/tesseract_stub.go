//go:build !ocr

package ocr

import (
	"context"
	"fmt"
	"image"
)

var _ Engine = (*Tesseract)(nil)

// Tesseract is the placeholder used when the "ocr" build tag is not
// set. Every operation reports ErrEngineUnavailable; rebuild with
// -tags ocr for the real engine.
type Tesseract struct{}

// NewTesseract reports that Tesseract support was not compiled in.
func NewTesseract(lang string) (*Tesseract, error) {
	return nil, fmt.Errorf("tesseract support not compiled in, rebuild with -tags ocr: %w", ErrEngineUnavailable)
}

// Close is a no-op. It is safe to call on a nil engine.
func (t *Tesseract) Close() error {
	return nil
}

// Name implements Engine.
func (t *Tesseract) Name() string {
	return "tesseract"
}

// Recognize implements Engine by reporting ErrEngineUnavailable.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (Result, error) {
	return Result{}, ErrEngineUnavailable
}
