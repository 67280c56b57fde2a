// Package ocr recognizes text in page images.
//
// Two engines are provided. [Tesseract] wraps a local Tesseract
// installation via gosseract and is only compiled in with the "ocr"
// build tag:
//
//	go build -tags ocr
//
// Tesseract itself must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// [GoogleVision] calls the Google Cloud Vision API and needs
// credentials in the environment. An engine that cannot run reports
// [ErrEngineUnavailable], so callers can detect the condition with
// errors.Is and fall back to another engine.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEngineUnavailable reports that an engine cannot run in this
// build or environment: Tesseract without the "ocr" build tag, or
// Google Vision without credentials.
var ErrEngineUnavailable = errors.New("OCR engine unavailable")

// Result is the outcome of one recognition pass.
type Result struct {
	// Text is the recognized text, empty when the image holds none.
	Text string

	// Confidence is the engine's mean confidence over the recognized
	// text in the range 0 to 1, or 0 when the engine reports none.
	Confidence float64
}

// Engine recognizes text in an image.
type Engine interface {
	// Recognize runs OCR over the whole image.
	Recognize(ctx context.Context, img image.Image) (Result, error)

	// Name identifies the engine in logs and reports.
	Name() string
}

// Clean normalizes recognized text before table recovery: Unicode
// compatibility normalization (NFKC), uniform line endings, runs of
// spaces and tabs collapsed to one space, line edges trimmed, and
// leading and trailing blank lines dropped. Blank lines inside the
// text survive, since they separate blocks.
func Clean(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}

	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// encodePNG renders an image to PNG bytes for engines that take
// encoded input.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
