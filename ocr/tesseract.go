//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

var _ Engine = (*Tesseract)(nil)

// Tesseract recognizes text through a local Tesseract installation.
// It holds native resources and must be closed when no longer needed.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a Tesseract engine. Multiple recognition
// languages join with "+" (e.g. "eng+fra"); the empty string keeps
// Tesseract's default, English.
func NewTesseract(lang string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language %q: %w", lang, err)
		}
	}
	return &Tesseract{client: client}, nil
}

// Close releases the native Tesseract resources.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// Name implements Engine.
func (t *Tesseract) Name() string {
	return "tesseract"
}

// Recognize implements Engine. The image is handed to Tesseract as
// PNG. Tesseract cannot be interrupted mid-call, so the context is
// only checked before work starts.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := encodePNG(img)
	if err != nil {
		return Result{}, err
	}
	if err := t.client.SetImageFromBytes(data); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}

	result := Result{Text: strings.TrimSpace(text)}

	// Word confidences are best effort; recognition already succeeded.
	if boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		var sum float64
		for _, box := range boxes {
			sum += box.Confidence
		}
		result.Confidence = sum / float64(len(boxes)) / 100
	}
	return result, nil
}
