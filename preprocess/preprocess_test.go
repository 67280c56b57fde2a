package preprocess

import (
	"image"
	"image/color"
	"testing"
)

// whitePage builds a white image with a black rectangle at (20,20)-(60,40).
func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 20; y < 40; y++ {
		for x := 20; x < 60; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestEnhanceInvertsInk(t *testing.T) {
	out := Enhance(whitePage(100, 80))

	if got := out.Bounds(); got.Dx() != 100 || got.Dy() != 80 {
		t.Fatalf("bounds = %v, want 100x80", got)
	}
	if out.GrayAt(20, 20).Y != 255 {
		t.Error("ink edge did not become foreground")
	}
	if out.GrayAt(5, 5).Y != 0 {
		t.Error("plain background became foreground")
	}
}

func TestEnhanceScalesWidePages(t *testing.T) {
	p := NewPreprocessor()
	p.Configure(Config{
		TargetWidth:    100,
		BlurSize:       3,
		ThresholdBlock: 11,
		ThresholdC:     2,
		CloseSize:      3,
	})

	out := p.Enhance(whitePage(200, 100))
	if got := out.Bounds(); got.Dx() != 100 || got.Dy() != 50 {
		t.Errorf("bounds = %v, want 100x50", got)
	}
}

func TestEnhanceKeepsNarrowPages(t *testing.T) {
	out := Enhance(whitePage(120, 90))
	if got := out.Bounds(); got.Dx() != 120 || got.Dy() != 90 {
		t.Errorf("bounds = %v, want unchanged 120x90", got)
	}
}
