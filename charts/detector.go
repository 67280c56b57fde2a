package charts

import (
	"image"
	"image/draw"

	"github.com/tsawler/figura/internal/vision"
	"github.com/tsawler/figura/model"
)

// RegionDetector proposes rectangular chart candidates in a page
// image. It knows nothing about chart types; candidates are ranked
// and typed later by the [Classifier].
type RegionDetector struct {
	config Config
}

// NewRegionDetector creates a region detector with default configuration
func NewRegionDetector() *RegionDetector {
	return &RegionDetector{config: DefaultConfig()}
}

// Configure sets detector parameters
func (d *RegionDetector) Configure(config Config) error {
	d.config = config
	return nil
}

// Detect returns candidate chart regions found in img. Each region
// carries its bounding box in page coordinates and a crop of the
// original image. Regions are returned untyped with zero confidence.
func (d *RegionDetector) Detect(img image.Image) []model.Region {
	if img == nil {
		return nil
	}
	gray := vision.ToGray(img)
	w, h := vision.Dimensions(gray)
	if w == 0 || h == 0 {
		return nil
	}

	// Step 1: edge map of the full page
	edges := vision.Canny(gray, d.config.CannyLow, d.config.CannyHigh)

	// Step 2: contours around connected edge components
	contours := vision.FindContours(edges)

	// Step 3: keep contours that are plausibly chart-sized
	pageArea := float64(w) * float64(h)
	var regions []model.Region
	for _, contour := range contours {
		area := contour.Area()
		if area < d.config.MinRegionArea || area > d.config.MaxRegionAreaFrac*pageArea {
			continue
		}
		bounds := contour.BoundingRect()
		regions = append(regions, model.Region{
			Rect:  model.RectFromImage(bounds),
			Type:  model.ChartUnknown,
			Image: cropImage(img, bounds),
		})
	}
	return regions
}

// cropImage copies the sub-image covered by r into a fresh image with
// a zero origin. The rectangle is in the same zero-based coordinate
// space the detector works in, so the source offset accounts for
// images whose bounds do not start at the origin.
func cropImage(img image.Image, r image.Rectangle) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min.Add(img.Bounds().Min), draw.Src)
	return dst
}
