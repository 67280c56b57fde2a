package charts

import (
	"image"
	"sort"

	"github.com/tsawler/figura/internal/vision"
	"github.com/tsawler/figura/model"
)

// LineExtractor samples distinctive points along the curve of a line
// chart region. Coordinates are normalized to [0, 1] with the origin
// at the bottom left, matching how the chart itself is read.
type LineExtractor struct {
	config Config
}

// NewLineExtractor creates a line extractor with default configuration
func NewLineExtractor() *LineExtractor {
	return &LineExtractor{config: DefaultConfig()}
}

// Type returns the chart type this extractor handles
func (e *LineExtractor) Type() model.ChartType {
	return model.ChartLine
}

// Configure sets extractor parameters
func (e *LineExtractor) Configure(config Config) error {
	e.config = config
	return nil
}

// Extract detects corner features in the region and reports them as
// normalized points ordered by x position. Featureless regions produce
// a chart with no points rather than an error.
func (e *LineExtractor) Extract(region model.Region) (*model.Chart, error) {
	chart := newChart(model.ChartLine, region)
	if region.Image == nil {
		return chart, nil
	}
	gray := vision.ToGray(region.Image)
	w, h := vision.Dimensions(gray)
	if w == 0 || h == 0 {
		return chart, nil
	}

	corners := vision.GoodFeatures(gray, e.config.MaxCorners, e.config.CornerQuality, e.config.CornerMinDistance)

	points := make([]model.LinePoint, 0, len(corners))
	for _, corner := range corners {
		points = append(points, model.LinePoint{
			X:          roundTo(float64(corner.X)/float64(w), 3),
			Y:          roundTo(float64(h-corner.Y)/float64(h), 3),
			Confidence: e.config.PointConfidence,
			Pixel:      image.Point{X: corner.X, Y: corner.Y},
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].X < points[j].X
	})

	chart.Points = points
	return chart, nil
}
