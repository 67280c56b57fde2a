package charts

import (
	"strconv"

	"github.com/tsawler/figura/internal/vision"
	"github.com/tsawler/figura/model"
)

// PieExtractor locates the circles of a pie chart region. Slice
// boundaries are not traced, so every slice carries a placeholder
// percentage; the useful outputs are the circle geometry and count.
type PieExtractor struct {
	config Config
}

// NewPieExtractor creates a pie extractor with default configuration
func NewPieExtractor() *PieExtractor {
	return &PieExtractor{config: DefaultConfig()}
}

// Type returns the chart type this extractor handles
func (e *PieExtractor) Type() model.ChartType {
	return model.ChartPie
}

// Configure sets extractor parameters
func (e *PieExtractor) Configure(config Config) error {
	e.config = config
	return nil
}

// Extract finds circles in the region and emits one slice per circle,
// labeled in detection order. Regions with no circles produce a chart
// with no slices rather than an error.
func (e *PieExtractor) Extract(region model.Region) (*model.Chart, error) {
	chart := newChart(model.ChartPie, region)
	if region.Image == nil {
		return chart, nil
	}
	gray := vision.ToGray(region.Image)
	w, h := vision.Dimensions(gray)
	if w == 0 || h == 0 {
		return chart, nil
	}

	circles := vision.DetectCircles(gray, e.config.MinCircleRadius, e.config.MaxCircleRadius)

	var slices []model.PieSlice
	for i, circle := range circles {
		slices = append(slices, model.PieSlice{
			Label:         "Slice_" + strconv.Itoa(i),
			ApproxPercent: e.config.SlicePercent,
			Confidence:    e.config.SliceConfidence,
			Center:        model.Point{X: float64(circle.X), Y: float64(circle.Y)},
			Radius:        float64(circle.Radius),
		})
	}

	chart.Slices = slices
	return chart, nil
}
