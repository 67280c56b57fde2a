package charts

import (
	"sort"
	"strconv"

	"github.com/tsawler/figura/internal/vision"
	"github.com/tsawler/figura/model"
)

// BarExtractor measures the relative heights of the bars in a bar
// chart region. Values are percentages of the region height, not the
// chart's underlying data.
type BarExtractor struct {
	config Config
}

// NewBarExtractor creates a bar extractor with default configuration
func NewBarExtractor() *BarExtractor {
	return &BarExtractor{config: DefaultConfig()}
}

// Type returns the chart type this extractor handles
func (e *BarExtractor) Type() model.ChartType {
	return model.ChartBar
}

// Configure sets extractor parameters
func (e *BarExtractor) Configure(config Config) error {
	e.config = config
	return nil
}

// Extract locates the bars in the region and reports one data point
// per bar, ordered left to right. Regions with no recognizable bars
// produce a chart with no points rather than an error.
func (e *BarExtractor) Extract(region model.Region) (*model.Chart, error) {
	chart := newChart(model.ChartBar, region)
	if region.Image == nil {
		return chart, nil
	}
	gray := vision.ToGray(region.Image)
	w, h := vision.Dimensions(gray)
	if w == 0 || h == 0 {
		return chart, nil
	}

	// Step 1: binarize and close small gaps so each bar is one solid blob
	binary := vision.Threshold(gray, e.config.BarThreshold)
	closed := vision.Close(binary, e.config.BarCloseSize, e.config.BarCloseSize)

	// Step 2: one outer contour per bar
	contours := vision.FindContours(closed)

	var bars []model.BarPoint
	for _, contour := range contours {
		bounds := contour.BoundingRect()
		if bounds.Dx() < e.config.MinBarWidth || bounds.Dy() < e.config.MinBarHeight {
			continue
		}
		value := roundTo(float64(bounds.Dy())/float64(h)*100, 2)
		bars = append(bars, model.BarPoint{
			ApproxValue: value,
			Confidence:  e.config.BarConfidence,
			Rect:        model.RectFromImage(bounds),
		})
	}

	// Step 3: order left to right and label by position
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Rect.X < bars[j].Rect.X
	})
	for i := range bars {
		bars[i].Label = "Bar_" + strconv.Itoa(i)
	}

	chart.Bars = bars
	return chart, nil
}
