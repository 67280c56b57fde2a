package charts

import (
	"github.com/tsawler/figura/internal/vision"
	"github.com/tsawler/figura/model"
)

// Classifier assigns a chart type to a candidate region.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultConfig()}
}

// Configure sets classifier parameters
func (c *Classifier) Configure(config Config) error {
	c.config = config
	return nil
}

// Classify determines the chart type of a region and a confidence for
// the decision. Regions that match no chart shape come back as
// [model.ChartUnknown] with zero confidence and should be discarded.
//
// Circles are checked first: any circle within the configured radius
// range marks the region as a pie chart. Otherwise the region's line
// segments decide between bar and line charts by the ratio of
// horizontal to vertical segments.
func (c *Classifier) Classify(region model.Region) (model.ChartType, float64) {
	if region.Image == nil {
		return model.ChartUnknown, 0
	}
	gray := vision.ToGray(region.Image)
	w, h := vision.Dimensions(gray)
	if w == 0 || h == 0 {
		return model.ChartUnknown, 0
	}

	// Step 1: look for circles
	circles := vision.DetectCircles(gray, c.config.MinCircleRadius, c.config.MaxCircleRadius)
	if len(circles) > 0 {
		return model.ChartPie, c.config.RegionConfidence
	}

	// Step 2: fall back to line segment structure
	edges := vision.Canny(gray, c.config.CannyLow, c.config.CannyHigh)
	segments := vision.DetectSegments(edges, c.config.SegmentThreshold, c.config.MinSegmentLength, c.config.MaxSegmentGap)
	kind := c.classifySegments(segments)
	if kind == model.ChartUnknown {
		return model.ChartUnknown, 0
	}
	return kind, c.segmentConfidence(len(segments))
}

// classifySegments decides between bar and line charts from the
// orientation mix of the detected segments. Bar charts are dominated
// by horizontal gridlines and bar tops; line charts mix orientations
// more evenly.
func (c *Classifier) classifySegments(segments []vision.Segment) model.ChartType {
	if len(segments) < c.config.MinSegments {
		return model.ChartUnknown
	}
	var horizontal, vertical int
	for _, s := range segments {
		switch {
		case s.DY() < c.config.AxisTolerance:
			horizontal++
		case s.DX() < c.config.AxisTolerance:
			vertical++
		}
	}
	if float64(horizontal) > float64(vertical)*c.config.HorizontalBias {
		return model.ChartBar
	}
	return model.ChartLine
}

// segmentConfidence maps a segment count to a confidence in [0.5, 0.9].
// More segments mean more structure supporting the classification.
func (c *Classifier) segmentConfidence(count int) float64 {
	conf := 0.5 + float64(count)/50
	return min(conf, 0.9)
}
