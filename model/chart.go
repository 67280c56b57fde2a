package model

import "image"

// ChartType identifies the kind of chart detected in a region.
type ChartType int

const (
	// ChartUnknown indicates an unclassified region.
	ChartUnknown ChartType = iota
	// ChartBar indicates a bar chart.
	ChartBar
	// ChartPie indicates a pie chart.
	ChartPie
	// ChartLine indicates a line chart.
	ChartLine
)

// String returns the string representation of the chart type.
func (t ChartType) String() string {
	switch t {
	case ChartBar:
		return "bar_chart"
	case ChartPie:
		return "pie_chart"
	case ChartLine:
		return "line_chart"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the chart type as its string form.
func (t ChartType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Region is a rectangular sub-image proposed as containing a chart.
//
// The region exclusively owns its cropped pixel buffer. The buffer
// exists only for the duration of one extraction pass and is released
// when extraction completes.
type Region struct {
	Rect       Rect
	Type       ChartType
	Confidence float64 // Detection confidence (0-1)
	Image      image.Image
}

// BarPoint is one bar extracted from a bar chart. ApproxValue is a
// relative-scale estimate derived from bar height, not a calibrated
// axis reading.
type BarPoint struct {
	Label       string  `json:"label"`
	ApproxValue float64 `json:"approx_value"`
	Confidence  float64 `json:"confidence"`
	Rect        Rect    `json:"bbox"`
}

// PieSlice is one slice extracted from a pie chart. ApproxPercent is a
// placeholder estimate; slice-angle measurement is not performed.
type PieSlice struct {
	Label         string  `json:"label"`
	ApproxPercent float64 `json:"approx_percent"`
	Confidence    float64 `json:"confidence"`
	Center        Point   `json:"center"`
	Radius        float64 `json:"radius"`
}

// LinePoint is one data point extracted from a line chart. X and Y are
// normalized to [0,1] with the image bottom mapping to Y=0.
type LinePoint struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Confidence float64     `json:"confidence"`
	Pixel      image.Point `json:"pixel"`
}

// Chart is a classified chart region with its extracted data points.
// Exactly one of the point slices is populated, selected by Type.
type Chart struct {
	Type       ChartType   `json:"type"`
	Rect       Rect        `json:"bbox"`
	Confidence float64     `json:"confidence"`
	Bars       []BarPoint  `json:"bars,omitempty"`
	Slices     []PieSlice  `json:"slices,omitempty"`
	Points     []LinePoint `json:"points,omitempty"`
}

// PointCount returns the number of extracted data points regardless of
// chart type.
func (c *Chart) PointCount() int {
	switch c.Type {
	case ChartBar:
		return len(c.Bars)
	case ChartPie:
		return len(c.Slices)
	case ChartLine:
		return len(c.Points)
	default:
		return 0
	}
}
