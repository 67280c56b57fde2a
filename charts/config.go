package charts

// Config holds the tuning parameters for chart detection and
// extraction. The zero value is not usable; start from
// [DefaultConfig] and adjust fields as needed.
type Config struct {
	// CannyLow and CannyHigh are the hysteresis thresholds for the
	// edge detector used during region proposal.
	CannyLow  int
	CannyHigh int

	// MinRegionArea discards contours whose enclosed area is below
	// this many pixels. Small blobs are almost never charts.
	MinRegionArea float64

	// MaxRegionAreaFrac discards contours covering more than this
	// fraction of the page. A near-full-page contour is the page
	// border, not a chart.
	MaxRegionAreaFrac float64

	// MinCircleRadius and MaxCircleRadius bound the circle search
	// used to recognize pie charts.
	MinCircleRadius int
	MaxCircleRadius int

	// SegmentThreshold, MinSegmentLength and MaxSegmentGap tune the
	// probabilistic line detector used to recognize bar and line
	// charts.
	SegmentThreshold int
	MinSegmentLength float64
	MaxSegmentGap    float64

	// MinSegments is the number of detected segments below which a
	// region is left unclassified.
	MinSegments int

	// AxisTolerance is the per-axis pixel slack when deciding
	// whether a segment is horizontal or vertical.
	AxisTolerance int

	// HorizontalBias is the factor by which horizontal segments must
	// outnumber vertical ones before a region counts as a bar chart.
	HorizontalBias float64

	// BarThreshold binarizes a bar chart region before bars are
	// located. Pixels above it are treated as foreground.
	BarThreshold uint8

	// BarCloseSize is the kernel size for the morphological close
	// that fuses broken bar outlines.
	BarCloseSize int

	// MinBarWidth and MinBarHeight discard contours too small to be
	// bars.
	MinBarWidth  int
	MinBarHeight int

	// MaxCorners, CornerQuality and CornerMinDistance tune the
	// corner detector used on line chart regions.
	MaxCorners        int
	CornerQuality     float64
	CornerMinDistance float64

	// RegionConfidence is assigned to regions classified through the
	// circle path. Regions classified through the segment path get a
	// confidence derived from the segment count instead.
	RegionConfidence float64

	// BarConfidence, SliceConfidence and PointConfidence are the
	// fixed confidences attached to extracted data points.
	BarConfidence   float64
	SliceConfidence float64
	PointConfidence float64

	// SlicePercent is the placeholder percentage assigned to each
	// pie slice. Slice angles are not measured.
	SlicePercent float64
}

// DefaultConfig returns the configuration used by [Detect] when no
// overrides are supplied. The thresholds are tuned for synthetic and
// scanned report pages at typical print resolutions.
func DefaultConfig() Config {
	return Config{
		CannyLow:          50,
		CannyHigh:         150,
		MinRegionArea:     5000,
		MaxRegionAreaFrac: 0.8,
		MinCircleRadius:   10,
		MaxCircleRadius:   100,
		SegmentThreshold:  50,
		MinSegmentLength:  20,
		MaxSegmentGap:     10,
		MinSegments:       10,
		AxisTolerance:     5,
		HorizontalBias:    1.5,
		BarThreshold:      127,
		BarCloseSize:      5,
		MinBarWidth:       10,
		MinBarHeight:      10,
		MaxCorners:        20,
		CornerQuality:     0.01,
		CornerMinDistance: 10,
		RegionConfidence:  0.7,
		BarConfidence:     0.6,
		SliceConfidence:   0.5,
		PointConfidence:   0.6,
		SlicePercent:      25.0,
	}
}
