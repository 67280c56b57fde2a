// Package charts detects chart regions in page images and extracts
// their data points.
//
// Detection runs in three stages. The [RegionDetector] proposes
// rectangular candidate regions from edge contours. The [Classifier]
// assigns each region a chart type using shape heuristics: circles
// indicate a pie chart, and the balance of horizontal versus vertical
// line segments separates bar charts from line charts. Finally a
// per-type [Extractor] pulls ordered data points out of the region.
//
// Extractor factories register themselves in a registry keyed by
// chart type, so custom extractors can replace the built-in ones;
// each detection pass builds its own instances from the factories:
//
//	charts.RegisterExtractor(func() charts.Extractor { return myExtractor() })
//
// The full pipeline is available through [Detect]:
//
//	result := charts.Detect(img, charts.DefaultConfig())
//	for _, chart := range result.Charts {
//		fmt.Println(chart.Type, chart.PointCount())
//	}
//
// Extracted values are measurements of pixels, not of the chart's
// underlying data: bar values are relative heights scaled to 0-100 and
// pie percentages are placeholders. The field names mark them as
// approximate.
package charts
