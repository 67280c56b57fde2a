package charts

import (
	"image"
	"math"

	"github.com/tsawler/figura/model"
)

// DetectionResult is the outcome of a detection pass over one image.
type DetectionResult struct {
	// Charts holds every region that classified as a chart, with its
	// extracted data points, in the order the regions were found.
	Charts []*model.Chart `json:"charts"`

	// Candidates is the number of regions proposed before
	// classification, including those discarded as unclassifiable.
	Candidates int `json:"candidates"`
}

// Detect runs the full chart pipeline on img: region proposal,
// classification, and per-type data extraction. Regions matching no
// chart shape are dropped. A nil image produces an empty result.
//
// Extractors are looked up in the global registry, so types
// registered with [RegisterExtractor] take part automatically.
func Detect(img image.Image, config Config) DetectionResult {
	detector := &RegionDetector{config: config}
	classifier := &Classifier{config: config}

	regions := detector.Detect(img)

	result := DetectionResult{Candidates: len(regions)}
	for _, region := range regions {
		kind, confidence := classifier.Classify(region)
		if kind == model.ChartUnknown {
			continue
		}
		region.Type = kind
		region.Confidence = confidence

		extractor := GetExtractor(kind)
		if extractor == nil {
			continue
		}
		if err := extractor.Configure(config); err != nil {
			continue
		}
		chart, err := extractor.Extract(region)
		if err != nil || chart == nil {
			continue
		}
		result.Charts = append(result.Charts, chart)
	}
	return result
}

// newChart starts a chart for a classified region, carrying over the
// region's position and classification confidence.
func newChart(kind model.ChartType, region model.Region) *model.Chart {
	return &model.Chart{
		Type:       kind,
		Rect:       region.Rect,
		Confidence: region.Confidence,
	}
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
