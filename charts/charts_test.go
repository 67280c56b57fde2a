package charts

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/tsawler/figura/internal/vision"
	"github.com/tsawler/figura/model"
)

// fillGray paints a filled rectangle of the given intensity.
func fillGray(g *image.Gray, x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// drawDisk paints a filled disc.
func drawDisk(g *image.Gray, cx, cy, r int, v uint8) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if math.Hypot(float64(x-cx), float64(y-cy)) <= float64(r) {
				g.SetGray(x, y, color.Gray{Y: v})
			}
		}
	}
}

// hline and vline paint 1-pixel axis-aligned lines.
func hline(g *image.Gray, x0, x1, y int, v uint8) {
	for x := x0; x < x1; x++ {
		g.SetGray(x, y, color.Gray{Y: v})
	}
}

func vline(g *image.Gray, x, y0, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		g.SetGray(x, y, color.Gray{Y: v})
	}
}

// grayRegion wraps a grayscale image as an untyped candidate region.
func grayRegion(g *image.Gray) model.Region {
	return model.Region{
		Rect:  model.RectFromImage(g.Bounds()),
		Type:  model.ChartUnknown,
		Image: g,
	}
}

// makeSegments builds a synthetic mix of horizontal, vertical and
// diagonal segments.
func makeSegments(horizontal, vertical, diagonal int) []vision.Segment {
	var segments []vision.Segment
	for i := 0; i < horizontal; i++ {
		segments = append(segments, vision.Segment{X1: 10, Y1: 5 + i, X2: 90, Y2: 5 + i})
	}
	for i := 0; i < vertical; i++ {
		segments = append(segments, vision.Segment{X1: 5 + i, Y1: 10, X2: 5 + i, Y2: 90})
	}
	for i := 0; i < diagonal; i++ {
		segments = append(segments, vision.Segment{X1: i, Y1: 10, X2: i + 60, Y2: 70})
	}
	return segments
}

// ============================================================================
// Classifier Tests
// ============================================================================

func TestClassifySegments(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name       string
		horizontal int
		vertical   int
		diagonal   int
		want       model.ChartType
	}{
		{"horizontal heavy", 16, 8, 0, model.ChartBar},
		{"near even mix", 10, 9, 0, model.ChartLine},
		{"horizontal only", 12, 0, 0, model.ChartBar},
		{"vertical heavy", 4, 12, 0, model.ChartLine},
		{"all diagonal", 0, 0, 12, model.ChartLine},
		{"too few segments", 5, 3, 0, model.ChartUnknown},
		{"no segments", 0, 0, 0, model.ChartUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := makeSegments(tt.horizontal, tt.vertical, tt.diagonal)
			if got := classifier.classifySegments(segments); got != tt.want {
				t.Errorf("classifySegments(%dh, %dv, %dd) = %v, want %v",
					tt.horizontal, tt.vertical, tt.diagonal, got, tt.want)
			}
		})
	}
}

func TestClassifySegmentsTolerance(t *testing.T) {
	classifier := NewClassifier()

	// A rise of 4 pixels over the segment is still horizontal
	var within []vision.Segment
	for i := 0; i < 12; i++ {
		within = append(within, vision.Segment{X1: 0, Y1: 10 * i, X2: 80, Y2: 10*i + 4})
	}
	if got := classifier.classifySegments(within); got != model.ChartBar {
		t.Errorf("segments with rise 4 classified as %v, want %v", got, model.ChartBar)
	}

	// A rise of 5 pixels is neither horizontal nor vertical, so the
	// mix no longer favors bars
	var outside []vision.Segment
	for i := 0; i < 12; i++ {
		outside = append(outside, vision.Segment{X1: 0, Y1: 10 * i, X2: 80, Y2: 10*i + 5})
	}
	if got := classifier.classifySegments(outside); got != model.ChartLine {
		t.Errorf("segments with rise 5 classified as %v, want %v", got, model.ChartLine)
	}
}

func TestSegmentConfidence(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		count int
		want  float64
	}{
		{0, 0.5},
		{10, 0.7},
		{20, 0.9},
		{100, 0.9},
	}

	for _, tt := range tests {
		if got := classifier.segmentConfidence(tt.count); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("segmentConfidence(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestClassifyPieRegion(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 120, 120))
	fillGray(g, 0, 0, 120, 120, 255)
	drawDisk(g, 60, 60, 30, 20)

	classifier := NewClassifier()
	kind, confidence := classifier.Classify(grayRegion(g))
	if kind != model.ChartPie {
		t.Fatalf("Classify() = %v, want %v", kind, model.ChartPie)
	}
	if confidence != DefaultConfig().RegionConfidence {
		t.Errorf("confidence = %v, want %v", confidence, DefaultConfig().RegionConfidence)
	}
}

func TestClassifyBarRegion(t *testing.T) {
	// Horizontal gridlines dominate with only two vertical axis lines
	g := image.NewGray(image.Rect(0, 0, 200, 150))
	for i := 0; i < 8; i++ {
		hline(g, 20, 180, 15+15*i, 255)
	}
	vline(g, 20, 10, 140, 255)
	vline(g, 175, 10, 140, 255)

	classifier := NewClassifier()
	kind, confidence := classifier.Classify(grayRegion(g))
	if kind != model.ChartBar {
		t.Fatalf("Classify() = %v, want %v", kind, model.ChartBar)
	}
	if confidence < 0.5 || confidence > 0.9 {
		t.Errorf("confidence = %v, want within [0.5, 0.9]", confidence)
	}
}

func TestClassifyLineRegion(t *testing.T) {
	// An even grid has no horizontal majority
	g := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := 0; i < 5; i++ {
		hline(g, 10, 190, 20+40*i, 255)
		vline(g, 20+40*i, 10, 190, 255)
	}

	classifier := NewClassifier()
	kind, _ := classifier.Classify(grayRegion(g))
	if kind != model.ChartLine {
		t.Fatalf("Classify() = %v, want %v", kind, model.ChartLine)
	}
}

func TestClassifyBlankRegion(t *testing.T) {
	classifier := NewClassifier()

	kind, confidence := classifier.Classify(model.Region{})
	if kind != model.ChartUnknown || confidence != 0 {
		t.Errorf("empty region classified as %v with confidence %v", kind, confidence)
	}

	kind, confidence = classifier.Classify(grayRegion(image.NewGray(image.Rect(0, 0, 150, 150))))
	if kind != model.ChartUnknown || confidence != 0 {
		t.Errorf("blank region classified as %v with confidence %v", kind, confidence)
	}
}

// ============================================================================
// Region Detector Tests
// ============================================================================

func TestRegionDetectorFindsRegion(t *testing.T) {
	page := image.NewGray(image.Rect(0, 0, 400, 300))
	fillGray(page, 50, 80, 200, 180, 255)

	detector := NewRegionDetector()
	regions := detector.Detect(page)
	if len(regions) != 1 {
		t.Fatalf("Detect() found %d regions, want 1", len(regions))
	}

	r := regions[0]
	if r.Rect.X < 47 || r.Rect.X > 53 || r.Rect.Y < 77 || r.Rect.Y > 83 {
		t.Errorf("region origin = (%d,%d), want near (50,80)", r.Rect.X, r.Rect.Y)
	}
	if r.Rect.Width < 144 || r.Rect.Width > 156 || r.Rect.Height < 94 || r.Rect.Height > 106 {
		t.Errorf("region size = %dx%d, want near 150x100", r.Rect.Width, r.Rect.Height)
	}
	if r.Type != model.ChartUnknown {
		t.Errorf("region type = %v, want %v before classification", r.Type, model.ChartUnknown)
	}
	if r.Image == nil {
		t.Fatal("region carries no cropped image")
	}
	crop := r.Image.Bounds()
	if crop.Dx() != r.Rect.Width || crop.Dy() != r.Rect.Height {
		t.Errorf("crop size = %dx%d, want %dx%d", crop.Dx(), crop.Dy(), r.Rect.Width, r.Rect.Height)
	}
}

func TestRegionDetectorFiltersByArea(t *testing.T) {
	detector := NewRegionDetector()

	// A small blob is rejected
	page := image.NewGray(image.Rect(0, 0, 400, 300))
	fillGray(page, 10, 10, 40, 40, 255)
	if regions := detector.Detect(page); len(regions) != 0 {
		t.Errorf("small blob produced %d regions", len(regions))
	}

	// A near full-page block is rejected
	page = image.NewGray(image.Rect(0, 0, 400, 300))
	fillGray(page, 2, 2, 398, 298, 255)
	if regions := detector.Detect(page); len(regions) != 0 {
		t.Errorf("full page block produced %d regions", len(regions))
	}
}

func TestRegionDetectorDegenerateInput(t *testing.T) {
	detector := NewRegionDetector()

	if regions := detector.Detect(nil); regions != nil {
		t.Errorf("nil image produced %d regions", len(regions))
	}
	if regions := detector.Detect(image.NewGray(image.Rect(0, 0, 0, 0))); regions != nil {
		t.Errorf("empty image produced %d regions", len(regions))
	}
	if regions := detector.Detect(image.NewGray(image.Rect(0, 0, 400, 300))); regions != nil {
		t.Errorf("blank page produced %d regions", len(regions))
	}
}

// ============================================================================
// Extractor Tests
// ============================================================================

func TestBarExtractorMeasuresBars(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 200, 150))
	fillGray(g, 20, 90, 50, 150, 255)
	fillGray(g, 70, 50, 100, 150, 255)
	fillGray(g, 120, 120, 150, 150, 255)

	region := grayRegion(g)
	region.Confidence = 0.7

	extractor := NewBarExtractor()
	chart, err := extractor.Extract(region)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if chart.Type != model.ChartBar {
		t.Errorf("chart type = %v, want %v", chart.Type, model.ChartBar)
	}
	if chart.Confidence != 0.7 {
		t.Errorf("chart confidence = %v, want region confidence 0.7", chart.Confidence)
	}
	if len(chart.Bars) != 3 {
		t.Fatalf("found %d bars, want 3", len(chart.Bars))
	}

	// Bars are reported left to right with heights relative to the
	// region height
	wantValues := []float64{40, 66.67, 20}
	for i, bar := range chart.Bars {
		if want := "Bar_" + strconv.Itoa(i); bar.Label != want {
			t.Errorf("bar %d label = %q, want %q", i, bar.Label, want)
		}
		if math.Abs(bar.ApproxValue-wantValues[i]) > 0.01 {
			t.Errorf("bar %d value = %v, want %v", i, bar.ApproxValue, wantValues[i])
		}
		if bar.Confidence != DefaultConfig().BarConfidence {
			t.Errorf("bar %d confidence = %v, want %v", i, bar.Confidence, DefaultConfig().BarConfidence)
		}
	}
	if chart.Bars[0].Rect.X >= chart.Bars[1].Rect.X || chart.Bars[1].Rect.X >= chart.Bars[2].Rect.X {
		t.Error("bars are not ordered left to right")
	}
}

func TestBarExtractorEmptyRegion(t *testing.T) {
	extractor := NewBarExtractor()

	chart, err := extractor.Extract(model.Region{})
	if err != nil {
		t.Fatalf("Extract() on empty region error = %v", err)
	}
	if len(chart.Bars) != 0 {
		t.Errorf("empty region produced %d bars", len(chart.Bars))
	}

	chart, err = extractor.Extract(grayRegion(image.NewGray(image.Rect(0, 0, 120, 80))))
	if err != nil {
		t.Fatalf("Extract() on blank region error = %v", err)
	}
	if len(chart.Bars) != 0 {
		t.Errorf("blank region produced %d bars", len(chart.Bars))
	}
}

func TestPieExtractorFindsSlice(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 120, 120))
	fillGray(g, 0, 0, 120, 120, 255)
	drawDisk(g, 60, 60, 30, 20)

	region := grayRegion(g)
	region.Confidence = 0.7

	extractor := NewPieExtractor()
	chart, err := extractor.Extract(region)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if chart.Type != model.ChartPie {
		t.Errorf("chart type = %v, want %v", chart.Type, model.ChartPie)
	}
	if len(chart.Slices) == 0 {
		t.Fatal("no slices found")
	}

	s := chart.Slices[0]
	if s.Label != "Slice_0" {
		t.Errorf("slice label = %q, want %q", s.Label, "Slice_0")
	}
	if s.ApproxPercent != DefaultConfig().SlicePercent {
		t.Errorf("slice percent = %v, want placeholder %v", s.ApproxPercent, DefaultConfig().SlicePercent)
	}
	if s.Confidence != DefaultConfig().SliceConfidence {
		t.Errorf("slice confidence = %v, want %v", s.Confidence, DefaultConfig().SliceConfidence)
	}
	if math.Hypot(s.Center.X-60, s.Center.Y-60) > 5 {
		t.Errorf("slice center = (%v,%v), want near (60,60)", s.Center.X, s.Center.Y)
	}
	if s.Radius < 27 || s.Radius > 33 {
		t.Errorf("slice radius = %v, want near 30", s.Radius)
	}
}

func TestPieExtractorEmptyRegion(t *testing.T) {
	extractor := NewPieExtractor()

	chart, err := extractor.Extract(model.Region{})
	if err != nil {
		t.Fatalf("Extract() on empty region error = %v", err)
	}
	if len(chart.Slices) != 0 {
		t.Errorf("empty region produced %d slices", len(chart.Slices))
	}
}

func TestLineExtractorSamplesPoints(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 100, 50))
	fillGray(g, 30, 15, 70, 35, 255)

	extractor := NewLineExtractor()
	chart, err := extractor.Extract(grayRegion(g))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if chart.Type != model.ChartLine {
		t.Errorf("chart type = %v, want %v", chart.Type, model.ChartLine)
	}
	if len(chart.Points) < 4 {
		t.Fatalf("found %d points, want at least the 4 corners", len(chart.Points))
	}
	if len(chart.Points) > DefaultConfig().MaxCorners {
		t.Fatalf("found %d points, want at most %d", len(chart.Points), DefaultConfig().MaxCorners)
	}

	for i, p := range chart.Points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Errorf("point %d = (%v,%v), want normalized to [0,1]", i, p.X, p.Y)
		}
		if p.Confidence != DefaultConfig().PointConfidence {
			t.Errorf("point %d confidence = %v, want %v", i, p.Confidence, DefaultConfig().PointConfidence)
		}
		if !image.Pt(p.Pixel.X, p.Pixel.Y).In(g.Bounds()) {
			t.Errorf("point %d pixel %v is outside the region", i, p.Pixel)
		}
		if i > 0 && p.X < chart.Points[i-1].X {
			t.Errorf("point %d breaks left-to-right ordering", i)
		}
	}

	// The y axis is flipped: a corner on the top edge of the block
	// maps to a high normalized y
	var maxY float64
	for _, p := range chart.Points {
		maxY = max(maxY, p.Y)
	}
	if maxY < 0.6 {
		t.Errorf("highest point y = %v, want above 0.6 for a block topping at pixel row 15", maxY)
	}
}

func TestLineExtractorEmptyRegion(t *testing.T) {
	extractor := NewLineExtractor()

	chart, err := extractor.Extract(model.Region{})
	if err != nil {
		t.Fatalf("Extract() on empty region error = %v", err)
	}
	if len(chart.Points) != 0 {
		t.Errorf("empty region produced %d points", len(chart.Points))
	}
}

// ============================================================================
// Registry Tests
// ============================================================================

func TestDefaultRegistry(t *testing.T) {
	kinds := []model.ChartType{model.ChartBar, model.ChartPie, model.ChartLine}
	for _, kind := range kinds {
		extractor := GetExtractor(kind)
		if extractor == nil {
			t.Fatalf("no extractor registered for %v", kind)
		}
		if extractor.Type() != kind {
			t.Errorf("extractor for %v reports type %v", kind, extractor.Type())
		}
	}
	if got := len(ListExtractors()); got < len(kinds) {
		t.Errorf("ListExtractors() returned %d types, want at least %d", got, len(kinds))
	}
	if GetExtractor(model.ChartUnknown) != nil {
		t.Error("unknown chart type has an extractor")
	}
}

func TestCustomRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(func() Extractor { return NewBarExtractor() })

	if registry.Get(model.ChartBar) == nil {
		t.Error("registered extractor not found")
	}
	if registry.Get(model.ChartPie) != nil {
		t.Error("unregistered chart type has an extractor")
	}
	if got := registry.List(); len(got) != 1 || got[0] != model.ChartBar {
		t.Errorf("List() = %v, want [%v]", got, model.ChartBar)
	}
}

func TestGetExtractorReturnsFreshInstances(t *testing.T) {
	a := GetExtractor(model.ChartPie)
	b := GetExtractor(model.ChartPie)
	if a == b {
		t.Fatal("GetExtractor() handed out the same instance twice")
	}

	changed := DefaultConfig()
	changed.SlicePercent = 99
	if err := a.Configure(changed); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	// The second instance keeps its own configuration
	g := image.NewGray(image.Rect(0, 0, 120, 120))
	fillGray(g, 0, 0, 120, 120, 255)
	drawDisk(g, 60, 60, 30, 20)

	chart, err := b.Extract(grayRegion(g))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(chart.Slices) == 0 {
		t.Fatal("no slices extracted")
	}
	if got := chart.Slices[0].ApproxPercent; got != DefaultConfig().SlicePercent {
		t.Errorf("slice percent = %v, want the default %v", got, DefaultConfig().SlicePercent)
	}
}

func TestDetectConcurrentConfigs(t *testing.T) {
	page := image.NewGray(image.Rect(0, 0, 400, 300))
	fillGray(page, 0, 0, 400, 300, 255)
	drawDisk(page, 150, 120, 45, 20)

	// Each goroutine must see its own configuration reflected in its
	// results, never a concurrent caller's
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		percent := float64(10 * (i + 1))
		wg.Add(1)
		go func() {
			defer wg.Done()
			config := DefaultConfig()
			config.SlicePercent = percent
			result := Detect(page, config)
			if len(result.Charts) == 0 {
				t.Error("no charts detected")
				return
			}
			for _, chart := range result.Charts {
				for _, slice := range chart.Slices {
					if slice.ApproxPercent != percent {
						t.Errorf("slice percent = %v, want %v", slice.ApproxPercent, percent)
					}
				}
			}
		}()
	}
	wg.Wait()
}

// ============================================================================
// Pipeline Tests
// ============================================================================

func TestDetectPiePage(t *testing.T) {
	page := image.NewGray(image.Rect(0, 0, 400, 300))
	fillGray(page, 0, 0, 400, 300, 255)
	drawDisk(page, 150, 120, 45, 20)

	result := Detect(page, DefaultConfig())
	if result.Candidates == 0 {
		t.Fatal("no candidate regions proposed")
	}
	if len(result.Charts) == 0 {
		t.Fatal("no charts detected")
	}

	chart := result.Charts[0]
	if chart.Type != model.ChartPie {
		t.Fatalf("chart type = %v, want %v", chart.Type, model.ChartPie)
	}
	if chart.Confidence != DefaultConfig().RegionConfidence {
		t.Errorf("chart confidence = %v, want %v", chart.Confidence, DefaultConfig().RegionConfidence)
	}
	if chart.PointCount() == 0 {
		t.Error("pie chart has no extracted slices")
	}

	// The chart rectangle should cover the disc
	r := chart.Rect
	if r.X > 110 || r.Y > 80 || r.Right() < 190 || r.Bottom() < 160 {
		t.Errorf("chart rect %+v does not cover the disc", r)
	}
}

func TestDetectEmptyPage(t *testing.T) {
	result := Detect(image.NewGray(image.Rect(0, 0, 400, 300)), DefaultConfig())
	if result.Candidates != 0 || len(result.Charts) != 0 {
		t.Errorf("blank page produced %d candidates and %d charts", result.Candidates, len(result.Charts))
	}

	result = Detect(nil, DefaultConfig())
	if len(result.Charts) != 0 {
		t.Errorf("nil image produced %d charts", len(result.Charts))
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{66.66666, 2, 66.67},
		{0.12345, 3, 0.123},
		{40, 2, 40},
		{2.5, 0, 3},
	}

	for _, tt := range tests {
		if got := roundTo(tt.value, tt.places); got != tt.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
		}
	}
}
