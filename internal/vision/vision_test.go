package vision

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// fillRect paints a filled rectangle of the given intensity.
func fillRect(g *image.Gray, x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// drawRectOutline paints a 1-pixel rectangle outline.
func drawRectOutline(g *image.Gray, x0, y0, x1, y1 int, v uint8) {
	for x := x0; x < x1; x++ {
		g.SetGray(x, y0, color.Gray{Y: v})
		g.SetGray(x, y1-1, color.Gray{Y: v})
	}
	for y := y0; y < y1; y++ {
		g.SetGray(x0, y, color.Gray{Y: v})
		g.SetGray(x1-1, y, color.Gray{Y: v})
	}
}

// drawCircleOutline paints an approximate 1-pixel circle outline.
func drawCircleOutline(g *image.Gray, cx, cy, r int, v uint8) {
	steps := 8 * r
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(float64(r)*math.Cos(angle)))
		y := cy + int(math.Round(float64(r)*math.Sin(angle)))
		if image.Pt(x, y).In(g.Bounds()) {
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// ============================================================================
// Conversion and Filtering Tests
// ============================================================================

func TestToGray(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			rgba.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	gray := ToGray(rgba)
	if got := gray.GrayAt(2, 2).Y; got != 255 {
		t.Errorf("white pixel converted to %d, want 255", got)
	}

	b := gray.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 {
		t.Errorf("ToGray() bounds = %v, want zero origin", b)
	}
}

func TestToGraySubImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	fillRect(src, 5, 5, 10, 10, 200)

	sub := src.SubImage(image.Rect(5, 5, 10, 10)).(*image.Gray)
	gray := ToGray(sub)

	if w, h := Dimensions(gray); w != 5 || h != 5 {
		t.Fatalf("Dimensions() = %dx%d, want 5x5", w, h)
	}
	if got := gray.GrayAt(0, 0).Y; got != 200 {
		t.Errorf("sub-image pixel = %d, want 200", got)
	}
}

func TestGaussianBlurPreservesFlatRegions(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	fillRect(g, 0, 0, 10, 10, 100)

	blurred := GaussianBlur(g, 3)
	if got := blurred.GrayAt(5, 5).Y; got != 100 {
		t.Errorf("flat region blurred to %d, want 100", got)
	}
}

func TestGaussianBlurSmoothsEdges(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	fillRect(g, 5, 0, 10, 10, 255)

	blurred := GaussianBlur(g, 3)
	edge := blurred.GrayAt(4, 5).Y
	if edge == 0 || edge == 255 {
		t.Errorf("edge pixel = %d, want intermediate value", edge)
	}
}

func TestThreshold(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 1))
	g.SetGray(0, 0, color.Gray{Y: 0})
	g.SetGray(1, 0, color.Gray{Y: 127})
	g.SetGray(2, 0, color.Gray{Y: 128})
	g.SetGray(3, 0, color.Gray{Y: 255})

	bin := Threshold(g, 127)
	want := []uint8{0, 0, 255, 255}
	for x, expected := range want {
		if got := bin.GrayAt(x, 0).Y; got != expected {
			t.Errorf("pixel %d = %d, want %d", x, got, expected)
		}
	}
}

func TestAdaptiveMeanThresholdInverted(t *testing.T) {
	// Dark text stroke on a light page
	g := image.NewGray(image.Rect(0, 0, 20, 20))
	fillRect(g, 0, 0, 20, 20, 220)
	fillRect(g, 8, 4, 12, 16, 30)

	bin := AdaptiveMeanThreshold(g, 11, 2, true)
	if got := bin.GrayAt(10, 10).Y; got != 255 {
		t.Errorf("stroke pixel = %d, want 255 (foreground)", got)
	}
	if got := bin.GrayAt(2, 2).Y; got != 0 {
		t.Errorf("page pixel = %d, want 0 (background)", got)
	}
}

func TestCannyFindsRectangleEdges(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 60, 60))
	fillRect(g, 15, 15, 45, 45, 255)

	edges := Canny(g, 50, 150)

	edgeCount := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if edges.GrayAt(x, y).Y != 0 {
				edgeCount++
			}
		}
	}
	if edgeCount < 80 {
		t.Errorf("edge pixel count = %d, want at least the rectangle perimeter", edgeCount)
	}

	if got := edges.GrayAt(30, 30).Y; got != 0 {
		t.Errorf("interior pixel = %d, want 0", got)
	}
}

func TestCannyEmptyImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 0, 0))
	edges := Canny(g, 50, 150)
	if w, h := Dimensions(edges); w != 0 || h != 0 {
		t.Errorf("empty input produced %dx%d output", w, h)
	}
}

// ============================================================================
// Morphology Tests
// ============================================================================

func TestCloseBridgesGap(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 20, 10))
	// Two blocks separated by a 2-pixel gap
	fillRect(g, 2, 2, 9, 8, 255)
	fillRect(g, 11, 2, 18, 8, 255)

	closed := Close(g, 5, 5)
	if got := closed.GrayAt(9, 5).Y; got != 255 {
		t.Errorf("gap pixel = %d, want 255 after closing", got)
	}

	contours := FindContours(closed)
	if len(contours) != 1 {
		t.Errorf("component count after closing = %d, want 1", len(contours))
	}
}

func TestErodeRemovesSpeck(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	g.SetGray(5, 5, color.Gray{Y: 255})

	eroded := Erode(g, 3, 3)
	if got := eroded.GrayAt(5, 5).Y; got != 0 {
		t.Errorf("lone pixel survived erosion: %d", got)
	}
}

// ============================================================================
// Contour Tests
// ============================================================================

func TestFindContoursFilledRect(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 50, 50))
	fillRect(g, 10, 10, 40, 30, 255)

	contours := FindContours(g)
	if len(contours) != 1 {
		t.Fatalf("contour count = %d, want 1", len(contours))
	}

	rect := contours[0].BoundingRect()
	want := image.Rect(10, 10, 40, 30)
	if rect != want {
		t.Errorf("BoundingRect() = %v, want %v", rect, want)
	}

	// Shoelace over boundary pixel centers gives (w-1)*(h-1)
	area := contours[0].Area()
	if math.Abs(area-29*19) > 29+19 {
		t.Errorf("Area() = %v, want about %v", area, 29*19)
	}
}

func TestFindContoursOutline(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 100, 100))
	drawRectOutline(g, 10, 10, 90, 90, 255)

	contours := FindContours(g)
	if len(contours) != 1 {
		t.Fatalf("contour count = %d, want 1", len(contours))
	}

	// The external boundary encloses the outlined area
	area := contours[0].Area()
	if area < 5000 {
		t.Errorf("Area() = %v, want > 5000 for an 80x80 outline", area)
	}
}

func TestFindContoursMultipleComponents(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 40, 40))
	fillRect(g, 2, 2, 10, 10, 255)
	fillRect(g, 20, 20, 30, 30, 255)

	contours := FindContours(g)
	if len(contours) != 2 {
		t.Errorf("contour count = %d, want 2", len(contours))
	}
}

func TestFindContoursSinglePixel(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	g.SetGray(3, 3, color.Gray{Y: 255})

	contours := FindContours(g)
	if len(contours) != 1 {
		t.Fatalf("contour count = %d, want 1", len(contours))
	}
	if area := contours[0].Area(); area != 0 {
		t.Errorf("single pixel Area() = %v, want 0", area)
	}
	if rect := contours[0].BoundingRect(); rect != image.Rect(3, 3, 4, 4) {
		t.Errorf("BoundingRect() = %v, want 1x1 at (3,3)", rect)
	}
}

func TestFindContoursEmptyImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	if contours := FindContours(g); len(contours) != 0 {
		t.Errorf("blank image produced %d contours", len(contours))
	}
}

// ============================================================================
// Circle Detection Tests
// ============================================================================

func TestDetectCirclesFindsCircle(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 120, 120))
	fillRect(g, 0, 0, 120, 120, 255)
	// Filled dark disc on light background gives a clean gradient
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if math.Hypot(float64(x-60), float64(y-60)) <= 30 {
				g.SetGray(x, y, color.Gray{Y: 20})
			}
		}
	}

	circles := DetectCircles(g, 10, 100)
	if len(circles) == 0 {
		t.Fatal("no circles detected")
	}

	c := circles[0]
	if math.Hypot(float64(c.X-60), float64(c.Y-60)) > 5 {
		t.Errorf("center = (%d,%d), want near (60,60)", c.X, c.Y)
	}
	if c.Radius < 27 || c.Radius > 33 {
		t.Errorf("radius = %d, want near 30", c.Radius)
	}
}

func TestDetectCirclesRejectsBlank(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 100, 100))
	if circles := DetectCircles(g, 10, 100); len(circles) != 0 {
		t.Errorf("blank image produced %d circles", len(circles))
	}
}

func TestDetectCirclesRejectsLineGrid(t *testing.T) {
	// Evenly spaced gridlines put many edge pixels at matching
	// distances from their crossings, but never around a full
	// circumference
	g := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := 0; i < 5; i++ {
		pos := 20 + 40*i
		for x := 10; x < 190; x++ {
			g.SetGray(x, pos, color.Gray{Y: 255})
		}
		for y := 10; y < 190; y++ {
			g.SetGray(pos, y, color.Gray{Y: 255})
		}
	}

	if circles := DetectCircles(g, 10, 100); len(circles) != 0 {
		t.Errorf("line grid produced %d circles", len(circles))
	}
}

func TestDetectCirclesRejectsRectangle(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 100, 100))
	fillRect(g, 0, 0, 100, 100, 255)
	fillRect(g, 20, 20, 80, 80, 20)

	circles := DetectCircles(g, 10, 100)
	if len(circles) != 0 {
		t.Errorf("rectangle produced %d circles", len(circles))
	}
}

// ============================================================================
// Line Segment Tests
// ============================================================================

func TestDetectSegmentsHorizontalLine(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 100, 50))
	for x := 10; x < 90; x++ {
		edges.SetGray(x, 25, color.Gray{Y: 255})
	}

	segments := DetectSegments(edges, 50, 20, 10)
	if len(segments) == 0 {
		t.Fatal("no segments detected")
	}

	s := segments[0]
	if s.DY() > 3 {
		t.Errorf("horizontal line has DY = %d", s.DY())
	}
	if s.Length() < 50 {
		t.Errorf("segment length = %v, want most of the drawn line", s.Length())
	}
}

func TestDetectSegmentsEmptyImage(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 50, 50))
	if segments := DetectSegments(edges, 50, 20, 10); len(segments) != 0 {
		t.Errorf("blank image produced %d segments", len(segments))
	}
}

func TestSegmentGeometry(t *testing.T) {
	s := Segment{X1: 0, Y1: 0, X2: 3, Y2: 4}
	if s.Length() != 5 {
		t.Errorf("Length() = %v, want 5", s.Length())
	}
	if s.DX() != 3 || s.DY() != 4 {
		t.Errorf("DX, DY = %d, %d, want 3, 4", s.DX(), s.DY())
	}
}

// ============================================================================
// Corner Detection Tests
// ============================================================================

func TestGoodFeaturesFindsRectangleCorners(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 60, 60))
	fillRect(g, 20, 20, 40, 40, 255)

	corners := GoodFeatures(g, 20, 0.01, 10)
	if len(corners) < 4 {
		t.Fatalf("corner count = %d, want at least 4", len(corners))
	}

	// Every reported corner should be near one of the rectangle corners
	expected := []image.Point{{20, 20}, {39, 20}, {20, 39}, {39, 39}}
	for _, c := range corners[:4] {
		nearest := math.MaxFloat64
		for _, e := range expected {
			d := math.Hypot(float64(c.X-e.X), float64(c.Y-e.Y))
			if d < nearest {
				nearest = d
			}
		}
		if nearest > 4 {
			t.Errorf("corner %v is %v pixels from any rectangle corner", c, nearest)
		}
	}
}

func TestGoodFeaturesRespectsMaxCorners(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := 0; i < 5; i++ {
		fillRect(g, i*20+2, 10, i*20+12, 30, 255)
	}

	corners := GoodFeatures(g, 3, 0.01, 5)
	if len(corners) > 3 {
		t.Errorf("corner count = %d, want at most 3", len(corners))
	}
}

func TestGoodFeaturesBlankImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 50, 50))
	if corners := GoodFeatures(g, 20, 0.01, 10); len(corners) != 0 {
		t.Errorf("blank image produced %d corners", len(corners))
	}
}

// ============================================================================
// Benchmarks
// ============================================================================

func BenchmarkCanny(b *testing.B) {
	g := image.NewGray(image.Rect(0, 0, 200, 200))
	fillRect(g, 50, 50, 150, 150, 255)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Canny(g, 50, 150)
	}
}

func BenchmarkFindContours(b *testing.B) {
	g := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := 0; i < 10; i++ {
		fillRect(g, i*18+2, 40, i*18+14, 160, 255)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindContours(g)
	}
}
