package vision

import (
	"image"
	"math"
	"math/rand"
)

// Segment is a detected line segment in pixel coordinates.
type Segment struct {
	X1, Y1 int
	X2, Y2 int
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(float64(s.X2-s.X1), float64(s.Y2-s.Y1))
}

// DX returns the absolute horizontal extent of the segment.
func (s Segment) DX() int {
	return abs(s.X2 - s.X1)
}

// DY returns the absolute vertical extent of the segment.
func (s Segment) DY() int {
	return abs(s.Y2 - s.Y1)
}

// Number of accumulator angle bins (one per degree).
const houghAngles = 180

// DetectSegments finds line segments in an edge map using the
// progressive probabilistic Hough transform. Edge pixels vote in a
// (theta, rho) accumulator; once a bin crosses threshold, the image is
// walked along that line to recover a concrete segment. Segments
// shorter than minLength are discarded and gaps up to maxGap are
// bridged. The pixel seed order is randomized with a fixed seed so
// results are reproducible.
func DetectSegments(edges *image.Gray, threshold int, minLength, maxGap float64) []Segment {
	edges = zeroOrigin(edges)
	w, h := Dimensions(edges)
	if w == 0 || h == 0 || threshold < 1 {
		return nil
	}

	// Step 1: collect edge pixels
	var points []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Pix[y*edges.Stride+x] != 0 {
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	available := make([]bool, w*h)
	voted := make([]bool, w*h)
	for _, p := range points {
		available[p.Y*w+p.X] = true
	}

	sinTab := make([]float64, houghAngles)
	cosTab := make([]float64, houghAngles)
	for t := 0; t < houghAngles; t++ {
		angle := float64(t) * math.Pi / houghAngles
		sinTab[t] = math.Sin(angle)
		cosTab[t] = math.Cos(angle)
	}

	maxRho := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	acc := make([]int, houghAngles*(2*maxRho+1))
	rhoIndex := func(t int, rho float64) int {
		return t*(2*maxRho+1) + int(math.Round(rho)) + maxRho
	}

	rng := rand.New(rand.NewSource(1))
	order := rng.Perm(len(points))

	var segments []Segment

	// Step 2: vote one random pixel at a time; a bin crossing the
	// threshold triggers segment recovery along its line
	for _, idx := range order {
		p := points[idx]
		if !available[p.Y*w+p.X] {
			continue
		}
		voted[p.Y*w+p.X] = true

		bestT, bestVotes := -1, 0
		for t := 0; t < houghAngles; t++ {
			rho := float64(p.X)*cosTab[t] + float64(p.Y)*sinTab[t]
			i := rhoIndex(t, rho)
			acc[i]++
			if acc[i] > bestVotes {
				bestVotes = acc[i]
				bestT = t
			}
		}
		if bestVotes < threshold {
			continue
		}

		// Walk the line through p in both directions, bridging gaps
		// up to maxGap
		dirX := -sinTab[bestT]
		dirY := cosTab[bestT]
		end1 := walkLine(available, w, h, p, dirX, dirY, maxGap)
		end2 := walkLine(available, w, h, p, -dirX, -dirY, maxGap)

		seg := Segment{X1: end1.X, Y1: end1.Y, X2: end2.X, Y2: end2.Y}
		if seg.Length() < minLength {
			continue
		}
		segments = append(segments, seg)

		// Step 3: release the segment's pixels and cancel their votes
		// so one line is not reported twice
		removeSegmentPixels(available, voted, acc, w, h, seg, sinTab, cosTab, rhoIndex)
	}
	return segments
}

// walkLine marches from start along (dx, dy), following available edge
// pixels within a one-pixel corridor, and returns the last edge pixel
// reached before the gap budget runs out.
func walkLine(available []bool, w, h int, start image.Point, dx, dy, maxGap float64) image.Point {
	last := start
	gap := 0.0
	x := float64(start.X)
	y := float64(start.Y)

	for {
		x += dx
		y += dy
		xi := int(math.Round(x))
		yi := int(math.Round(y))
		if xi < 0 || xi >= w || yi < 0 || yi >= h {
			break
		}

		if nearbyEdge(available, w, h, xi, yi) {
			last = image.Point{X: xi, Y: yi}
			gap = 0
		} else {
			gap++
			if gap > maxGap {
				break
			}
		}
	}
	return last
}

// nearbyEdge reports whether an available edge pixel lies in the 3x3
// window around (x, y), absorbing rasterization jitter.
func nearbyEdge(available []bool, w, h, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			ny := y + dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if available[ny*w+nx] {
				return true
			}
		}
	}
	return false
}

// removeSegmentPixels releases every edge pixel within one pixel of
// the recovered segment and cancels the accumulator votes of those
// that had already voted.
func removeSegmentPixels(available, voted []bool, acc []int, w, h int, seg Segment,
	sinTab, cosTab []float64, rhoIndex func(int, float64) int) {

	length := seg.Length()
	steps := int(length) + 1
	dx := float64(seg.X2-seg.X1) / float64(steps)
	dy := float64(seg.Y2-seg.Y1) / float64(steps)

	for s := 0; s <= steps; s++ {
		xi := int(math.Round(float64(seg.X1) + dx*float64(s)))
		yi := int(math.Round(float64(seg.Y1) + dy*float64(s)))

		for oy := -1; oy <= 1; oy++ {
			for ox := -1; ox <= 1; ox++ {
				nx := xi + ox
				ny := yi + oy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				i := ny*w + nx
				if !available[i] {
					continue
				}
				available[i] = false
				if voted[i] {
					for t := 0; t < houghAngles; t++ {
						rho := float64(nx)*cosTab[t] + float64(ny)*sinTab[t]
						acc[rhoIndex(t, rho)]--
					}
				}
			}
		}
	}
}
