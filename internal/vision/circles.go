package vision

import (
	"image"
	"math"
	"sort"
)

// Circle is a detected circle in pixel coordinates.
type Circle struct {
	X, Y   int
	Radius int
	Votes  int
}

const (
	// Pooled accumulator votes required before a pixel qualifies as
	// a circle center candidate.
	circleCenterThreshold = 30
	// Minimum separation between reported circle centers.
	circleMinCenterDist = 20.0
	// Fraction of a candidate circle's circumference that must be
	// covered by edge pixels.
	circleMinSupport = 0.3
	// Angular sectors around a candidate center, and how many of
	// them must contain edge pixels at the accepted radius. Straight
	// lines crossing an accumulator peak fill only a few sectors; a
	// genuine circle fills nearly all of them.
	circleAngleSectors = 16
	circleMinSectors   = 12
	// Distance tolerance when matching edge pixels to a radius.
	circleRadiusTolerance = 1.5
)

// DetectCircles finds circles with radii in [minRadius, maxRadius]
// using a gradient-direction Hough transform: edge pixels vote for
// centers along their gradient line, and candidate centers are then
// verified against the radius with the strongest edge support.
func DetectCircles(src *image.Gray, minRadius, maxRadius int) []Circle {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	if w == 0 || h == 0 || minRadius < 1 || maxRadius < minRadius {
		return nil
	}

	// Step 1: edge map and gradient directions
	edges := Canny(src, 50, 150)
	gx, gy, _, _ := gradients(src)

	var edgePoints []image.Point

	// Step 2: vote for centers along the gradient direction, both
	// toward and away from the edge
	acc := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Pix[y*edges.Stride+x] == 0 {
				continue
			}
			edgePoints = append(edgePoints, image.Point{X: x, Y: y})

			i := y*w + x
			mag := math.Hypot(float64(gx[i]), float64(gy[i]))
			if mag == 0 {
				continue
			}
			dx := float64(gx[i]) / mag
			dy := float64(gy[i]) / mag

			for r := minRadius; r <= maxRadius; r++ {
				for _, sign := range [2]float64{1, -1} {
					cx := x + int(math.Round(sign*dx*float64(r)))
					cy := y + int(math.Round(sign*dy*float64(r)))
					if cx >= 0 && cx < w && cy >= 0 && cy < h {
						acc[cy*w+cx]++
					}
				}
			}
		}
	}

	// Step 3: pool votes over a 3x3 neighborhood. Rounding along the
	// gradient line smears one center's votes across adjacent cells,
	// so a raw cell understates the true peak.
	pooled := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					sum += acc[ny*w+nx]
				}
			}
			pooled[y*w+x] = sum
		}
	}

	// Step 4: pick local-maximum centers above the vote threshold,
	// strongest first, suppressing near-duplicates
	type candidate struct {
		x, y  int
		votes int
	}
	var candidates []candidate
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := pooled[y*w+x]
			if v < circleCenterThreshold {
				continue
			}
			if v < pooled[y*w+x-1] || v < pooled[y*w+x+1] ||
				v < pooled[(y-1)*w+x] || v < pooled[(y+1)*w+x] {
				continue
			}
			candidates = append(candidates, candidate{x, y, v})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].votes > candidates[j].votes
	})

	var circles []Circle
	for _, c := range candidates {
		tooClose := false
		for _, existing := range circles {
			d := math.Hypot(float64(c.x-existing.X), float64(c.y-existing.Y))
			if d < circleMinCenterDist {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		// Step 5: estimate the radius from edge-pixel distances and
		// require circumference coverage in both count and angle.
		// The angular test is what separates circles from line
		// crossings: a grid puts plenty of edge pixels into some
		// radius bin, but only in the few sectors its lines cross.
		radius, support, sectors := bestRadius(edgePoints, c.x, c.y, minRadius, maxRadius)
		if radius == 0 {
			continue
		}
		needed := int(circleMinSupport * 2 * math.Pi * float64(radius))
		if support < needed || sectors < circleMinSectors {
			continue
		}

		circles = append(circles, Circle{X: c.x, Y: c.y, Radius: radius, Votes: c.votes})
	}
	return circles
}

// bestRadius histograms edge-pixel distances from a candidate center
// and returns the radius bin with the most support, together with the
// number of angular sectors that bin's pixels cover.
func bestRadius(edgePoints []image.Point, cx, cy, minRadius, maxRadius int) (radius, support, sectors int) {
	hist := make([]int, maxRadius+2)
	for _, p := range edgePoints {
		d := math.Hypot(float64(p.X-cx), float64(p.Y-cy))
		r := int(math.Round(d))
		if r >= minRadius && r <= maxRadius {
			hist[r]++
		}
	}

	bestR, bestCount := 0, 0
	for r := minRadius; r <= maxRadius; r++ {
		// Merge adjacent bins to absorb rasterization jitter
		count := hist[r]
		if r > minRadius {
			count += hist[r-1]
		}
		if r < maxRadius {
			count += hist[r+1]
		}
		if count > bestCount {
			bestCount = count
			bestR = r
		}
	}
	if bestR == 0 {
		return 0, 0, 0
	}

	var covered [circleAngleSectors]bool
	for _, p := range edgePoints {
		d := math.Hypot(float64(p.X-cx), float64(p.Y-cy))
		if math.Abs(d-float64(bestR)) > circleRadiusTolerance {
			continue
		}
		angle := math.Atan2(float64(p.Y-cy), float64(p.X-cx))
		sector := int((angle + math.Pi) / (2 * math.Pi) * circleAngleSectors)
		if sector >= circleAngleSectors {
			sector = circleAngleSectors - 1
		}
		covered[sector] = true
	}
	for _, c := range covered {
		if c {
			sectors++
		}
	}
	return bestR, bestCount, sectors
}
