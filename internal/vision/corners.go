package vision

import (
	"image"
	"math"
	"sort"
)

// GoodFeatures finds up to maxCorners strong corners using the
// minimum-eigenvalue measure over a 3x3 structure tensor window.
// quality sets the acceptance threshold as a fraction of the strongest
// corner response, and minDistance suppresses corners packed closer
// than that many pixels.
func GoodFeatures(src *image.Gray, maxCorners int, quality, minDistance float64) []image.Point {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	if w < 3 || h < 3 || maxCorners < 1 {
		return nil
	}
	if quality <= 0 {
		quality = 0.01
	}

	gx, gy, _, _ := gradients(src)

	// Step 1: minimum eigenvalue of the structure tensor at each pixel
	response := make([]float64, w*h)
	maxResponse := 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sxx, syy, sxy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					i := (y+ky)*w + (x + kx)
					fx := float64(gx[i])
					fy := float64(gy[i])
					sxx += fx * fx
					syy += fy * fy
					sxy += fx * fy
				}
			}
			// Smaller eigenvalue of [sxx sxy; sxy syy]
			trace := sxx + syy
			disc := math.Sqrt((sxx-syy)*(sxx-syy) + 4*sxy*sxy)
			lambda := (trace - disc) / 2

			i := y*w + x
			response[i] = lambda
			if lambda > maxResponse {
				maxResponse = lambda
			}
		}
	}
	if maxResponse == 0 {
		return nil
	}

	// Step 2: keep local maxima above the quality threshold
	threshold := quality * maxResponse
	type corner struct {
		p image.Point
		r float64
	}
	var candidates []corner
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			r := response[i]
			if r < threshold {
				continue
			}
			if r < response[i-1] || r < response[i+1] ||
				r < response[i-w] || r < response[i+w] {
				continue
			}
			candidates = append(candidates, corner{p: image.Point{X: x, Y: y}, r: r})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].r > candidates[j].r
	})

	// Step 3: greedy selection with minimum-distance suppression
	var corners []image.Point
	for _, c := range candidates {
		if len(corners) >= maxCorners {
			break
		}
		tooClose := false
		for _, existing := range corners {
			d := math.Hypot(float64(c.p.X-existing.X), float64(c.p.Y-existing.Y))
			if d < minDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			corners = append(corners, c.p)
		}
	}
	return corners
}
