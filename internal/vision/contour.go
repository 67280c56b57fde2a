package vision

import (
	"image"
	"math"
)

// Contour is the external boundary of one connected foreground
// component, traced clockwise.
type Contour struct {
	Points []image.Point
}

// Area returns the area enclosed by the contour polygon, computed with
// the shoelace formula. Thin or single-pixel components yield small
// areas even when their bounding boxes are large.
func (c Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(sum)) / 2
}

// BoundingRect returns the axis-aligned bounding rectangle of the
// contour.
func (c Contour) BoundingRect() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := c.Points[0].X, c.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range c.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Moore neighborhood in clockwise order starting east, with y growing
// downward.
var mooreOffsets = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// FindContours locates the external boundary of every 8-connected
// foreground component in a binary image. Interior holes are not
// reported.
func FindContours(binary *image.Gray) []Contour {
	binary = zeroOrigin(binary)
	w, h := Dimensions(binary)
	if w == 0 || h == 0 {
		return nil
	}

	fg := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && binary.Pix[y*binary.Stride+x] != 0
	}

	visited := make([]bool, w*h)
	var contours []Contour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg(x, y) || visited[y*w+x] {
				continue
			}

			// Step 1: flood the component so it is only traced once
			component := floodComponent(binary, visited, x, y, w, h)

			// Step 2: trace the external boundary from the component's
			// topmost-leftmost pixel
			boundary := traceBoundary(fg, image.Point{X: x, Y: y}, component)
			contours = append(contours, Contour{Points: boundary})
		}
	}
	return contours
}

// floodComponent marks every pixel of the 8-connected component
// containing (sx, sy) as visited and returns the pixel count.
func floodComponent(binary *image.Gray, visited []bool, sx, sy, w, h int) int {
	stack := []image.Point{{X: sx, Y: sy}}
	visited[sy*w+sx] = true
	count := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		for _, d := range mooreOffsets {
			nx := p.X + d.X
			ny := p.Y + d.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if visited[ny*w+nx] || binary.Pix[ny*binary.Stride+nx] == 0 {
				continue
			}
			visited[ny*w+nx] = true
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}
	return count
}

// traceBoundary walks the Moore neighborhood clockwise around the
// component starting at its topmost-leftmost pixel. The step budget is
// bounded by the component size so malformed shapes cannot loop
// forever.
func traceBoundary(fg func(x, y int) bool, start image.Point, componentSize int) []image.Point {
	boundary := []image.Point{start}

	// A lone pixel has no neighbors to walk
	alone := true
	for _, d := range mooreOffsets {
		if fg(start.X+d.X, start.Y+d.Y) {
			alone = false
			break
		}
	}
	if alone {
		return boundary
	}

	// The scan reaches the start pixel from the west, so begin the
	// clockwise search there
	current := start
	dir := 4
	maxSteps := 4 * (componentSize + 8)

	for step := 0; step < maxSteps; step++ {
		found := false
		// Search clockwise starting just past the backtrack direction
		for i := 1; i <= 8; i++ {
			d := (dir + i) % 8
			nx := current.X + mooreOffsets[d].X
			ny := current.Y + mooreOffsets[d].Y
			if fg(nx, ny) {
				next := image.Point{X: nx, Y: ny}
				if next == start && len(boundary) > 1 {
					return boundary
				}
				boundary = append(boundary, next)
				current = next
				// New backtrack points at the pixel we came from
				dir = (d + 4) % 8
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return boundary
}
