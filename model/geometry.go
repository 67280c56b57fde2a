package model

import (
	"image"
	"math"
)

// Point represents a 2D point
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect represents an axis-aligned rectangle in pixel coordinates.
// The origin is the top-left corner of the source image.
type Rect struct {
	X      int `json:"x"` // Left
	Y      int `json:"y"` // Top (image coordinate system)
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect creates a rectangle from coordinates
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromImage creates a rectangle covering an image.Rectangle
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Left returns the left edge X coordinate
func (r Rect) Left() int {
	return r.X
}

// Right returns the right edge X coordinate
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// Contains checks if a point is inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left() && x < r.Right() &&
		y >= r.Top() && y < r.Bottom()
}

// Intersects checks if two rectangles intersect
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() <= other.Left() ||
		r.Left() >= other.Right() ||
		r.Bottom() <= other.Top() ||
		r.Top() >= other.Bottom())
}

// Intersection returns the intersection of two rectangles
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}

	x := max(r.Left(), other.Left())
	y := max(r.Top(), other.Top())
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the union of two rectangles
func (r Rect) Union(other Rect) Rect {
	x := min(r.Left(), other.Left())
	y := min(r.Top(), other.Top())
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the rectangle in square pixels
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Clamp constrains the rectangle to the given bounds.
// Regions outside the bounds are cut off rather than rejected.
func (r Rect) Clamp(bounds Rect) Rect {
	x := max(r.Left(), bounds.Left())
	y := max(r.Top(), bounds.Top())
	right := min(r.Right(), bounds.Right())
	bottom := min(r.Bottom(), bounds.Bottom())

	if right <= x || bottom <= y {
		return Rect{}
	}

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// ToImageRect converts to the standard library rectangle type
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsValid returns true if the rectangle has positive dimensions
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}
