// Package geom provides the value types used to place
// and measure drawable content: points, sizes, rectangles
// and affine matrices.
package geom

import (
	"image"
	"math"
)

// Point is a location in user space.
type Point struct{ X, Y float64 }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// IsZero returns true for the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Size is a width/height extent.
type Size struct{ Width, Height float64 }

// Rectangle is an axis aligned box, defined by its top left
// corner and its extent.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// NewRectangle returns the rectangle at `p` with extent `s`.
func NewRectangle(p Point, s Size) Rectangle {
	return Rectangle{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Create returns the rectangle at (x, y) with extent (w, h).
func Create(x, y, w, h float64) Rectangle {
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

// Point returns the top left corner.
func (r Rectangle) Point() Point { return Point{r.X, r.Y} }

// Size returns the extent of the rectangle.
func (r Rectangle) Size() Size { return Size{r.Width, r.Height} }

// Right returns X + Width.
func (r Rectangle) Right() float64 { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rectangle) Bottom() float64 { return r.Y + r.Height }

// IsEmpty returns true if the rectangle has no area.
func (r Rectangle) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Expand grows the extent by (dw, dh), keeping the top left corner.
func (r Rectangle) Expand(dw, dh float64) Rectangle {
	return Rectangle{X: r.X, Y: r.Y, Width: r.Width + dw, Height: r.Height + dh}
}

// Contains reports whether `p` is inside r, borders included.
func (r Rectangle) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.Right() && r.Y <= p.Y && p.Y <= r.Bottom()
}

// Union returns the smallest rectangle containing r and s.
// Empty rectangles are ignored.
func (r Rectangle) Union(s Rectangle) Rectangle {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	minX, minY := math.Min(r.X, s.X), math.Min(r.Y, s.Y)
	maxX, maxY := math.Max(r.Right(), s.Right()), math.Max(r.Bottom(), s.Bottom())
	return Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Image returns the integer pixel rectangle covering r.
func (r Rectangle) Image() image.Rectangle {
	return image.Rect(int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())))
}
