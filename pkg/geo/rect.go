package geo

import "math"

// Rect is an axis-aligned rectangle with its origin at the minimum corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// R is a shorthand constructor for Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromCorners returns the rectangle spanning two opposite corners.
func RectFromCorners(a, b Point2D) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Min returns the minimum corner.
func (r Rect) Min() Point2D { return Point2D{r.X, r.Y} }

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= Epsilon || r.Height <= Epsilon
}

// Corners returns the four corners starting at the minimum corner and
// walking along X first.
func (r Rect) Corners() [4]Point2D {
	return [4]Point2D{
		{r.X, r.Y},
		{r.MaxX(), r.Y},
		{r.MaxX(), r.MaxY()},
		{r.X, r.MaxY()},
	}
}

// ContainsPoint reports whether pt lies inside r, edges included.
func (r Rect) ContainsPoint(pt Point2D) bool {
	return pt.X >= r.X-Epsilon && pt.X <= r.MaxX()+Epsilon &&
		pt.Y >= r.Y-Epsilon && pt.Y <= r.MaxY()+Epsilon
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X-Epsilon && o.MaxX() <= r.MaxX()+Epsilon &&
		o.Y >= r.Y-Epsilon && o.MaxY() <= r.MaxY()+Epsilon
}

// Overlaps reports whether r and o share interior area. Rectangles that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX()-Epsilon && o.X < r.MaxX()-Epsilon &&
		r.Y < o.MaxY()-Epsilon && o.Y < r.MaxY()-Epsilon
}

// Intersect returns the overlapping region of r and o, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.MaxX(), o.MaxX())
	y1 := math.Min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by the given amounts on each side. The result may be
// empty when the insets exceed the rectangle.
func (r Rect) Inset(left, top, right, bottom float64) Rect {
	out := Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}
