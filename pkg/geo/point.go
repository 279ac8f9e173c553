package geo

import "math"

// Epsilon is the tolerance for coordinate equality. Grid-derived
// coordinates are sums of configured spacings, so only rounding noise
// needs absorbing.
const Epsilon = 1e-6

// Point2D represents a point in the city plan. X runs east, Y runs south
// from the origin corner; exporters map Y onto the 3D Z axis.
type Point2D struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

// Length returns the Euclidean length of the vector.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Eq reports whether p and q coincide within Epsilon.
func (p Point2D) Eq(q Point2D) bool {
	return Near(p.X, q.X) && Near(p.Y, q.Y)
}

// Less orders points by X, then Y.
func (p Point2D) Less(q Point2D) bool {
	if !Near(p.X, q.X) {
		return p.X < q.X
	}
	if !Near(p.Y, q.Y) {
		return p.Y < q.Y
	}
	return false
}

// Key quantizes p to Epsilon so equal points map to the same key.
func (p Point2D) Key() [2]int64 {
	return [2]int64{quantize(p.X), quantize(p.Y)}
}

// Near reports whether a and b differ by less than Epsilon.
func Near(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

func quantize(v float64) int64 {
	return int64(math.Round(v / Epsilon))
}
