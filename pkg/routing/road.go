package routing

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Tier identifies the class of a road.
type Tier string

const (
	TierMain      Tier = "main"
	TierSecondary Tier = "secondary"
	TierLocal     Tier = "local"
)

// Road is a straight, axis-aligned road segment with Start <= End.
type Road struct {
	ID    string      `json:"id"`
	Start geo.Point2D `json:"start"`
	End   geo.Point2D `json:"end"`
	Width float64     `json:"width"`
	Tier  Tier        `json:"type"`
}

// Horizontal reports whether the road runs along X.
func (r Road) Horizontal() bool {
	return geo.Near(r.Start.Y, r.End.Y) && !geo.Near(r.Start.X, r.End.X)
}

// Vertical reports whether the road runs along Y.
func (r Road) Vertical() bool {
	return geo.Near(r.Start.X, r.End.X) && !geo.Near(r.Start.Y, r.End.Y)
}

// Length returns the centerline length.
func (r Road) Length() float64 {
	return r.Start.Distance(r.End)
}

// Footprint returns the paved rectangle: the centerline widened by half
// the road width on both sides.
func (r Road) Footprint() geo.Rect {
	hw := r.Width / 2
	a := geo.Pt(math.Min(r.Start.X, r.End.X)-hw, math.Min(r.Start.Y, r.End.Y)-hw)
	b := geo.Pt(math.Max(r.Start.X, r.End.X)+hw, math.Max(r.Start.Y, r.End.Y)+hw)
	if r.Horizontal() {
		a.X += hw
		b.X -= hw
	} else if r.Vertical() {
		a.Y += hw
		b.Y -= hw
	}
	return geo.RectFromCorners(a, b)
}

// ContainsPoint reports whether pt lies on the centerline, endpoints
// included.
func (r Road) ContainsPoint(pt geo.Point2D) bool {
	switch {
	case r.Horizontal():
		return geo.Near(pt.Y, r.Start.Y) && pt.X >= r.Start.X-geo.Epsilon && pt.X <= r.End.X+geo.Epsilon
	case r.Vertical():
		return geo.Near(pt.X, r.Start.X) && pt.Y >= r.Start.Y-geo.Epsilon && pt.Y <= r.End.Y+geo.Epsilon
	}
	return r.Start.Eq(pt)
}

// Key identifies a road by its normalised endpoints and tier.
func (r Road) Key() RoadKey {
	return RoadKey{Start: r.Start.Key(), End: r.End.Key(), Tier: r.Tier}
}

// RoadKey is the deduplication key of a road.
type RoadKey struct {
	Start [2]int64
	End   [2]int64
	Tier  Tier
}

// NewRoad builds a road with its endpoints ordered so Start <= End.
func NewRoad(a, b geo.Point2D, width float64, tier Tier) Road {
	if b.Less(a) {
		a, b = b, a
	}
	return Road{Start: a, End: b, Width: width, Tier: tier}
}

// TierWidth returns the configured width for a tier.
func TierWidth(cfg spec.Config, t Tier) float64 {
	switch t {
	case TierMain:
		return cfg.MainRoadWidth
	case TierSecondary:
		return cfg.SecondaryRoadWidth
	default:
		return cfg.LocalRoadWidth
	}
}

func roadID(i int) string {
	return fmt.Sprintf("road_%d", i)
}
