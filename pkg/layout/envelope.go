package layout

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// FloorHeightM is the storey height used to convert floors to metres.
const FloorHeightM = 3.5

// FloorRange returns the inclusive floor-count range allowed by a zone
// profile's height envelope and floor cap.
func FloorRange(p spec.Profile) (lo, hi int) {
	lo = int(math.Max(1, math.Floor(p.MinHeightM/FloorHeightM)))
	hi = int(math.Floor(p.MaxHeightM / FloorHeightM))
	if p.MaxFloors > 0 && hi > p.MaxFloors {
		hi = p.MaxFloors
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// BuildingHeight converts a floor count to metres, clamped to the
// profile's height envelope.
func BuildingHeight(p spec.Profile, floors int) float64 {
	h := float64(floors) * FloorHeightM
	return math.Min(p.MaxHeightM, math.Max(p.MinHeightM, h))
}

// Margin returns the gap left between neighbouring buildings. Denser
// zones pack tighter.
func Margin(p spec.Profile, density float64) float64 {
	d := math.Min(1, math.Max(0, density))
	return p.BaseSpacingM * (2 - d)
}
