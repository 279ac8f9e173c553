package layout

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Zone is a typed rectangular region of the city.
type Zone struct {
	ID      string        `json:"id"`
	Type    spec.ZoneType `json:"type"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Density float64       `json:"density"`
	Color   spec.RGB      `json:"color"`
}

// Bounds returns the zone rectangle.
func (z Zone) Bounds() geo.Rect {
	return geo.R(z.X, z.Y, z.Width, z.Height)
}

// Area returns the zone area in square metres.
func (z Zone) Area() float64 {
	return z.Width * z.Height
}

// Contains reports whether pt lies within the zone, edges included.
func (z Zone) Contains(pt geo.Point2D) bool {
	return z.Bounds().ContainsPoint(pt)
}

// sampler maps a hashed cell onto a zone type using cumulative weight
// ranges over [0,100).
type sampler struct {
	seed     int64
	cum      [6]float64
	fallback spec.ZoneType
}

func newSampler(cfg spec.Config) sampler {
	s := sampler{seed: cfg.Seed, fallback: spec.ZoneResidential}
	norm := cfg.Normalized()
	acc := 0.0
	for i, zt := range spec.ZoneTypes {
		w := norm[zt]
		acc += w * 100
		s.cum[i] = acc
		if w > 0 {
			s.fallback = zt
		}
	}
	return s
}

func (s sampler) pick(cellX, cellZ int64) spec.ZoneType {
	v := float64(geo.CellHash(cellX, cellZ, s.seed, geo.SaltZone) % 100)
	for i, zt := range spec.ZoneTypes {
		if v < s.cum[i] {
			return zt
		}
	}
	// Rounding can leave the last boundary a hair under 100.
	return s.fallback
}

// CellZoneType returns the zone type of a main-grid cell. It depends only
// on the cell coordinates, the seed and the distribution, so it is defined
// for cells outside the configured bounds too.
func CellZoneType(cfg spec.Config, cellX, cellZ int64) spec.ZoneType {
	return newSampler(cfg).pick(cellX, cellZ)
}

// GridDims returns the number of main-grid columns and rows covering the
// bounds. Partial edge cells count as whole cells.
func GridDims(cfg spec.Config) (cols, rows int) {
	return cellCount(cfg.Width, cfg.MainGridSize), cellCount(cfg.Height, cfg.MainGridSize)
}

func cellCount(extent, size float64) int {
	if extent <= 0 || size <= 0 {
		return 0
	}
	n := int(math.Ceil(extent/size - geo.Epsilon))
	if n < 1 {
		n = 1
	}
	return n
}

// PartitionZones divides the bounds into one zone per main-grid cell,
// row by row. Edge cells that extend past the bounds are clipped to them.
// The config must already be valid.
func PartitionZones(cfg spec.Config) []Zone {
	cols, rows := GridDims(cfg)
	if cols == 0 || rows == 0 {
		return nil
	}

	s := newSampler(cfg)
	g := cfg.MainGridSize
	zones := make([]Zone, 0, cols*rows)

	for j := 0; j < rows; j++ {
		y := float64(j) * g
		h := math.Min(g, cfg.Height-y)
		for i := 0; i < cols; i++ {
			x := float64(i) * g
			w := math.Min(g, cfg.Width-x)
			zones = append(zones, newZone(i, j, s.pick(int64(i), int64(j)), geo.R(x, y, w, h)))
		}
	}
	return zones
}

func newZone(i, j int, zt spec.ZoneType, r geo.Rect) Zone {
	return Zone{
		ID:      fmt.Sprintf("zone_%d_%d", i, j),
		Type:    zt,
		X:       r.X,
		Y:       r.Y,
		Width:   r.Width,
		Height:  r.Height,
		Density: zt.Density(),
		Color:   zt.Color(),
	}
}

// ZonesByType groups zones by type, preserving order within each type.
func ZonesByType(zones []Zone) map[spec.ZoneType][]Zone {
	out := make(map[spec.ZoneType][]Zone)
	for _, z := range zones {
		out[z.Type] = append(out[z.Type], z)
	}
	return out
}

// ZoneAt returns the zone containing pt. A point on a shared edge belongs
// to the first zone in partition order.
func ZoneAt(zones []Zone, pt geo.Point2D) (Zone, bool) {
	for _, z := range zones {
		if z.Contains(pt) {
			return z, true
		}
	}
	return Zone{}, false
}
