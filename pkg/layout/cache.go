package layout

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// ZoneCache memoizes per-cell zone types for chunked or streaming lookups.
// The caller owns the cache; it is not safe for concurrent use.
type ZoneCache struct {
	cfg     spec.Config
	sampler sampler
	cells   map[[2]int64]spec.ZoneType
}

// NewZoneCache creates an empty cache for cfg.
func NewZoneCache(cfg spec.Config) *ZoneCache {
	cfg = cfg.Clone()
	return &ZoneCache{
		cfg:     cfg,
		sampler: newSampler(cfg),
		cells:   make(map[[2]int64]spec.ZoneType),
	}
}

// TypeAt returns the zone type of cell (cellX, cellZ), computing it once.
func (c *ZoneCache) TypeAt(cellX, cellZ int64) spec.ZoneType {
	key := [2]int64{cellX, cellZ}
	if zt, ok := c.cells[key]; ok {
		return zt
	}
	zt := c.sampler.pick(cellX, cellZ)
	c.cells[key] = zt
	return zt
}

// CellAt returns the main-grid cell containing pt.
func (c *ZoneCache) CellAt(pt geo.Point2D) (cellX, cellZ int64) {
	g := c.cfg.MainGridSize
	return int64(math.Floor(pt.X / g)), int64(math.Floor(pt.Y / g))
}

// ZoneAt returns the zone for the cell containing pt. Inside the bounds the
// zone is clipped exactly as PartitionZones clips it; outside the bounds
// the full unclipped cell is returned and ok is false.
func (c *ZoneCache) ZoneAt(pt geo.Point2D) (z Zone, ok bool) {
	cx, cz := c.CellAt(pt)
	g := c.cfg.MainGridSize
	cell := geo.R(float64(cx)*g, float64(cz)*g, g, g)

	bounds := geo.R(0, 0, c.cfg.Width, c.cfg.Height)
	ok = bounds.ContainsPoint(pt)
	if ok {
		if clipped := cell.Intersect(bounds); !clipped.IsEmpty() {
			cell = clipped
		}
	}
	return newZone(int(cx), int(cz), c.TypeAt(cx, cz), cell), ok
}

// Len returns the number of memoized cells.
func (c *ZoneCache) Len() int {
	return len(c.cells)
}
