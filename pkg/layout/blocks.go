package layout

import (
	"math"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Edge clearances of a zone, in metres from each side.
type clearance struct {
	left, top, right, bottom float64
}

// InsetBounds returns the buildable rectangle of a zone: its bounds pulled
// in from every edge by half the widest road running along that edge, and
// at least half the local road width.
func InsetBounds(cfg spec.Config, z Zone, roads []routing.Road) geo.Rect {
	c, _ := zoneClearance(cfg, z, roads)
	return z.Bounds().Inset(c.left, c.top, c.right, c.bottom)
}

// zoneClearance scans the roads touching a zone once. It returns the edge
// clearances and the footprints of every road reaching into the zone.
func zoneClearance(cfg spec.Config, z Zone, roads []routing.Road) (clearance, []geo.Rect) {
	base := cfg.LocalRoadWidth / 2
	c := clearance{base, base, base, base}
	b := z.Bounds()

	var obstacles []geo.Rect
	for _, r := range roads {
		fp := r.Footprint()
		if !fp.Overlaps(b) {
			continue
		}
		obstacles = append(obstacles, fp)

		hw := r.Width / 2
		switch {
		case r.Vertical() && spans(r.Start.Y, r.End.Y, b.Y, b.MaxY()):
			if geo.Near(r.Start.X, b.X) {
				c.left = math.Max(c.left, hw)
			} else if geo.Near(r.Start.X, b.MaxX()) {
				c.right = math.Max(c.right, hw)
			}
		case r.Horizontal() && spans(r.Start.X, r.End.X, b.X, b.MaxX()):
			if geo.Near(r.Start.Y, b.Y) {
				c.top = math.Max(c.top, hw)
			} else if geo.Near(r.Start.Y, b.MaxY()) {
				c.bottom = math.Max(c.bottom, hw)
			}
		}
	}
	return c, obstacles
}

// spans reports whether [a0,a1] shares positive length with [b0,b1].
func spans(a0, a1, b0, b1 float64) bool {
	return math.Min(a1, b1)-math.Max(a0, b0) > geo.Epsilon
}

// packCells lays a row/column grid of fixed-size cells over r, starting at
// its minimum corner. Cells that would leave r are not produced.
func packCells(r geo.Rect, cellW, cellD, pitchW, pitchD float64) []geo.Rect {
	if r.IsEmpty() || cellW <= 0 || cellD <= 0 || pitchW <= 0 || pitchD <= 0 {
		return nil
	}
	var cells []geo.Rect
	for j := 0; ; j++ {
		y := r.Y + float64(j)*pitchD
		if y+cellD > r.MaxY()+geo.Epsilon {
			break
		}
		for i := 0; ; i++ {
			x := r.X + float64(i)*pitchW
			if x+cellW > r.MaxX()+geo.Epsilon {
				break
			}
			cells = append(cells, geo.R(x, y, cellW, cellD))
		}
	}
	return cells
}
