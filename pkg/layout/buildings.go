package layout

import (
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Building is a placed building footprint with its vertical extent.
type Building struct {
	ID             string        `json:"id"`
	ZoneID         string        `json:"zone_id"`
	X              float64       `json:"x"`
	Y              float64       `json:"y"`
	Width          float64       `json:"width"`
	Depth          float64       `json:"depth"`
	Floors         int           `json:"floors"`
	BuildingHeight float64       `json:"building_height"`
	ZoneType       spec.ZoneType `json:"zone_type"`
}

// Footprint returns the building's ground rectangle.
func (b Building) Footprint() geo.Rect {
	return geo.R(b.X, b.Y, b.Width, b.Depth)
}

// FloorArea returns the gross floor area across all floors.
func (b Building) FloorArea() float64 {
	return b.Width * b.Depth * float64(b.Floors)
}

// PlaceBuildings packs buildings into every zone, in zone order. Zones too
// small for a single building are reported as info, not errors.
func PlaceBuildings(cfg spec.Config, zones []Zone, roads []routing.Road) ([]Building, *validation.Report) {
	var out []Building
	for _, z := range zones {
		out = append(out, placeInZone(cfg, z, roads)...)
	}
	return out, ReportEmptyZones(zones, out)
}

// ReportEmptyZones adds an info result for every zone whose type places
// buildings but which holds none.
func ReportEmptyZones(zones []Zone, buildings []Building) *validation.Report {
	report := validation.NewReport()

	counts := make(map[string]int, len(zones))
	for _, b := range buildings {
		counts[b.ZoneID]++
	}
	for _, z := range zones {
		if counts[z.ID] == 0 && spec.ProfileFor(z.Type).PlacesBuilding {
			report.AddInfo(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("zone %s (%s) has no room for buildings", z.ID, z.Type),
				Path:    z.ID,
			})
		}
	}
	return report
}

func placeInZone(cfg spec.Config, z Zone, roads []routing.Road) []Building {
	p := spec.ProfileFor(z.Type)
	if !p.PlacesBuilding {
		return nil
	}

	c, obstacles := zoneClearance(cfg, z, roads)
	inset := z.Bounds().Inset(c.left, c.top, c.right, c.bottom)

	maxW, maxD := p.MaxFootprint[0], p.MaxFootprint[1]
	margin := Margin(p, z.Density)
	lo, hi := FloorRange(p)

	var out []Building
	for _, cell := range packCells(inset, maxW, maxD, maxW+margin, maxD+margin) {
		origin := cell.Min()
		w := geo.FloatRange(geo.PointHash(origin, cfg.Seed, geo.SaltFootprintWidth), p.MinFootprint[0], maxW)
		d := geo.FloatRange(geo.PointHash(origin, cfg.Seed, geo.SaltFootprintDepth), p.MinFootprint[1], maxD)
		fp := geo.R(origin.X, origin.Y, w, d)
		if hitsAny(fp, obstacles) {
			continue
		}

		floors := geo.IntRange(geo.PointHash(origin, cfg.Seed, geo.SaltFloors), lo, hi)
		out = append(out, Building{
			ID:             fmt.Sprintf("%s_b%d", z.ID, len(out)),
			ZoneID:         z.ID,
			X:              fp.X,
			Y:              fp.Y,
			Width:          fp.Width,
			Depth:          fp.Height,
			Floors:         floors,
			BuildingHeight: BuildingHeight(p, floors),
			ZoneType:       z.Type,
		})
	}
	return out
}

func hitsAny(r geo.Rect, obstacles []geo.Rect) bool {
	for _, o := range obstacles {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
