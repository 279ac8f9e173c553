package city

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

const areaTolerance = 1e-3 // m²

// Check performs spatial validation on a city model: zone coverage, road
// uniqueness, building placement and statistics consistency. Zones left
// without buildings are reported as info.
func Check(m *Model) *validation.Report {
	r := validation.NewReport()

	if m == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "city model is nil",
		})
		return r
	}

	checkZones(m, r)
	checkRoads(m, r)
	checkBuildings(m, r)
	checkStats(m, r)
	if m.placement != nil {
		r.Merge(m.placement)
	}

	return r
}

func checkZones(m *Model, r *validation.Report) {
	bounds := m.Bounds()
	ix := newRectIndex(m.cfg.MainGridSize)
	total := 0.0

	for i, z := range m.zones {
		b := z.Bounds()
		if !bounds.ContainsRect(b) {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("zone %q extends outside the city bounds", z.ID),
				Path:        fmt.Sprintf("zones[%d]", i),
				ActualValue: b,
				Expected:    fmt.Sprintf("within %.0fx%.0f", bounds.Width, bounds.Height),
			})
		}
		if b.IsEmpty() {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("zone %q has no area", z.ID),
				Path:    fmt.Sprintf("zones[%d]", i),
			})
		}
		for _, j := range ix.overlapping(b) {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("zone %q overlaps zone %q", z.ID, m.zones[j].ID),
				Path:    fmt.Sprintf("zones[%d]", i),
			})
		}
		ix.insert(b)
		total += z.Area()
	}

	if math.Abs(total-bounds.Area()) > areaTolerance {
		r.AddError(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("zones cover %.1f m² of %.1f m²", total, bounds.Area()),
			Path:        "zones",
			ActualValue: total,
			Expected:    fmt.Sprintf("%.1f", bounds.Area()),
		})
	}
}

func checkRoads(m *Model, r *validation.Report) {
	seen := make(map[routing.RoadKey]int, len(m.roads))
	for i, road := range m.roads {
		if road.End.Less(road.Start) {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("road %q runs backwards", road.ID),
				Path:    fmt.Sprintf("roads[%d]", i),
			})
		}
		if road.Width <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("road %q has non-positive width", road.ID),
				Path:        fmt.Sprintf("roads[%d].width", i),
				ActualValue: road.Width,
			})
		}
		if prev, ok := seen[road.Key()]; ok {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("road %q duplicates road %q", road.ID, m.roads[prev].ID),
				Path:    fmt.Sprintf("roads[%d]", i),
			})
			continue
		}
		seen[road.Key()] = i
	}
}

func checkBuildings(m *Model, r *validation.Report) {
	zones := make(map[string]layout.Zone, len(m.zones))
	for _, z := range m.zones {
		zones[z.ID] = z
	}

	roads := newRectIndex(m.cfg.SecondaryGridSize)
	for _, road := range m.roads {
		roads.insert(road.Footprint())
	}
	placed := newRectIndex(m.cfg.SecondaryGridSize)

	for i, b := range m.buildings {
		path := fmt.Sprintf("buildings[%d]", i)
		fp := b.Footprint()

		z, ok := zones[b.ZoneID]
		switch {
		case !ok:
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("building %q references unknown zone", b.ID),
				Path:        path + ".zone_id",
				ActualValue: b.ZoneID,
			})
		case !z.Bounds().ContainsRect(fp):
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("building %q extends outside zone %q", b.ID, z.ID),
				Path:    path,
			})
		case z.Type != b.ZoneType:
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("building %q is %s but zone %q is %s", b.ID, b.ZoneType, z.ID, z.Type),
				Path:        path + ".zone_type",
				ActualValue: b.ZoneType,
				Expected:    string(z.Type),
			})
		}

		if hits := roads.overlapping(fp); len(hits) > 0 {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("building %q overlaps road %q", b.ID, m.roads[hits[0]].ID),
				Path:    path,
			})
		}
		if hits := placed.overlapping(fp); len(hits) > 0 {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("building %q overlaps building %q", b.ID, m.buildings[hits[0]].ID),
				Path:    path,
			})
		}
		placed.insert(fp)

		if b.Floors < 1 || b.BuildingHeight <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("building %q has %d floors and height %.1f", b.ID, b.Floors, b.BuildingHeight),
				Path:        path,
				ActualValue: b.Floors,
				Expected:    "at least one floor",
			})
		}
		if p := spec.ProfileFor(b.ZoneType); !p.PlacesBuilding {
			r.AddWarning(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("building %q placed in a %s zone", b.ID, b.ZoneType),
				Path:    path + ".zone_type",
			})
		}
	}
}

func checkStats(m *Model, r *validation.Report) {
	s := m.Stats()
	zones, buildings := 0, 0
	for _, zs := range s.ZoneStats {
		zones += zs.Zones
		buildings += zs.Buildings
	}
	if zones != s.TotalZones {
		r.AddError(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("per-type zone counts sum to %d, total is %d", zones, s.TotalZones),
			Path:        "stats.zone_stats",
			ActualValue: zones,
			Expected:    fmt.Sprint(s.TotalZones),
		})
	}
	if buildings != s.TotalBuildings {
		r.AddError(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("per-type building counts sum to %d, total is %d", buildings, s.TotalBuildings),
			Path:        "stats.zone_stats",
			ActualValue: buildings,
			Expected:    fmt.Sprint(s.TotalBuildings),
		})
	}
}
