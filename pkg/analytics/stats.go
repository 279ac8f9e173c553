package analytics

import (
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// City size thresholds in square metres.
const (
	smallCityMaxM2  = 250_000
	mediumCityMaxM2 = 1_000_000
	largeCityMaxM2  = 4_000_000
)

// Stats is the summary projection of a generated city.
type Stats struct {
	TotalZones         int                         `json:"total_zones" msgpack:"total_zones"`
	TotalBuildings     int                         `json:"total_buildings" msgpack:"total_buildings"`
	TotalRoads         int                         `json:"total_roads" msgpack:"total_roads"`
	TotalIntersections int                         `json:"total_intersections" msgpack:"total_intersections"`
	TotalRoadLengthM   float64                     `json:"total_road_length_m" msgpack:"total_road_length_m"`
	AreaM2             float64                     `json:"area_m2" msgpack:"area_m2"`
	Dimensions         string                      `json:"dimensions" msgpack:"dimensions"`
	CitySize           string                      `json:"city_size" msgpack:"city_size"`
	ZoneStats          map[spec.ZoneType]ZoneStats `json:"zone_stats" msgpack:"zone_stats"`
}

// ZoneStats aggregates one zone type.
type ZoneStats struct {
	Zones             int     `json:"zones" msgpack:"zones"`
	Buildings         int     `json:"buildings" msgpack:"buildings"`
	TotalArea         float64 `json:"total_area" msgpack:"total_area"`
	AvgBuildingHeight float64 `json:"avg_building_height" msgpack:"avg_building_height"`
	FloorArea         float64 `json:"floor_area" msgpack:"floor_area"`
}

// Compute projects statistics from the city's collections. Every zone type
// gets an entry, including types with no zones.
func Compute(cfg spec.Config, zones []layout.Zone, roads []routing.Road, intersections []routing.Intersection, buildings []layout.Building) Stats {
	s := Stats{
		TotalZones:         len(zones),
		TotalBuildings:     len(buildings),
		TotalRoads:         len(roads),
		TotalIntersections: len(intersections),
		AreaM2:             cfg.Area(),
		Dimensions:         Dimensions(cfg.Width, cfg.Height),
		CitySize:           SizeLabel(cfg.Area()),
		ZoneStats:          make(map[spec.ZoneType]ZoneStats, len(spec.ZoneTypes)),
	}
	for _, r := range roads {
		s.TotalRoadLengthM += r.Length()
	}

	for _, zt := range spec.ZoneTypes {
		s.ZoneStats[zt] = ZoneStats{}
	}
	for _, z := range zones {
		zs := s.ZoneStats[z.Type]
		zs.Zones++
		zs.TotalArea += z.Area()
		s.ZoneStats[z.Type] = zs
	}

	heights := make(map[spec.ZoneType]float64)
	for _, b := range buildings {
		zs := s.ZoneStats[b.ZoneType]
		zs.Buildings++
		zs.FloorArea += b.FloorArea()
		heights[b.ZoneType] += b.BuildingHeight
		s.ZoneStats[b.ZoneType] = zs
	}
	for zt, sum := range heights {
		zs := s.ZoneStats[zt]
		zs.AvgBuildingHeight = sum / float64(zs.Buildings)
		s.ZoneStats[zt] = zs
	}
	return s
}

// SizeLabel classifies a city by area.
func SizeLabel(areaM2 float64) string {
	switch {
	case areaM2 <= smallCityMaxM2:
		return "small"
	case areaM2 <= mediumCityMaxM2:
		return "medium"
	case areaM2 <= largeCityMaxM2:
		return "large"
	default:
		return "metropolis"
	}
}

// Dimensions formats the bounds as "WIDTHxHEIGHT".
func Dimensions(width, height float64) string {
	return fmt.Sprintf("%gx%g", width, height)
}

// BuildingsIn returns how many buildings carry zone type zt.
func (s Stats) BuildingsIn(zt spec.ZoneType) int {
	return s.ZoneStats[zt].Buildings
}
