// Package city assembles zones, roads and buildings into an immutable
// city model.
package city

import (
	"context"
	"fmt"

	"github.com/ChicagoDave/citygen/pkg/analytics"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Model is a generated city. It is never mutated after construction;
// accessors hand out copies, so a Model can be shared between goroutines.
type Model struct {
	cfg           spec.Config
	zones         []layout.Zone
	roads         []routing.Road
	buildings     []layout.Building
	intersections []routing.Intersection
	placement     *validation.Report
}

// Generate builds a city from cfg. An invalid configuration yields a
// *validation.Error and no model.
func Generate(cfg spec.Config) (*Model, error) {
	return GenerateContext(context.Background(), cfg)
}

// GenerateContext is Generate with cancellation checked between the
// partition, road and building phases.
func GenerateContext(ctx context.Context, cfg spec.Config) (*Model, error) {
	cfg = cfg.Clone()
	if err := validation.ValidateConfig(cfg).Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zones := layout.PartitionZones(cfg)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("partitioning zones: %w", err)
	}

	net := routing.BuildNetwork(cfg, zoneBounds(zones))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building roads: %w", err)
	}

	buildings, placement := layout.PlaceBuildings(cfg, zones, net.Roads)

	return &Model{
		cfg:           cfg,
		zones:         zones,
		roads:         net.Roads,
		buildings:     buildings,
		intersections: net.Intersections,
		placement:     placement,
	}, nil
}

func zoneBounds(zones []layout.Zone) []geo.Rect {
	out := make([]geo.Rect, len(zones))
	for i, z := range zones {
		out[i] = z.Bounds()
	}
	return out
}

// Config returns the configuration the model was generated from.
func (m *Model) Config() spec.Config { return m.cfg.Clone() }

// Zones returns a copy of the zones in partition order.
func (m *Model) Zones() []layout.Zone { return clone(m.zones) }

// Roads returns a copy of the deduplicated roads in emission order.
func (m *Model) Roads() []routing.Road { return clone(m.roads) }

// Buildings returns a copy of the buildings in placement order.
func (m *Model) Buildings() []layout.Building { return clone(m.buildings) }

// Intersections returns a copy of the intersections sorted by (x, y).
func (m *Model) Intersections() []routing.Intersection { return clone(m.intersections) }

// Stats projects the summary statistics.
func (m *Model) Stats() analytics.Stats {
	return analytics.Compute(m.cfg, m.zones, m.roads, m.intersections, m.buildings)
}

// Bounds returns the city rectangle.
func (m *Model) Bounds() geo.Rect {
	return geo.R(0, 0, m.cfg.Width, m.cfg.Height)
}

// ZoneAt returns the zone containing pt.
func (m *Model) ZoneAt(pt geo.Point2D) (layout.Zone, bool) {
	return layout.ZoneAt(m.zones, pt)
}

// BuildingsInZone returns the buildings placed in the given zone.
func (m *Model) BuildingsInZone(zoneID string) []layout.Building {
	var out []layout.Building
	for _, b := range m.buildings {
		if b.ZoneID == zoneID {
			out = append(out, b)
		}
	}
	return out
}

// ZoneCache returns a new caller-owned zone cache for the model's
// configuration.
func (m *Model) ZoneCache() *layout.ZoneCache {
	return layout.NewZoneCache(m.cfg)
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
