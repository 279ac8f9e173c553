package routing

import (
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// Network is the generated road network.
type Network struct {
	Roads         []Road         `json:"roads"`
	Intersections []Intersection `json:"intersections"`
}

// BuildNetwork lays out main and secondary grid roads over the whole
// bounds, then a ring of local roads around each zone. Duplicate segments
// of the same tier are dropped, keeping the first emitted.
func BuildNetwork(cfg spec.Config, zones []geo.Rect) Network {
	b := newBuilder()

	// Main grid, full extent in both directions.
	for _, x := range gridLines(cfg.Width, cfg.MainGridSize) {
		b.add(NewRoad(geo.Pt(x, 0), geo.Pt(x, cfg.Height), cfg.MainRoadWidth, TierMain))
	}
	for _, y := range gridLines(cfg.Height, cfg.MainGridSize) {
		b.add(NewRoad(geo.Pt(0, y), geo.Pt(cfg.Width, y), cfg.MainRoadWidth, TierMain))
	}

	// Secondary grid, interior lines not already carried by a main road.
	for _, x := range interiorLines(cfg.Width, cfg.SecondaryGridSize, cfg.MainGridSize) {
		b.add(NewRoad(geo.Pt(x, 0), geo.Pt(x, cfg.Height), cfg.SecondaryRoadWidth, TierSecondary))
	}
	for _, y := range interiorLines(cfg.Height, cfg.SecondaryGridSize, cfg.MainGridSize) {
		b.add(NewRoad(geo.Pt(0, y), geo.Pt(cfg.Width, y), cfg.SecondaryRoadWidth, TierSecondary))
	}

	// Local ring per zone.
	for _, z := range zones {
		c := z.Corners()
		for i := range c {
			b.add(NewRoad(c[i], c[(i+1)%4], cfg.LocalRoadWidth, TierLocal))
		}
	}

	return Network{
		Roads:         b.roads,
		Intersections: Intersections(b.roads),
	}
}

type builder struct {
	roads []Road
	seen  map[RoadKey]bool
}

func newBuilder() *builder {
	return &builder{seen: make(map[RoadKey]bool)}
}

func (b *builder) add(r Road) {
	if r.Start.Eq(r.End) {
		return
	}
	k := r.Key()
	if b.seen[k] {
		return
	}
	b.seen[k] = true
	r.ID = roadID(len(b.roads))
	b.roads = append(b.roads, r)
}

// gridLines returns k*step for every k with 0 <= k*step <= extent.
func gridLines(extent, step float64) []float64 {
	if step <= 0 || extent < 0 {
		return nil
	}
	var out []float64
	for k := 0; ; k++ {
		v := float64(k) * step
		if v > extent+geo.Epsilon {
			break
		}
		out = append(out, v)
	}
	return out
}

// interiorLines returns k*step strictly inside (0, extent), skipping any
// position that falls on a multiple of skip.
func interiorLines(extent, step, skip float64) []float64 {
	if step <= 0 {
		return nil
	}
	var out []float64
	for k := 1; ; k++ {
		v := float64(k) * step
		if v >= extent-geo.Epsilon {
			break
		}
		if onGrid(v, skip) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func onGrid(v, step float64) bool {
	if step <= 0 {
		return false
	}
	k := v / step
	r := k - float64(int64(k+0.5))
	return geo.Near(r*step, 0)
}
