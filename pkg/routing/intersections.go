package routing

import (
	"sort"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// Intersection is a point where a horizontal and a vertical road
// centerline meet.
type Intersection struct {
	Point  geo.Point2D `json:"point"`
	Degree int         `json:"degree"` // distinct segments through the point
}

// Intersections finds every crossing of a horizontal and a vertical road,
// spans inclusive, deduplicated by coordinate and sorted by (x, y).
// Roads that are neither horizontal nor vertical are ignored.
func Intersections(roads []Road) []Intersection {
	// Index vertical roads by X so each horizontal road only visits the
	// columns it spans.
	columns := make(map[int64][]int)
	var xs []float64
	for i, r := range roads {
		if !r.Vertical() {
			continue
		}
		k := r.Start.Key()[0]
		if _, ok := columns[k]; !ok {
			xs = append(xs, r.Start.X)
		}
		columns[k] = append(columns[k], i)
	}
	sort.Float64s(xs)

	type hit struct {
		pt    geo.Point2D
		roads map[int]bool
	}
	hits := make(map[[2]int64]*hit)
	record := func(pt geo.Point2D, a, b int) {
		k := pt.Key()
		h, ok := hits[k]
		if !ok {
			h = &hit{pt: pt, roads: make(map[int]bool)}
			hits[k] = h
		}
		h.roads[a] = true
		h.roads[b] = true
	}

	for i, h := range roads {
		if !h.Horizontal() {
			continue
		}
		y := h.Start.Y
		lo := sort.Search(len(xs), func(j int) bool { return xs[j] >= h.Start.X-geo.Epsilon })
		for j := lo; j < len(xs) && xs[j] <= h.End.X+geo.Epsilon; j++ {
			for _, vi := range columns[geo.Pt(xs[j], 0).Key()[0]] {
				v := roads[vi]
				if y < v.Start.Y-geo.Epsilon || y > v.End.Y+geo.Epsilon {
					continue
				}
				record(geo.Pt(v.Start.X, y), i, vi)
			}
		}
	}

	out := make([]Intersection, 0, len(hits))
	for _, h := range hits {
		out = append(out, Intersection{Point: h.pt, Degree: len(h.roads)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Point.Less(out[j].Point)
	})
	return out
}
