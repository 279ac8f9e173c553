package city

import (
	"math"
	"sort"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// rectIndex buckets rectangles into a uniform grid so overlap queries
// only visit nearby candidates.
type rectIndex struct {
	cell    float64
	rects   []geo.Rect
	buckets map[[2]int][]int
}

func newRectIndex(cell float64) *rectIndex {
	if cell <= 0 {
		cell = 100
	}
	return &rectIndex{cell: cell, buckets: make(map[[2]int][]int)}
}

func (ix *rectIndex) span(r geo.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / ix.cell))
	y0 = int(math.Floor(r.Y / ix.cell))
	x1 = int(math.Floor(r.MaxX() / ix.cell))
	y1 = int(math.Floor(r.MaxY() / ix.cell))
	return
}

// insert adds r and returns its index.
func (ix *rectIndex) insert(r geo.Rect) int {
	i := len(ix.rects)
	ix.rects = append(ix.rects, r)
	x0, y0, x1, y1 := ix.span(r)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			k := [2]int{x, y}
			ix.buckets[k] = append(ix.buckets[k], i)
		}
	}
	return i
}

// overlapping returns the indices of stored rectangles sharing interior
// area with r, each once, in insertion order.
func (ix *rectIndex) overlapping(r geo.Rect) []int {
	seen := make(map[int]bool)
	var out []int
	x0, y0, x1, y1 := ix.span(r)
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for _, i := range ix.buckets[[2]int{x, y}] {
				if seen[i] {
					continue
				}
				seen[i] = true
				if ix.rects[i].Overlaps(r) {
					out = append(out, i)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}

