package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ChicagoDave/citygen/pkg/city"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// roadSurfaceY lifts road quads just above the ground plane.
const roadSurfaceY = 0.1

// WriteOBJ writes a Wavefront OBJ mesh. Plan X maps to OBJ X, plan Y to
// OBJ Z, and heights run along OBJ Y. Each building is a box of 8
// vertices and 6 quads; each road is a flat quad.
func WriteOBJ(w io.Writer, m *city.Model) error {
	bw := bufio.NewWriter(w)
	s := m.Stats()

	fmt.Fprintf(bw, "# city %s, seed %d\n", s.Dimensions, m.Config().Seed)
	fmt.Fprintf(bw, "# %d buildings, %d roads\n", s.TotalBuildings, s.TotalRoads)
	for _, zt := range spec.ZoneTypes {
		c := zt.Color()
		fmt.Fprintf(bw, "# zone %s color %.3f %.3f %.3f\n", zt, c[0], c[1], c[2])
	}

	next := 1 // OBJ indices are 1-based
	for _, b := range m.Buildings() {
		x0, z0 := b.X, b.Y
		x1, z1 := b.X+b.Width, b.Y+b.Depth
		h := b.BuildingHeight

		fmt.Fprintf(bw, "o %s\n", b.ID)
		fmt.Fprintf(bw, "# zone_type %s floors %d\n", b.ZoneType, b.Floors)
		for _, y := range []float64{0, h} {
			fmt.Fprintf(bw, "v %.3f %.3f %.3f\n", x0, y, z0)
			fmt.Fprintf(bw, "v %.3f %.3f %.3f\n", x1, y, z0)
			fmt.Fprintf(bw, "v %.3f %.3f %.3f\n", x1, y, z1)
			fmt.Fprintf(bw, "v %.3f %.3f %.3f\n", x0, y, z1)
		}
		writeBoxFaces(bw, next)
		next += 8
	}

	for _, r := range m.Roads() {
		fp := r.Footprint()
		fmt.Fprintf(bw, "o %s\n", r.ID)
		fmt.Fprintf(bw, "# road %s width %.1f\n", r.Tier, r.Width)
		for _, c := range fp.Corners() {
			fmt.Fprintf(bw, "v %.3f %.3f %.3f\n", c.X, roadSurfaceY, c.Y)
		}
		fmt.Fprintf(bw, "f %d %d %d %d\n", next, next+1, next+2, next+3)
		next += 4
	}

	return bw.Flush()
}

// writeBoxFaces emits the six quads of a box whose bottom ring starts at
// vertex base and top ring at base+4.
func writeBoxFaces(w *bufio.Writer, base int) {
	b, t := base, base+4
	faces := [6][4]int{
		{b, b + 3, b + 2, b + 1}, // bottom
		{t, t + 1, t + 2, t + 3}, // top
		{b, b + 1, t + 1, t},
		{b + 1, b + 2, t + 2, t + 1},
		{b + 2, b + 3, t + 3, t + 2},
		{b + 3, b, t, t + 3},
	}
	for _, f := range faces {
		fmt.Fprintf(w, "f %d %d %d %d\n", f[0], f[1], f[2], f[3])
	}
}
