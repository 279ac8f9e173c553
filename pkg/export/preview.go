package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/ChicagoDave/citygen/pkg/city"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/routing"
	"github.com/ChicagoDave/citygen/pkg/spec"
)

var (
	backgroundColor = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	roadColors      = map[routing.Tier]color.RGBA{
		routing.TierMain:      {0x33, 0x33, 0x33, 0xff},
		routing.TierSecondary: {0x55, 0x55, 0x55, 0xff},
		routing.TierLocal:     {0x88, 0x88, 0x88, 0xff},
	}
)

// RenderPreview draws a top-down raster of the city whose longest side is
// size pixels. Zones are filled with their colour, roads drawn over them
// and buildings drawn last in a darker shade of their zone colour.
func RenderPreview(m *city.Model, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultPreviewSize
	}
	cfg := m.Config()
	scale := float64(size) / math.Max(cfg.Width, cfg.Height)
	w := max(1, int(math.Round(cfg.Width*scale)))
	h := max(1, int(math.Round(cfg.Height*scale)))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	fill := func(r geo.Rect, c color.Color) {
		px := image.Rect(
			int(math.Floor(r.X*scale)), int(math.Floor(r.Y*scale)),
			int(math.Ceil(r.MaxX()*scale)), int(math.Ceil(r.MaxY()*scale)),
		).Intersect(img.Bounds())
		draw.Draw(img, px, image.NewUniform(c), image.Point{}, draw.Src)
	}

	for _, z := range m.Zones() {
		fill(z.Bounds(), toRGBA(z.Color, 1))
	}
	// Wider tiers are drawn last so they stay visible where tiers coincide.
	roads := m.Roads()
	for _, tier := range []routing.Tier{routing.TierLocal, routing.TierSecondary, routing.TierMain} {
		for _, r := range roads {
			if r.Tier == tier {
				fill(r.Footprint(), roadColors[tier])
			}
		}
	}
	for _, b := range m.Buildings() {
		fill(b.Footprint(), toRGBA(b.ZoneType.Color(), 0.6))
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

func toRGBA(c spec.RGB, shade float64) color.RGBA {
	ch := func(v float64) uint8 {
		return uint8(math.Round(math.Min(1, math.Max(0, v*shade)) * 255))
	}
	return color.RGBA{ch(c[0]), ch(c[1]), ch(c[2]), 0xff}
}
