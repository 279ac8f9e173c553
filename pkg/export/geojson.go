package export

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ChicagoDave/citygen/pkg/city"
	"github.com/ChicagoDave/citygen/pkg/geo"
)

// GeoJSON builds a feature collection of zone and building polygons and
// road centerlines. Coordinates are plan metres, not longitude/latitude.
func GeoJSON(m *city.Model) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, z := range m.Zones() {
		f := geojson.NewFeature(rectPolygon(z.Bounds()))
		f.ID = z.ID
		f.Properties["kind"] = "zone"
		f.Properties["zone_type"] = string(z.Type)
		f.Properties["density"] = z.Density
		f.Properties["area"] = z.Area()
		fc.Append(f)
	}

	for _, r := range m.Roads() {
		f := geojson.NewFeature(orb.LineString{toOrb(r.Start), toOrb(r.End)})
		f.ID = r.ID
		f.Properties["kind"] = "road"
		f.Properties["tier"] = string(r.Tier)
		f.Properties["width"] = r.Width
		fc.Append(f)
	}

	for _, b := range m.Buildings() {
		f := geojson.NewFeature(rectPolygon(b.Footprint()))
		f.ID = b.ID
		f.Properties["kind"] = "building"
		f.Properties["zone_id"] = b.ZoneID
		f.Properties["zone_type"] = string(b.ZoneType)
		f.Properties["floors"] = b.Floors
		f.Properties["building_height"] = b.BuildingHeight
		fc.Append(f)
	}

	for _, in := range m.Intersections() {
		f := geojson.NewFeature(toOrb(in.Point))
		f.Properties["kind"] = "intersection"
		f.Properties["degree"] = in.Degree
		fc.Append(f)
	}

	return fc
}

// WriteGeoJSON writes the model as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, m *city.Model) error {
	data, err := GeoJSON(m).MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// ReadGeoJSON parses a feature collection written by WriteGeoJSON.
func ReadGeoJSON(r io.Reader) (*geojson.FeatureCollection, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(raw)
}

func toOrb(p geo.Point2D) orb.Point {
	return orb.Point{p.X, p.Y}
}

// rectPolygon returns a closed counter-clockwise ring around r.
func rectPolygon(r geo.Rect) orb.Polygon {
	c := r.Corners()
	ring := orb.Ring{toOrb(c[0]), toOrb(c[1]), toOrb(c[2]), toOrb(c[3]), toOrb(c[0])}
	return orb.Polygon{ring}
}
