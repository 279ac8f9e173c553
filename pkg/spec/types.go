package spec

import "fmt"

// ZoneType identifies the land use of a zone.
type ZoneType string

const (
	ZoneResidential ZoneType = "residential"
	ZoneCommercial  ZoneType = "commercial"
	ZoneBusiness    ZoneType = "business"
	ZoneLeisure     ZoneType = "leisure"
	ZoneParks       ZoneType = "parks"
	ZoneIndustrial  ZoneType = "industrial"
)

// ZoneTypes lists every zone type in tie-break order.
// Weighted sampling walks cumulative ranges in this order.
var ZoneTypes = []ZoneType{
	ZoneResidential,
	ZoneCommercial,
	ZoneBusiness,
	ZoneLeisure,
	ZoneParks,
	ZoneIndustrial,
}

// ParseZoneType returns the zone type named by s.
func ParseZoneType(s string) (ZoneType, error) {
	for _, zt := range ZoneTypes {
		if string(zt) == s {
			return zt, nil
		}
	}
	return "", fmt.Errorf("unknown zone type %q", s)
}

// Valid reports whether zt is one of the known zone types.
func (zt ZoneType) Valid() bool {
	_, err := ParseZoneType(string(zt))
	return err == nil
}

// Order returns the position of zt in the fixed type ordering, or -1.
func (zt ZoneType) Order() int {
	for i, t := range ZoneTypes {
		if t == zt {
			return i
		}
	}
	return -1
}

// RGB is a colour with components in [0,1].
type RGB [3]float64

// Profile holds the fixed per-type parameters used for placement and display.
type Profile struct {
	Density        float64    `json:"density" yaml:"density"`
	Color          RGB        `json:"color" yaml:"color"`
	MinHeightM     float64    `json:"min_height_m" yaml:"min_height_m"`
	MaxHeightM     float64    `json:"max_height_m" yaml:"max_height_m"`
	MaxFloors      int        `json:"max_floors,omitempty" yaml:"max_floors,omitempty"` // 0 = no cap
	MinFootprint   [2]float64 `json:"min_footprint" yaml:"min_footprint"`              // [width, depth]
	MaxFootprint   [2]float64 `json:"max_footprint" yaml:"max_footprint"`
	BaseSpacingM   float64    `json:"base_spacing_m" yaml:"base_spacing_m"`
	PlacesBuilding bool       `json:"places_buildings" yaml:"places_buildings"`
}

var profiles = map[ZoneType]Profile{
	ZoneResidential: {
		Density: 0.6, Color: RGB{0.8, 0.8, 0.6},
		MinHeightM: 6, MaxHeightM: 25, MaxFloors: 8,
		MinFootprint: [2]float64{8, 10}, MaxFootprint: [2]float64{15, 20},
		BaseSpacingM: 5, PlacesBuilding: true,
	},
	ZoneCommercial: {
		Density: 0.8, Color: RGB{0.6, 0.6, 0.9},
		MinHeightM: 8, MaxHeightM: 40,
		MinFootprint: [2]float64{12, 15}, MaxFootprint: [2]float64{25, 30},
		BaseSpacingM: 3, PlacesBuilding: true,
	},
	ZoneBusiness: {
		Density: 0.9, Color: RGB{0.5, 0.5, 0.8},
		MinHeightM: 20, MaxHeightM: 80,
		MinFootprint: [2]float64{20, 25}, MaxFootprint: [2]float64{40, 50},
		BaseSpacingM: 8, PlacesBuilding: true,
	},
	ZoneLeisure: {
		Density: 0.4, Color: RGB{0.9, 0.7, 0.6},
		MinHeightM: 3, MaxHeightM: 15,
		MinFootprint: [2]float64{10, 12}, MaxFootprint: [2]float64{20, 25},
		BaseSpacingM: 6, PlacesBuilding: true,
	},
	ZoneParks: {
		Density: 0.1, Color: RGB{0.4, 0.8, 0.4},
		MinHeightM: 0, MaxHeightM: 5,
		MinFootprint: [2]float64{5, 5}, MaxFootprint: [2]float64{8, 8},
		BaseSpacingM: 20,
	},
	ZoneIndustrial: {
		Density: 0.7, Color: RGB{0.7, 0.7, 0.7},
		MinHeightM: 8, MaxHeightM: 20,
		MinFootprint: [2]float64{25, 30}, MaxFootprint: [2]float64{50, 60},
		BaseSpacingM: 10, PlacesBuilding: true,
	},
}

// ProfileFor returns the placement profile for zt.
// Unknown types get a neutral grey profile that places nothing.
func ProfileFor(zt ZoneType) Profile {
	if p, ok := profiles[zt]; ok {
		return p
	}
	return Profile{Color: RGB{0.5, 0.5, 0.5}}
}

// Density returns the building density of zt in [0,1].
func (zt ZoneType) Density() float64 { return ProfileFor(zt).Density }

// Color returns the display colour of zt.
func (zt ZoneType) Color() RGB { return ProfileFor(zt).Color }

// Config is the complete set of generation parameters.
// All lengths are in metres, measured from the origin.
type Config struct {
	Width  float64 `yaml:"width" json:"width" toml:"width"`
	Height float64 `yaml:"height" json:"height" toml:"height"`

	MainRoadWidth      float64 `yaml:"main_road_width" json:"main_road_width" toml:"main_road_width"`
	SecondaryRoadWidth float64 `yaml:"secondary_road_width" json:"secondary_road_width" toml:"secondary_road_width"`
	LocalRoadWidth     float64 `yaml:"local_road_width" json:"local_road_width" toml:"local_road_width"`

	MainGridSize      float64 `yaml:"main_grid_size" json:"main_grid_size" toml:"main_grid_size"`
	SecondaryGridSize float64 `yaml:"secondary_grid_size" json:"secondary_grid_size" toml:"secondary_grid_size"`

	// ZoneDistribution weights need not sum to 1.
	ZoneDistribution map[ZoneType]float64 `yaml:"zone_distribution" json:"zone_distribution" toml:"zone_distribution"`

	Seed int64 `yaml:"seed" json:"seed" toml:"seed"`
}

// Defaults returns the built-in generation parameters.
func Defaults() Config {
	return Config{
		Width:              1000,
		Height:             1000,
		MainRoadWidth:      20,
		SecondaryRoadWidth: 12,
		LocalRoadWidth:     8,
		MainGridSize:       200,
		SecondaryGridSize:  100,
		ZoneDistribution:   DefaultDistribution(),
	}
}

// DefaultDistribution returns the built-in zone weights.
func DefaultDistribution() map[ZoneType]float64 {
	return map[ZoneType]float64{
		ZoneResidential: 0.35,
		ZoneCommercial:  0.15,
		ZoneBusiness:    0.20,
		ZoneLeisure:     0.10,
		ZoneParks:       0.15,
		ZoneIndustrial:  0.05,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	if c.ZoneDistribution != nil {
		out.ZoneDistribution = make(map[ZoneType]float64, len(c.ZoneDistribution))
		for k, v := range c.ZoneDistribution {
			out.ZoneDistribution[k] = v
		}
	}
	return out
}

// TotalWeight returns the sum of all non-negative distribution weights.
func (c Config) TotalWeight() float64 {
	sum := 0.0
	for _, w := range c.ZoneDistribution {
		if w > 0 {
			sum += w
		}
	}
	return sum
}

// Normalized returns the distribution scaled to sum to 1, in type order.
// Types absent from the distribution get weight 0. Returns nil when the
// total weight is zero.
func (c Config) Normalized() map[ZoneType]float64 {
	total := c.TotalWeight()
	if total <= 0 {
		return nil
	}
	out := make(map[ZoneType]float64, len(ZoneTypes))
	for _, zt := range ZoneTypes {
		w := c.ZoneDistribution[zt]
		if w < 0 {
			w = 0
		}
		out[zt] = w / total
	}
	return out
}

// Area returns the configured bounds area in square metres.
func (c Config) Area() float64 {
	return c.Width * c.Height
}
