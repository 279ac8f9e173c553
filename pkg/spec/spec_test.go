package spec

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "city.yaml", `
width: 800
height: 600
main_grid_size: 200
secondary_grid_size: 100
seed: 42
zone_distribution:
  residential: 0.5
  commercial: 0.2
  industrial: 0.2
  parks: 0.1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("bounds = %vx%v, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
	// Unspecified fields keep defaults.
	if cfg.MainRoadWidth != 20 {
		t.Errorf("main_road_width = %v, want default 20", cfg.MainRoadWidth)
	}
	// A supplied distribution replaces the default rather than merging.
	if len(cfg.ZoneDistribution) != 4 {
		t.Errorf("zone_distribution has %d entries, want 4", len(cfg.ZoneDistribution))
	}
	if _, ok := cfg.ZoneDistribution[ZoneBusiness]; ok {
		t.Error("business weight leaked in from defaults")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "city.toml", `
width = 1200.0
height = 900.0
local_road_width = 6.0

[zone_distribution]
residential = 3.0
parks = 1.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 1200 || cfg.LocalRoadWidth != 6 {
		t.Errorf("got width=%v local=%v", cfg.Width, cfg.LocalRoadWidth)
	}
	if cfg.ZoneDistribution[ZoneResidential] != 3 || cfg.ZoneDistribution[ZoneParks] != 1 {
		t.Errorf("zone_distribution = %v", cfg.ZoneDistribution)
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestDecodeEmptyUsesDefaults(t *testing.T) {
	cfg, err := Decode([]byte(`{}`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	def := Defaults()
	if cfg.Width != def.Width || cfg.SecondaryGridSize != def.SecondaryGridSize {
		t.Errorf("decoded %+v, want defaults", cfg)
	}
	if len(cfg.ZoneDistribution) != len(ZoneTypes) {
		t.Errorf("distribution entries = %d, want %d", len(cfg.ZoneDistribution), len(ZoneTypes))
	}
}

func TestNormalized(t *testing.T) {
	cfg := Defaults()
	cfg.ZoneDistribution = map[ZoneType]float64{
		ZoneResidential: 2,
		ZoneParks:       2,
	}
	n := cfg.Normalized()
	if math.Abs(n[ZoneResidential]-0.5) > 1e-12 || math.Abs(n[ZoneParks]-0.5) > 1e-12 {
		t.Errorf("normalized = %v", n)
	}
	if n[ZoneBusiness] != 0 {
		t.Errorf("business = %v, want 0", n[ZoneBusiness])
	}

	cfg.ZoneDistribution = map[ZoneType]float64{ZoneResidential: 0}
	if cfg.Normalized() != nil {
		t.Error("expected nil for all-zero distribution")
	}
}

func TestParseZoneType(t *testing.T) {
	for i, zt := range ZoneTypes {
		got, err := ParseZoneType(string(zt))
		if err != nil || got != zt {
			t.Errorf("ParseZoneType(%q) = %v, %v", zt, got, err)
		}
		if zt.Order() != i {
			t.Errorf("%s.Order() = %d, want %d", zt, zt.Order(), i)
		}
	}
	if _, err := ParseZoneType("harbour"); err == nil {
		t.Error("expected error for unknown zone type")
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := Defaults()
	b := a.Clone()
	b.ZoneDistribution[ZoneResidential] = 99
	if a.ZoneDistribution[ZoneResidential] == 99 {
		t.Error("Clone shares the distribution map")
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Seed = 7
	data, err := MarshalYAML(cfg)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	back, err := Decode(data, FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.Seed != 7 || back.ZoneDistribution[ZoneBusiness] != 0.20 {
		t.Errorf("round trip lost fields: %+v", back)
	}
}
