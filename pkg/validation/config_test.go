package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

func hasErrorAt(r *Report, path string) bool {
	for _, e := range r.Errors {
		if e.Path == path {
			return true
		}
	}
	return false
}

func hasWarningAt(r *Report, path string) bool {
	for _, w := range r.Warnings {
		if w.Path == path {
			return true
		}
	}
	return false
}

func TestValidateDefaultConfig(t *testing.T) {
	r := ValidateConfig(spec.Defaults())
	if !r.Valid {
		for _, e := range r.Errors {
			t.Logf("error: %s", e.Message)
		}
		t.Fatal("default config should be valid")
	}
	if len(r.Warnings) != 0 {
		t.Errorf("default config produced %d warnings", len(r.Warnings))
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*spec.Config)
		path   string
	}{
		{"zero width", func(c *spec.Config) { c.Width = 0 }, "width"},
		{"negative height", func(c *spec.Config) { c.Height = -5 }, "height"},
		{"zero main road", func(c *spec.Config) { c.MainRoadWidth = 0 }, "main_road_width"},
		{"negative local road", func(c *spec.Config) { c.LocalRoadWidth = -1 }, "local_road_width"},
		{"infinite secondary road", func(c *spec.Config) { c.SecondaryRoadWidth = math.Inf(1) }, "secondary_road_width"},
		{"zero main grid", func(c *spec.Config) { c.MainGridSize = 0 }, "main_grid_size"},
		{"main grid too large", func(c *spec.Config) { c.Height = 150 }, "main_grid_size"},
		{"secondary grid too large", func(c *spec.Config) {
			c.Width, c.Height = 300, 300
			c.MainGridSize = 300
			c.SecondaryGridSize = 400
		}, "secondary_grid_size"},
		{"too many main cells", func(c *spec.Config) {
			c.MainGridSize, c.SecondaryGridSize = 0.05, 0.05
		}, "main_grid_size"},
		{"too many secondary cells", func(c *spec.Config) { c.SecondaryGridSize = 1 }, "secondary_grid_size"},
		{"negative weight", func(c *spec.Config) { c.ZoneDistribution[spec.ZoneParks] = -0.1 }, "zone_distribution.parks"},
		{"unknown zone", func(c *spec.Config) { c.ZoneDistribution["harbour"] = 0.1 }, "zone_distribution.harbour"},
		{"all zero", func(c *spec.Config) {
			c.ZoneDistribution = map[spec.ZoneType]float64{spec.ZoneResidential: 0, spec.ZoneParks: 0}
		}, "zone_distribution"},
		{"empty distribution", func(c *spec.Config) { c.ZoneDistribution = nil }, "zone_distribution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := spec.Defaults()
			tt.mutate(&cfg)
			r := ValidateConfig(cfg)
			if r.Valid {
				t.Fatal("expected invalid report")
			}
			if !hasErrorAt(r, tt.path) {
				t.Errorf("no error at %s; got %+v", tt.path, r.Errors)
			}
			var verr *Error
			if !errors.As(r.Err(), &verr) {
				t.Errorf("Err() = %v, want *Error", r.Err())
			}
		})
	}
}

func TestValidateConfigWarnings(t *testing.T) {
	cfg := spec.Defaults()
	cfg.SecondaryGridSize = 70
	cfg.LocalRoadWidth = 30
	r := ValidateConfig(cfg)
	if !r.Valid {
		t.Fatalf("warnings must not invalidate: %+v", r.Errors)
	}
	if !hasWarningAt(r, "secondary_grid_size") {
		t.Error("expected sub-multiple warning")
	}
	if !hasWarningAt(r, "main_road_width") {
		t.Error("expected road width ordering warning")
	}
}

func TestValidateGridCellLimit(t *testing.T) {
	cfg := spec.Defaults()
	cfg.Width, cfg.Height = 5000, 5000
	cfg.MainGridSize, cfg.SecondaryGridSize = 10, 10
	if r := ValidateConfig(cfg); !r.Valid {
		t.Fatalf("exactly %d cells should be allowed: %+v", MaxGridCells, r.Errors)
	}

	cfg.SecondaryGridSize = 9.9
	if r := ValidateConfig(cfg); r.Valid || !hasErrorAt(r, "secondary_grid_size") {
		t.Errorf("expected cell limit error on secondary_grid_size, got %+v", r.Errors)
	}
}
