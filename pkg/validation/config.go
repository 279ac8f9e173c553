package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// MaxGridCells caps the number of cells either grid may lay over the
// city. Generation cost grows with the cell count.
const MaxGridCells = 250_000

// ValidateConfig checks a generation config before any computation.
// Errors make the report invalid; warnings flag legal but odd settings.
func ValidateConfig(cfg spec.Config) *Report {
	r := NewReport()

	validateBounds(cfg, r)
	validateRoadWidths(cfg, r)
	validateGrid(cfg, r)
	validateDistribution(cfg, r)

	return r
}

func validateBounds(cfg spec.Config, r *Report) {
	dims := []struct {
		name  string
		value float64
	}{
		{"width", cfg.Width},
		{"height", cfg.Height},
	}
	for _, d := range dims {
		if !(d.value > 0) || math.IsInf(d.value, 0) {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s must be greater than 0", d.name),
				Path:        d.name,
				ActualValue: d.value,
				Expected:    "> 0",
			})
		}
	}
}

func validateRoadWidths(cfg spec.Config, r *Report) {
	widths := []struct {
		name  string
		value float64
	}{
		{"main_road_width", cfg.MainRoadWidth},
		{"secondary_road_width", cfg.SecondaryRoadWidth},
		{"local_road_width", cfg.LocalRoadWidth},
	}
	ok := true
	for _, w := range widths {
		if !(w.value > 0) || math.IsInf(w.value, 0) {
			ok = false
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s must be greater than 0", w.name),
				Path:        w.name,
				ActualValue: w.value,
				Expected:    "> 0",
			})
		}
	}
	if !ok {
		return
	}

	if !(cfg.MainRoadWidth > cfg.SecondaryRoadWidth && cfg.SecondaryRoadWidth > cfg.LocalRoadWidth) {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "road widths are not strictly decreasing from main to local",
			Path:        "main_road_width",
			ActualValue: fmt.Sprintf("%g/%g/%g", cfg.MainRoadWidth, cfg.SecondaryRoadWidth, cfg.LocalRoadWidth),
			Expected:    "main > secondary > local",
		})
	}
}

func validateGrid(cfg spec.Config, r *Report) {
	limit := math.Min(cfg.Width, cfg.Height)

	grids := []struct {
		name  string
		value float64
	}{
		{"main_grid_size", cfg.MainGridSize},
		{"secondary_grid_size", cfg.SecondaryGridSize},
	}
	ok := true
	for _, g := range grids {
		if !(g.value > 0) {
			ok = false
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s must be greater than 0", g.name),
				Path:        g.name,
				ActualValue: g.value,
				Expected:    "> 0",
			})
			continue
		}
		if limit > 0 && g.value > limit {
			ok = false
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s (%g) exceeds the smaller city dimension (%g)", g.name, g.value, limit),
				Path:        g.name,
				ActualValue: g.value,
				Expected:    fmt.Sprintf("<= %g", limit),
			})
		}
	}
	if !ok {
		return
	}

	for _, g := range grids {
		cells := math.Ceil(cfg.Width/g.value) * math.Ceil(cfg.Height/g.value)
		if cells > MaxGridCells {
			ok = false
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s (%g) divides the city into %.0f cells", g.name, g.value, cells),
				Path:        g.name,
				ActualValue: g.value,
				Expected:    fmt.Sprintf("at most %d cells", MaxGridCells),
				Suggestions: []string{"Increase the grid spacing or shrink the city"},
			})
		}
	}
	if !ok {
		return
	}

	ratio := cfg.MainGridSize / cfg.SecondaryGridSize
	if cfg.SecondaryGridSize > cfg.MainGridSize || math.Abs(ratio-math.Round(ratio)) > 1e-9 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "secondary_grid_size is not a sub-multiple of main_grid_size",
			Path:        "secondary_grid_size",
			ActualValue: cfg.SecondaryGridSize,
			Expected:    fmt.Sprintf("%g / n", cfg.MainGridSize),
			Suggestions: []string{"Pick a secondary spacing that divides the main spacing evenly"},
		})
	}

	if cfg.LocalRoadWidth >= cfg.MainGridSize {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "local_road_width leaves no buildable room inside a zone",
			Path:        "local_road_width",
			ActualValue: cfg.LocalRoadWidth,
			Expected:    fmt.Sprintf("< %g", cfg.MainGridSize),
		})
	}
}

func validateDistribution(cfg spec.Config, r *Report) {
	if len(cfg.ZoneDistribution) == 0 {
		r.AddError(Result{
			Level:    LevelConfig,
			Message:  "zone_distribution must contain at least one zone type",
			Path:     "zone_distribution",
			Expected: "at least 1 weight > 0",
		})
		return
	}

	keys := make([]string, 0, len(cfg.ZoneDistribution))
	for zt := range cfg.ZoneDistribution {
		keys = append(keys, string(zt))
	}
	sort.Strings(keys)

	for _, k := range keys {
		zt := spec.ZoneType(k)
		w := cfg.ZoneDistribution[zt]
		path := "zone_distribution." + k
		if !zt.Valid() {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("unknown zone type %q", k),
				Path:        path,
				ActualValue: k,
				Suggestions: []string{"Use one of residential, commercial, business, leisure, parks, industrial"},
			})
			continue
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s must be a finite non-negative weight", path),
				Path:        path,
				ActualValue: w,
				Expected:    ">= 0",
			})
		}
	}

	if cfg.TotalWeight() <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "zone_distribution weights are all zero",
			Path:        "zone_distribution",
			ActualValue: 0.0,
			Expected:    "sum > 0",
			Suggestions: []string{"Give at least one zone type a positive weight"},
		})
	}
}
