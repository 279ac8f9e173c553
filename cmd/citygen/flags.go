package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// configFlags binds the generation parameters to command-line flags.
// Only flags the user set override the base config.
type configFlags struct {
	specPath string

	width, height                                     float64
	mainRoadWidth, secondaryRoadWidth, localRoadWidth float64
	mainGridSize, secondaryGridSize                   float64
	seed                                              int64

	weights map[spec.ZoneType]*float64
}

func (f *configFlags) register(cmd *cobra.Command) {
	d := spec.Defaults()
	fs := cmd.Flags()

	fs.StringVar(&f.specPath, "spec", "", "Generation config file (.yaml, .yml, .toml or .json)")
	fs.Float64Var(&f.width, "width", d.Width, "City width in metres")
	fs.Float64Var(&f.height, "height", d.Height, "City height in metres")
	fs.Float64Var(&f.mainRoadWidth, "main-road-width", d.MainRoadWidth, "Main road width in metres")
	fs.Float64Var(&f.secondaryRoadWidth, "secondary-road-width", d.SecondaryRoadWidth, "Secondary road width in metres")
	fs.Float64Var(&f.localRoadWidth, "local-road-width", d.LocalRoadWidth, "Local road width in metres")
	fs.Float64Var(&f.mainGridSize, "main-grid-size", d.MainGridSize, "Main road spacing in metres")
	fs.Float64Var(&f.secondaryGridSize, "secondary-grid-size", d.SecondaryGridSize, "Secondary road spacing in metres")
	fs.Int64Var(&f.seed, "seed", d.Seed, "Seed for zone and building variation")

	f.weights = make(map[spec.ZoneType]*float64, len(spec.ZoneTypes))
	for _, zt := range spec.ZoneTypes {
		v := new(float64)
		fs.Float64Var(v, string(zt), d.ZoneDistribution[zt]*100, fmt.Sprintf("Percentage of %s zones", zt))
		f.weights[zt] = v
	}
}

// resolve builds the config: the spec file (positional argument or
// --spec) or the defaults, then any flags the user set.
func (f *configFlags) resolve(cmd *cobra.Command, args []string) (spec.Config, error) {
	path := f.specPath
	if len(args) == 1 {
		path = args[0]
	}

	cfg := spec.Defaults()
	if path != "" {
		loaded, err := spec.Load(path)
		if err != nil {
			return spec.Config{}, fmt.Errorf("loading spec: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("width", &cfg.Width, f.width)
	set("height", &cfg.Height, f.height)
	set("main-road-width", &cfg.MainRoadWidth, f.mainRoadWidth)
	set("secondary-road-width", &cfg.SecondaryRoadWidth, f.secondaryRoadWidth)
	set("local-road-width", &cfg.LocalRoadWidth, f.localRoadWidth)
	set("main-grid-size", &cfg.MainGridSize, f.mainGridSize)
	set("secondary-grid-size", &cfg.SecondaryGridSize, f.secondaryGridSize)
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}

	// Zone flags are percentages. Rescale the base distribution to
	// percentages first so overrides mix with it correctly.
	changed := false
	for _, zt := range spec.ZoneTypes {
		changed = changed || fs.Changed(string(zt))
	}
	if changed {
		dist := make(map[spec.ZoneType]float64, len(spec.ZoneTypes))
		for zt, w := range cfg.Normalized() {
			dist[zt] = w * 100
		}
		for _, zt := range spec.ZoneTypes {
			if fs.Changed(string(zt)) {
				dist[zt] = *f.weights[zt]
			}
		}
		cfg.ZoneDistribution = dist
	}

	return cfg, nil
}
