package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/ChicagoDave/citygen/internal/server"
	"github.com/ChicagoDave/citygen/pkg/city"
	"github.com/ChicagoDave/citygen/pkg/export"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

type generateOptions struct {
	exports     []string
	preview     string
	previewSize int
	json        bool
}

func (a *app) runGenerate(cmd *cobra.Command, cfg spec.Config, opts generateOptions) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	m, err := city.GenerateContext(cmd.Context(), cfg)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			printValidationReport(stderr, verr.Report)
			return errInvalid
		}
		return fmt.Errorf("generating city: %w", err)
	}

	stats := m.Stats()
	a.log.Info("city generated",
		"dimensions", stats.Dimensions,
		"seed", cfg.Seed,
		"zones", stats.TotalZones,
		"roads", stats.TotalRoads,
		"buildings", stats.TotalBuildings)

	size := opts.previewSize
	if size <= 0 {
		size = a.cfg.Generate.PreviewSize
	}
	exportOpts := export.Options{PreviewSize: size, Indent: true}

	for _, path := range opts.exports {
		if err := export.ToFile(path, m, exportOpts); err != nil {
			return err
		}
		a.log.Info("exported", "path", path)
	}
	if opts.preview != "" {
		if err := writePreview(opts.preview, m, size); err != nil {
			return err
		}
		a.log.Info("preview written", "path", opts.preview, "size", size)
	}

	if opts.json {
		return export.WriteJSON(stdout, m, true)
	}
	printStats(stdout, stats)
	return nil
}

// writePreview renders a PNG to path whatever its extension.
func writePreview(path string, m *city.Model, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return &export.Error{Op: "preview", Path: path, Err: err}
	}
	werr := export.WritePNG(f, export.RenderPreview(m, size))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(path)
		return &export.Error{Op: "preview", Path: path, Err: werr}
	}
	return nil
}

func (a *app) runValidate(cmd *cobra.Command, cfg spec.Config, deep bool) error {
	out := cmd.OutOrStdout()
	report := validation.ValidateConfig(cfg)

	if deep && report.Valid {
		m, err := city.GenerateContext(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("generating city: %w", err)
		}
		report.Merge(city.Check(m))
	}

	printValidationReport(out, report)
	if !report.Valid {
		return errInvalid
	}
	return nil
}

func runDefaults(w io.Writer, format string) error {
	cfg := spec.Defaults()
	switch format {
	case "yaml", "yml":
		data, err := spec.MarshalYAML(cfg)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	return fmt.Errorf("unknown format %q (want yaml, toml or json)", format)
}

func (a *app) runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.cfg, a.log)
	return srv.Start(ctx)
}
