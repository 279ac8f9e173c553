package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ChicagoDave/citygen/pkg/city"
	"github.com/ChicagoDave/citygen/pkg/export"
	"github.com/ChicagoDave/citygen/pkg/geo"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

const (
	minPreviewSize = 16
	maxPreviewSize = 4096
)

type generateResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	ID      string              `json:"id,omitempty"`
	Stats   any                 `json:"stats,omitempty"`
	Errors  []validation.Result `json:"errors,omitempty"`
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, `<!DOCTYPE html>
<html><head><title>citygen</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>citygen</h1>
<p>POST a configuration to <code>/api/generate</code>, then open <a href="/api/preview" style="color:#8cf">/api/preview</a>.</p>
</div>
</body></html>`)
}

func (s *Server) handleHealth(c echo.Context) error {
	_, id, ok := s.Current()
	resp := map[string]any{
		"status":  "ok",
		"version": Version,
	}
	if ok {
		resp["city_id"] = id.String()
	}
	return c.JSON(http.StatusOK, resp)
}

// handleConfig returns the default configuration with the distribution
// expressed in percent, plus the fixed per-type densities and colours.
func (s *Server) handleConfig(c echo.Context) error {
	d := spec.Defaults()
	dist := make(map[spec.ZoneType]int, len(d.ZoneDistribution))
	for zt, w := range d.ZoneDistribution {
		dist[zt] = int(math.Round(w * 100))
	}
	densities := make(map[spec.ZoneType]float64, len(spec.ZoneTypes))
	colors := make(map[spec.ZoneType]spec.RGB, len(spec.ZoneTypes))
	for _, zt := range spec.ZoneTypes {
		densities[zt] = zt.Density()
		colors[zt] = zt.Color()
	}

	return c.JSON(http.StatusOK, map[string]any{
		"width":                d.Width,
		"height":               d.Height,
		"main_road_width":      d.MainRoadWidth,
		"secondary_road_width": d.SecondaryRoadWidth,
		"local_road_width":     d.LocalRoadWidth,
		"main_grid_size":       d.MainGridSize,
		"secondary_grid_size":  d.SecondaryGridSize,
		"seed":                 d.Seed,
		"zone_distribution":    dist,
		"zone_densities":       densities,
		"zone_colors":          colors,
		"zone_types":           spec.ZoneTypes,
	})
}

func (s *Server) handleGenerate(c echo.Context) error {
	if !s.limiter.Allow() {
		return newTooManyRequestsError()
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return newBadRequestError("reading request body", err)
	}
	cfg := spec.Defaults()
	if len(bytes.TrimSpace(body)) > 0 {
		if cfg, err = spec.Decode(body, spec.FormatJSON); err != nil {
			return c.JSON(http.StatusBadRequest, generateResponse{
				Message: fmt.Sprintf("Error generating city: %v", err),
			})
		}
	}

	if limit := s.cfg.Generate.MaxAreaM2; limit > 0 && cfg.Area() > limit {
		return c.JSON(http.StatusBadRequest, generateResponse{
			Message: fmt.Sprintf("Error generating city: area %.0f m² exceeds the %.0f m² limit", cfg.Area(), limit),
		})
	}

	s.genMu.Lock()
	m, err := city.GenerateContext(c.Request().Context(), cfg)
	s.genMu.Unlock()

	if err != nil {
		resp := generateResponse{Message: fmt.Sprintf("Error generating city: %v", err)}
		var verr *validation.Error
		if errors.As(err, &verr) {
			resp.Errors = verr.Report.Errors
			return c.JSON(http.StatusBadRequest, resp)
		}
		s.log.Error("generation failed", "err", err)
		return c.JSON(http.StatusInternalServerError, resp)
	}

	id := s.store(m)
	stats := m.Stats()
	s.log.Info("city generated",
		"id", id,
		"dimensions", stats.Dimensions,
		"seed", cfg.Seed,
		"zones", stats.TotalZones,
		"roads", stats.TotalRoads,
		"buildings", stats.TotalBuildings)

	return c.JSON(http.StatusOK, generateResponse{
		Success: true,
		Message: "City generated successfully!",
		ID:      id.String(),
		Stats:   stats,
	})
}

func (s *Server) currentModel() (*city.Model, string, error) {
	m, id, ok := s.Current()
	if !ok {
		return nil, "", newNotFoundError("no city generated")
	}
	return m, id.String(), nil
}

func (s *Server) handleCityData(c echo.Context) error {
	m, _, err := s.currentModel()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) handlePreview(c echo.Context) error {
	m, _, err := s.currentModel()
	if err != nil {
		return err
	}

	size := s.cfg.Generate.PreviewSize
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minPreviewSize || n > maxPreviewSize {
			return newBadRequestError(
				fmt.Sprintf("size must be an integer between %d and %d", minPreviewSize, maxPreviewSize), err)
		}
		size = n
	}

	var buf bytes.Buffer
	if err := export.WritePNG(&buf, export.RenderPreview(m, size)); err != nil {
		return newInternalError("rendering preview", err)
	}
	return c.Blob(http.StatusOK, export.FormatPNG.ContentType(), buf.Bytes())
}

func (s *Server) handleExport(c echo.Context) error {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		return newBadRequestError("unsupported export format", err)
	}
	m, id, err := s.currentModel()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	opts := export.Options{PreviewSize: s.cfg.Generate.PreviewSize, Indent: true}
	if err := export.Write(&buf, m, format, opts); err != nil {
		return newInternalError("exporting city", err)
	}

	filename := "city_" + id[:8] + format.Extension()
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

type zoneAtResponse struct {
	Zone      layout.Zone `json:"zone"`
	Buildings int         `json:"buildings"`
}

func (s *Server) handleZoneAt(c echo.Context) error {
	x, errX := strconv.ParseFloat(c.QueryParam("x"), 64)
	y, errY := strconv.ParseFloat(c.QueryParam("y"), 64)
	if err := errors.Join(errX, errY); err != nil {
		return newBadRequestError("x and y must be numbers", err)
	}
	m, _, err := s.currentModel()
	if err != nil {
		return err
	}

	z, ok := m.ZoneAt(geo.Pt(x, y))
	if !ok {
		return newNotFoundError(fmt.Sprintf("no zone at (%g, %g)", x, y))
	}
	return c.JSON(http.StatusOK, zoneAtResponse{
		Zone:      z,
		Buildings: len(m.BuildingsInZone(z.ID)),
	})
}

func (s *Server) handleValidation(c echo.Context) error {
	m, _, err := s.currentModel()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, city.Check(m))
}
