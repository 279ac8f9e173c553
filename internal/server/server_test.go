package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/citygen/internal/config"
	"github.com/ChicagoDave/citygen/pkg/export"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Defaults()
	cfg.Server.LogRequests = false
	cfg.Generate.RateLimit = 0 // unlimited
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const smallCity = `{"width": 800, "height": 600, "seed": 7,
	"zone_distribution": {"residential": 50, "commercial": 20, "industrial": 20, "parks": 10}}`

func generate(t *testing.T, s *Server) generateResponse {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/generate", smallCity)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleConfig(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1000), body["width"])
	dist := body["zone_distribution"].(map[string]any)
	assert.Equal(t, float64(35), dist["residential"])
	densities := body["zone_densities"].(map[string]any)
	assert.Equal(t, 0.6, densities["residential"])
	assert.Len(t, body["zone_types"], 6)
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer(t)
	resp := generate(t, s)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ID)
	stats := resp.Stats.(map[string]any)
	assert.Equal(t, float64(12), stats["total_zones"])
	assert.Equal(t, "800x600", stats["dimensions"])

	m, id, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, resp.ID, id.String())
	assert.Len(t, m.Zones(), 12)
}

func TestHandleGenerateEmptyBodyUsesDefaults(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/generate", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	m, _, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, float64(1000), m.Config().Width)
}

func TestHandleGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", `{"width": 0}`},
		{"negative weight", `{"zone_distribution": {"parks": -5}}`},
		{"malformed json", `{"width": `},
		{"too large", `{"width": 20000, "height": 20000}`},
		{"too many cells", `{"width": 1000, "height": 1000, "main_grid_size": 0.05, "secondary_grid_size": 0.05}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := do(t, s, http.MethodPost, "/api/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp generateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Message, "Error generating city")

			_, _, ok := s.Current()
			assert.False(t, ok, "invalid request must not replace the city")
		})
	}
}

func TestHandleGenerateRateLimited(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.LogRequests = false
	cfg.Generate.RateLimit = 0.001
	cfg.Generate.Burst = 1
	s := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first := do(t, s, http.MethodPost, "/api/generate", smallCity)
	assert.Equal(t, http.StatusOK, first.Code)

	second := do(t, s, http.MethodPost, "/api/generate", smallCity)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &apiErr))
	assert.Equal(t, "RATE_LIMITED", apiErr.Code)
}

func TestEndpointsWithoutCity(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/api/city-data", "/api/preview", "/api/export/json", "/api/zone-at?x=1&y=1", "/api/validation"} {
		rec := do(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr), target)
		assert.Equal(t, "NOT_FOUND", apiErr.Code, target)
	}
}

func TestHandleCityData(t *testing.T) {
	s := newTestServer(t)
	generate(t, s)

	rec := do(t, s, http.MethodGet, "/api/city-data", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := export.ReadJSON(rec.Body)
	require.NoError(t, err)
	m, _, _ := s.Current()
	assert.Equal(t, m.Document(), got.Document())
}

func TestHandlePreview(t *testing.T) {
	s := newTestServer(t)
	generate(t, s)

	rec := do(t, s, http.MethodGet, "/api/preview?size=200", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	for _, bad := range []string{"abc", "0", "100000"} {
		rec := do(t, s, http.MethodGet, "/api/preview?size="+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestHandleExport(t *testing.T) {
	s := newTestServer(t)
	resp := generate(t, s)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"json", "application/json", "{"},
		{"obj", "text/plain; charset=utf-8", "# city 800x600"},
		{"geojson", "application/geo+json", "{"},
		{"msgpack", "application/msgpack", ""},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/export/"+tt.format, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "city_"+resp.ID[:8]+"."+tt.format)
			assert.NotEmpty(t, rec.Body.Bytes())
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.prefix))
		})
	}

	rec := do(t, s, http.MethodGet, "/api/export/dxf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleZoneAt(t *testing.T) {
	s := newTestServer(t)
	generate(t, s)

	rec := do(t, s, http.MethodGet, "/api/zone-at?x=650&y=550", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body zoneAtResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "zone_3_2", body.Zone.ID)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/zone-at?x=5000&y=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/zone-at?x=abc&y=1", "").Code)
}

func TestHandleValidation(t *testing.T) {
	s := newTestServer(t)
	generate(t, s)

	rec := do(t, s, http.MethodGet, "/api/validation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["valid"])
}

func TestHandleHealthDirect(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	require.NoError(t, s.handleHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestIndexAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "citygen")

	rec = do(t, s, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "HTTP_ERROR", apiErr.Code)
}
