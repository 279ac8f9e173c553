package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/ChicagoDave/citygen/internal/config"
	"github.com/ChicagoDave/citygen/pkg/city"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Server is the interactive web front end. It holds the single most recent
// generation; generations are serialised and rate limited.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	echo    *echo.Echo
	limiter *rate.Limiter

	genMu sync.Mutex // held for the duration of a generation

	mu      sync.RWMutex
	current *generation
}

type generation struct {
	id    uuid.UUID
	model *city.Model
	at    time.Time
}

// New creates a server. A nil logger falls back to slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Limit(cfg.Generate.RateLimit)
	if cfg.Generate.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Generate.Burst
	if burst < 1 {
		burst = 1
	}

	s := &Server{
		cfg:     cfg,
		log:     logger,
		limiter: rate.NewLimiter(limit, burst),
	}
	s.echo = s.newEcho()
	return s
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return !s.cfg.Server.LogRequests || c.Request().URL.Path == "/health"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
	}))
	if s.cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.cfg.Server.RequestTimeout,
		}))
	}
	e.Use(middleware.BodyLimit("1M"))

	s.registerRoutes(e)
	return e
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/", s.handleIndex)
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.GET("/config", s.handleConfig)
	api.POST("/generate", s.handleGenerate)
	api.GET("/city-data", s.handleCityData)
	api.GET("/preview", s.handlePreview)
	api.GET("/export/:format", s.handleExport)
	api.GET("/zone-at", s.handleZoneAt)
	api.GET("/validation", s.handleValidation)
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Current returns the most recent generation, or nil and false.
func (s *Server) Current() (*city.Model, uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, uuid.Nil, false
	}
	return s.current.model, s.current.id, true
}

func (s *Server) store(m *city.Model) uuid.UUID {
	g := &generation{id: uuid.New(), model: m, at: time.Now().UTC()}
	s.mu.Lock()
	s.current = g
	s.mu.Unlock()
	return g.id
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.echo,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("citygen server starting", "addr", "http://"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("citygen server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
