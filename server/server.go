// Package server assembles postboard: backend, store, capabilities,
// components and the Echo router serving them.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pthm/postboard/actions"
	hxcmpecho "github.com/pthm/postboard/adapters/echo"
	"github.com/pthm/postboard/api"
	"github.com/pthm/postboard/components"
	"github.com/pthm/postboard/config"
	"github.com/pthm/postboard/store"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server is a configured postboard instance.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	echo       *echo.Echo
	store      *store.Store
	backend    api.Backend
	actions    *actions.Dispatcher
	components *components.Set
}

// New wires a server from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		echo:   echo.New(),
		store:  store.New(),
	}

	switch cfg.Backend {
	case config.BackendMemory:
		s.backend = api.NewMemory(cfg.Seed...)
	case config.BackendRemote:
		s.backend = api.NewClient(cfg.API.URL, cfg.API.Key, &http.Client{Timeout: cfg.API.Timeout})
	default:
		return nil, fmt.Errorf("%w: backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
	s.actions = actions.New(s.backend, s.store,
		actions.WithLogger(logger),
		actions.WithTimeout(cfg.API.Timeout),
	)

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Error("request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	}))

	opts := []hxcmpecho.Option{hxcmpecho.WithLogger(logger)}
	if cfg.Key != "" {
		opts = append(opts, hxcmpecho.WithKey([]byte(cfg.Key)))
	}
	reg := hxcmpecho.Mount(e, opts...)
	s.components = components.Init(reg, s.store, s.actions, components.Options{
		Poll:                  cfg.UI.Poll,
		GuardDuplicateSubmits: cfg.UI.GuardDuplicateSubmits,
	})

	e.GET("/", s.index)
	e.GET("/posts/new", s.newPost)
	e.GET("/posts/:id", s.showPost)

	if cfg.Backend == config.BackendMemory && cfg.API.Serve {
		api.NewHandler(s.backend, cfg.API.Key, logger).Register(e.Group("/api"))
	}
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Components returns the mounted components.
func (s *Server) Components() *components.Set {
	return s.components
}

// Wait blocks until background fetches finish.
func (s *Server) Wait() {
	s.actions.Wait()
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("postboard listening", "addr", s.cfg.Addr, "backend", s.cfg.Backend)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := s.echo.Shutdown(shutdownCtx)
	s.actions.Wait()
	return err
}

// NewLogger builds the application logger from cfg.
func NewLogger(cfg config.Log, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
