package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowBrowser/internal/client"
	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/render"
)

// Server serves the show browser pages, their fragments and the JSON API.
type Server struct {
	echo    *echo.Echo
	client  client.Client
	logger  zerolog.Logger
	address string
}

// NewServer wires the routes and middleware around a TVmaze client and the views.
func NewServer(cfg *config.Config, c client.Client, views *render.Renderer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &viewRenderer{views: views}

	s := &Server{
		echo:    e,
		client:  c,
		logger:  config.GetLogger(),
		address: fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Str("request_id", v.RequestID).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Str("request_id", v.RequestID).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.handleHealth)

	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/search", s.handleSearch)

	// Fragments for clients that swap regions in place.
	s.echo.GET("/shows", s.handleShowsFragment)
	s.echo.GET("/shows/:id/episodes", s.handleEpisodesFragment)

	api := s.echo.Group("/api")
	api.GET("/shows", s.handleAPIShows)
	api.GET("/shows/:id/episodes", s.handleAPIEpisodes)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.address).Msg("Starting web server")
	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// viewRenderer lets echo's Context.Render drive the named views.
type viewRenderer struct {
	views *render.Renderer
}

func (r *viewRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.views.Render(w, name, data)
}
