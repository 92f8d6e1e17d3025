package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/Belphemur/ShowBrowser/internal/client"
	"github.com/Belphemur/ShowBrowser/internal/config"
	grpcserver "github.com/Belphemur/ShowBrowser/internal/grpc"
	"github.com/Belphemur/ShowBrowser/internal/metrics"
	"github.com/Belphemur/ShowBrowser/internal/render"
	"github.com/Belphemur/ShowBrowser/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface, plus the gRPC and metrics servers when enabled",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("tvmaze_base_url", cfg.TVMazeBaseURL).
		Str("cache_provider", cfg.Cache.Provider).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Bool("grpc_enabled", cfg.GRPC.Enabled).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Application started with configuration")

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Error().Err(err).Msg("Failed to initialise Sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	tvmaze, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := tvmaze.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client")
		}
	}()

	views, err := render.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 3)

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg, nil)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
		defer shutdownHTTP(metricsServer)
	}

	if cfg.GRPC.Enabled {
		grpcServer, err := startGRPC(cfg, tvmaze, errCh)
		if err != nil {
			return err
		}
		defer grpcServer.GracefulStop()
	}

	webServer := web.NewServer(cfg, tvmaze, views)
	go func() {
		if err := webServer.Start(); err != nil {
			errCh <- fmt.Errorf("web server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("Server failed")
		shutdownWeb(webServer)
		return err
	}

	shutdownWeb(webServer)
	logger.Info().Msg("Server stopped gracefully")
	return nil
}

func startGRPC(cfg *config.Config, tvmaze client.Client, errCh chan<- error) (*grpc.Server, error) {
	logger := config.GetLogger()

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.GRPC.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	grpcServer := grpcserver.NewGRPCServer(tvmaze)
	go func() {
		logger.Info().Str("address", address).Msg("Starting gRPC server")
		if err := grpcServer.Serve(listener); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	return grpcServer, nil
}

func shutdownWeb(s *web.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Failed to shutdown web server")
	}
}

func shutdownHTTP(s *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Failed to shutdown metrics server")
	}
}
