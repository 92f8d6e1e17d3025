package grpc

import (
	"context"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/ShowBrowser/internal/client"
	"github.com/Belphemur/ShowBrowser/internal/config"
)

var (
	showServiceMetrics     *grpcprom.ServerMetrics
	showServiceMetricsOnce sync.Once
)

// serverMetrics returns the process-wide ShowService collectors, registering them on first use.
func serverMetrics() *grpcprom.ServerMetrics {
	showServiceMetricsOnce.Do(func() {
		showServiceMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(showServiceMetrics)
	})
	return showServiceMetrics
}

// NewGRPCServer builds a gRPC server exposing ShowService backed by c.
// Each call is counted, logged with its status code, and shielded from handler panics.
// Health reports ShowService as serving; reflection lists it.
func NewGRPCServer(c client.Client, opts ...grpc.ServerOption) *grpc.Server {
	srvMetrics := serverMetrics()
	logger := config.GetLogger()

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			srvMetrics.UnaryServerInterceptor(),
			logging.UnaryServerInterceptor(callLogger(logger), logging.WithLogOnEvents(logging.FinishCall)),
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverShowService)),
		),
	}, opts...)
	grpcServer := grpc.NewServer(opts...)

	RegisterShowServiceServer(grpcServer, NewServer(c))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	for _, name := range []string{ServiceName, ""} {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	// The service desc has no compiled file descriptor, so reflection can list but not describe it.
	reflection.Register(grpcServer)

	srvMetrics.InitializeMetrics(grpcServer)
	return grpcServer
}

// callLogger adapts zerolog to the middleware's key/value logger.
func callLogger(l zerolog.Logger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		entry := l.With().Fields(fields).Logger()
		switch lvl {
		case logging.LevelDebug:
			entry.Debug().Msg(msg)
		case logging.LevelInfo:
			entry.Info().Msg(msg)
		case logging.LevelWarn:
			entry.Warn().Msg(msg)
		default:
			entry.Error().Msg(msg)
		}
	})
}

// recoverShowService turns a handler panic into codes.Internal and reports it to Sentry.
func recoverShowService(ctx context.Context, p any) error {
	logger := config.GetLogger()
	logger.Error().Interface("panic", p).Msg("Recovered from panic in ShowService handler")

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.RecoverWithContext(ctx, p)

	return status.Error(codes.Internal, "internal error")
}
