package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Belphemur/ShowBrowser/internal/config"
)

const defaultPort = 9090

// NewHTTPServer serves gatherer at /metrics on the configured metrics port, next to a
// /healthz liveness probe. A nil gatherer exposes the default registry, which holds the
// TVmaze, view, cache and gRPC collectors.
func NewHTTPServer(cfg *config.Config, gatherer prometheus.Gatherer) *http.Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	port := cfg.Metrics.Port
	if port == 0 {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:      scrapeLogger{},
		ErrorHandling: promhttp.ContinueOnError,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// scrapeLogger routes collector failures during a scrape to the application logger.
type scrapeLogger struct{}

func (scrapeLogger) Println(v ...interface{}) {
	logger := config.GetLogger()
	logger.Error().Msg(fmt.Sprint(v...))
}
