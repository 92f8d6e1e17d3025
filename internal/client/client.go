package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/Belphemur/ShowBrowser/internal/cache"
	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/models"
	"github.com/Belphemur/ShowBrowser/internal/parser"
)

// cacheGroup labels the response cache in Prometheus metrics
const cacheGroup = "tvmaze"

// Client defines the interface for querying the TVmaze API
type Client interface {
	// SearchShows returns the shows matching a free-text query, best match first.
	SearchShows(ctx context.Context, query string) ([]models.Show, error)
	// GetEpisodes returns every episode of a show in airing order.
	GetEpisodes(ctx context.Context, showID int) ([]models.Episode, error)
	// GetShow returns a single show by its TVmaze ID.
	GetShow(ctx context.Context, showID int) (*models.Show, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	userAgent     string
	showParser    *parser.ShowParser
	episodeParser parser.Parser[models.Episode]
	cache         cache.Cache
	retryPolicy   retrypolicy.RetryPolicy[[]byte]
}

// NewClient creates a new TVmaze client with proxy, cache and retry configuration.
// A cache backend that cannot be reached is replaced by the in-memory provider.
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	timeout := config.ParseDuration("client_timeout", cfg.ClientTimeout, 15*time.Second)

	// Clone DefaultTransport to keep its pooling, timeouts and HTTP/2 settings.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport),
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	baseURL := cfg.TVMazeBaseURL
	if baseURL == "" {
		baseURL = config.DefaultTVMazeBaseURL
	}

	return &client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		userAgent:     userAgent,
		showParser:    parser.NewShowParser(cfg.MissingImageURL),
		episodeParser: parser.NewEpisodeParser(),
		cache:         newResponseCache(cfg),
		retryPolicy:   newRetryPolicy(cfg),
	}
}

// newResponseCache builds the configured cache provider for raw response bodies.
func newResponseCache(cfg *config.Config) cache.Cache {
	logger := config.GetLogger()

	providerCfg := cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           config.ParseDuration("cache.ttl", cfg.Cache.TTL, 10*time.Minute),
		Logger:        cacheLogger{},
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		BoltPath:      cfg.Cache.Bolt.Path,
		Group:         cacheGroup,
	}
	if providerCfg.Size <= 0 {
		providerCfg.Size = 500
	}

	provider := cfg.Cache.Provider
	if provider == "" {
		provider = "memory"
	}

	c, err := cache.New(provider, providerCfg)
	if err == nil {
		logger.Debug().Str("provider", provider).Int("size", providerCfg.Size).Dur("ttl", providerCfg.TTL).Msg("Response cache ready")
		return c
	}

	logger.Warn().Err(err).Str("provider", provider).Msg("Cache provider unavailable, falling back to memory")
	c, err = cache.New("memory", providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create memory cache")
	}
	return c
}

// cacheLogger forwards cache backend errors to the application logger.
type cacheLogger struct{}

func (cacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.cache.Close()
}
