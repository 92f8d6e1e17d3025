package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/metrics"
	"github.com/Belphemur/ShowBrowser/internal/parser"
)

// maxBodySize bounds how much of a TVmaze response is read into memory.
const maxBodySize = 16 << 20

// newRetryPolicy retries network failures, 429 and 5xx responses with exponential backoff.
func newRetryPolicy(cfg *config.Config) retrypolicy.RetryPolicy[[]byte] {
	maxRetries := cfg.Retry.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	delay := config.ParseDuration("retry.delay", cfg.Retry.Delay, 200*time.Millisecond)
	maxDelay := config.ParseDuration("retry.max_delay", cfg.Retry.MaxDelay, 2*time.Second)
	if maxDelay <= delay {
		maxDelay = delay * 2
	}

	return retrypolicy.NewBuilder[[]byte]().
		HandleIf(func(_ []byte, err error) bool {
			return isRetryable(err)
		}).
		WithBackoff(delay, maxDelay).
		WithMaxRetries(maxRetries).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[[]byte]) {
			logger := config.GetLogger()
			logger.Warn().Err(e.LastError()).Int("attempt", e.Attempts()).Msg("Retrying TVmaze request")
		}).
		Build()
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *apperrors.ErrUnexpectedStatus
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return errors.Is(err, &apperrors.ErrNetwork{})
}

// fetch GETs endpoint and hands the body to decode. A body is cached under cacheKey
// only once decode accepts it, so a truncated or malformed response is never replayed.
func (c *client) fetch(ctx context.Context, endpointLabel, endpoint, cacheKey string, decode func([]byte) error) error {
	logger := config.GetLogger()

	if body, ok := c.cache.Get(cacheKey); ok {
		logger.Debug().Str("key", cacheKey).Msg("Serving TVmaze response from cache")
		metrics.UpstreamRequestsTotal.WithLabelValues(endpointLabel, "cached").Inc()
		return decode(body)
	}

	start := time.Now()
	body, err := failsafe.With[[]byte](c.retryPolicy).WithContext(ctx).Get(func() ([]byte, error) {
		return c.fetchOnce(ctx, endpoint)
	})
	metrics.UpstreamRequestDuration.WithLabelValues(endpointLabel).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpointLabel, "error").Inc()
		return err
	}

	if err := decode(body); err != nil {
		logger.Warn().Err(err).Str("endpoint", endpoint).Int("bytes", len(body)).Msg("Discarding undecodable TVmaze response")
		metrics.UpstreamRequestsTotal.WithLabelValues(endpointLabel, "invalid").Inc()
		return err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpointLabel, "success").Inc()
	c.cache.Set(cacheKey, body)
	return nil
}

// fetchOnce performs a single HTTP GET and returns the UTF-8 response body.
func (c *client) fetchOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &apperrors.ErrNetwork{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &apperrors.ErrUnexpectedStatus{URL: endpoint, StatusCode: resp.StatusCode}
	}

	reader, err := parser.NewUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	body, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		return nil, &apperrors.ErrNetwork{URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
