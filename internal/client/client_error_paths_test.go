package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
)

func TestClient_RetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(episodesResponse))
	}))
	defer server.Close()

	episodes, err := newTestClient(t, server.URL).GetEpisodes(context.Background(), 82)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if len(episodes) != 3 {
		t.Errorf("Expected 3 episodes, got %d", len(episodes))
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).SearchShows(context.Background(), "girls")
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}

	var statusErr *apperrors.ErrUnexpectedStatus
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected ErrUnexpectedStatus 500, got %v", err)
	}
	// One attempt plus MaxRetries (2) retries.
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).SearchShows(context.Background(), "girls")
	if !errors.Is(err, &apperrors.ErrUnexpectedStatus{}) {
		t.Fatalf("Expected ErrUnexpectedStatus, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected a single attempt for 400, got %d", n)
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).SearchShows(context.Background(), "girls")
	if !errors.Is(err, &apperrors.ErrNetwork{}) {
		t.Fatalf("Expected ErrNetwork, got %v", err)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"show": {"id": "not-a-number"}}]`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).SearchShows(context.Background(), "girls")
	if err == nil {
		t.Fatal("Expected decode error for malformed response")
	}
	if errors.Is(err, &apperrors.ErrNetwork{}) {
		t.Errorf("Decode failures should not be reported as network errors: %v", err)
	}
}

func TestClient_FailedResponsesAreNotCached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := c.SearchShows(context.Background(), "girls"); err == nil {
		t.Fatal("Expected first search to fail")
	}
	shows, err := c.SearchShows(context.Background(), "girls")
	if err != nil {
		t.Fatalf("Expected second search to reach the server, got %v", err)
	}
	if len(shows) != 2 {
		t.Errorf("Expected 2 shows, got %d", len(shows))
	}
}

func TestClient_MalformedResponsesAreNotCached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			_, _ = w.Write([]byte(`[{"show":`))
			return
		}
		_, _ = w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := c.SearchShows(context.Background(), "girls"); err == nil {
		t.Fatal("Expected truncated body to fail decoding")
	}
	shows, err := c.SearchShows(context.Background(), "girls")
	if err != nil {
		t.Fatalf("Expected second search to reach the server, got %v", err)
	}
	if len(shows) != 2 {
		t.Errorf("Expected 2 shows, got %d", len(shows))
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("Expected 2 upstream hits, got %d", got)
	}

	// The valid body is cached once accepted.
	if _, err := c.SearchShows(context.Background(), "girls"); err != nil {
		t.Fatalf("Third search failed: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("Expected third search to be served from cache, got %d hits", got)
	}
}

func TestClient_MalformedEpisodesAreNotCached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			_, _ = w.Write([]byte(`[{"id": "x"}]`))
			return
		}
		_, _ = w.Write([]byte(episodesResponse))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := c.GetEpisodes(context.Background(), 82); err == nil {
		t.Fatal("Expected malformed episodes to fail decoding")
	}
	episodes, err := c.GetEpisodes(context.Background(), 82)
	if err != nil {
		t.Fatalf("Expected second lookup to reach the server, got %v", err)
	}
	if len(episodes) == 0 {
		t.Error("Expected episodes from the second response")
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("Expected 2 upstream hits, got %d", got)
	}
}
