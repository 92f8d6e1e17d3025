// Package apperrors tests verify the custom error types (ErrNotFound,
// ErrNetwork, ErrUnexpectedStatus), their Error() messages, Is() matching
// semantics and compatibility with errors.Is()/errors.As() through wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with string ID",
			err:      &ErrNotFound{Resource: "show", ID: "abc"},
			expected: "show with ID abc not found",
		},
		{
			name:     "with int ID",
			err:      NewShowNotFoundError(42),
			expected: "show with ID 42 not found",
		},
		{
			name:     "with nil ID",
			err:      NewNotFoundError("episodes", nil),
			expected: "episodes not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_IsThroughWrapping(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("get episodes: %w", NewShowNotFoundError(7))

	if !errors.Is(wrapped, &ErrNotFound{}) {
		t.Error("expected errors.Is to match wrapped *ErrNotFound")
	}
	if errors.Is(wrapped, &ErrNetwork{}) {
		t.Error("expected *ErrNotFound not to match *ErrNetwork")
	}

	var nf *ErrNotFound
	if !errors.As(wrapped, &nf) {
		t.Fatal("expected errors.As to extract *ErrNotFound")
	}
	if nf.ID != 7 {
		t.Errorf("ID = %v, want 7", nf.ID)
	}
}

// ---------------------------------------------------------------------------
// ErrNetwork
// ---------------------------------------------------------------------------

func TestErrNetwork(t *testing.T) {
	t.Parallel()
	err := &ErrNetwork{URL: "https://api.tvmaze.com/search/shows?q=x", Err: io.ErrUnexpectedEOF}

	want := "network error requesting https://api.tvmaze.com/search/shows?q=x: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected Unwrap to expose the transport error")
	}
	if !errors.Is(fmt.Errorf("search: %w", err), &ErrNetwork{}) {
		t.Error("expected errors.Is to match wrapped *ErrNetwork")
	}
}

// ---------------------------------------------------------------------------
// ErrUnexpectedStatus
// ---------------------------------------------------------------------------

func TestErrUnexpectedStatus_Retryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code int
		want bool
	}{
		{400, false},
		{403, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			t.Parallel()
			err := &ErrUnexpectedStatus{URL: "u", StatusCode: tt.code}
			if got := err.Retryable(); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrUnexpectedStatus_Error(t *testing.T) {
	t.Parallel()
	err := &ErrUnexpectedStatus{URL: "https://api.tvmaze.com/shows/1", StatusCode: 503}
	want := "unexpected status code 503 from https://api.tvmaze.com/shows/1"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, &ErrUnexpectedStatus{}) {
		t.Error("expected errors.Is to match *ErrUnexpectedStatus")
	}
}
