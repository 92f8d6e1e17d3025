package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/models"
	"github.com/Belphemur/ShowBrowser/internal/parser"
)

// SearchShows queries /search/shows with the normalised query and maps every result
// to a models.Show. An empty query is forwarded as-is.
func (c *client) SearchShows(ctx context.Context, query string) ([]models.Show, error) {
	logger := config.GetLogger()
	term := parser.NormalizeQuery(query)
	logger.Info().Str("query", term).Msg("Searching TVmaze shows")

	endpoint, err := c.buildURL(url.Values{"q": {term}}, "search", "shows")
	if err != nil {
		return nil, err
	}

	var shows []models.Show
	err = c.fetch(ctx, "search", endpoint, "search:"+parser.QueryKey(query), func(body []byte) error {
		parsed, err := c.showParser.Parse(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to parse search results: %w", err)
		}
		shows = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search shows: %w", err)
	}

	logger.Info().Str("query", term).Int("shows", len(shows)).Msg("Search completed")
	return shows, nil
}

// GetShow fetches /shows/{id}.
func (c *client) GetShow(ctx context.Context, showID int) (*models.Show, error) {
	id := strconv.Itoa(showID)
	endpoint, err := c.buildURL(nil, "shows", id)
	if err != nil {
		return nil, err
	}

	var show models.Show
	err = c.fetch(ctx, "show", endpoint, "show:"+id, func(body []byte) error {
		parsed, err := c.showParser.ParseOne(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to parse show %d: %w", showID, err)
		}
		show = parsed
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewShowNotFoundError(showID)
		}
		return nil, fmt.Errorf("failed to get show %d: %w", showID, err)
	}
	return &show, nil
}

// buildURL joins path segments onto the configured base URL and attaches query.
func (c *client) buildURL(query url.Values, segments ...string) (string, error) {
	endpoint, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if len(query) == 0 {
		return endpoint, nil
	}
	return endpoint + "?" + query.Encode(), nil
}

func isNotFound(err error) bool {
	var statusErr *apperrors.ErrUnexpectedStatus
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
