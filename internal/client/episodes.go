package client

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/models"
)

// GetEpisodes fetches /shows/{id}/episodes. A show TVmaze does not know yields an ErrNotFound.
func (c *client) GetEpisodes(ctx context.Context, showID int) ([]models.Episode, error) {
	logger := config.GetLogger()
	logger.Info().Int("show_id", showID).Msg("Fetching episodes for show")

	id := strconv.Itoa(showID)
	endpoint, err := c.buildURL(nil, "shows", id, "episodes")
	if err != nil {
		return nil, err
	}

	var episodes []models.Episode
	err = c.fetch(ctx, "episodes", endpoint, "episodes:"+id, func(body []byte) error {
		parsed, err := c.episodeParser.Parse(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to parse episodes for show %d: %w", showID, err)
		}
		episodes = parsed
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewShowNotFoundError(showID)
		}
		return nil, fmt.Errorf("failed to get episodes for show %d: %w", showID, err)
	}

	logger.Info().Int("show_id", showID).Int("episodes", len(episodes)).Msg("Fetched episodes")
	return episodes, nil
}
