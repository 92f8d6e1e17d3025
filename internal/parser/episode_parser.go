package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/ShowBrowser/internal/models"
)

// EpisodeParser maps TVmaze episode payloads into models.Episode
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode parser instance
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// Parse decodes a /shows/{id}/episodes response, copying id, name, season and number.
func (p *EpisodeParser) Parse(body io.Reader) ([]models.Episode, error) {
	var raw []models.TVMazeEpisode
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode episodes: %w", err)
	}

	episodes := make([]models.Episode, len(raw))
	for i, e := range raw {
		episodes[i] = models.Episode{
			ID:     e.ID,
			Name:   e.Name,
			Season: e.Season,
			Number: e.Number,
		}
	}
	return episodes, nil
}
