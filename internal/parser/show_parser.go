package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/models"
)

var (
	_ Parser[models.Show]             = (*ShowParser)(nil)
	_ SingleResultParser[models.Show] = (*ShowParser)(nil)
)

// ShowParser maps TVmaze show payloads into models.Show
type ShowParser struct {
	missingImageURL string
}

// NewShowParser creates a show parser that substitutes missingImageURL for absent artwork
func NewShowParser(missingImageURL string) *ShowParser {
	if missingImageURL == "" {
		missingImageURL = config.DefaultMissingImageURL
	}
	return &ShowParser{missingImageURL: missingImageURL}
}

// Parse decodes a /search/shows response. Each result's nested show becomes one models.Show,
// in the order TVmaze ranked them.
func (p *ShowParser) Parse(body io.Reader) ([]models.Show, error) {
	logger := config.GetLogger()

	var results []models.TVMazeSearchResult
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	shows := make([]models.Show, 0, len(results))
	for _, result := range results {
		shows = append(shows, p.convert(result.Show))
	}

	logger.Debug().Int("shows", len(shows)).Msg("Parsed search results")
	return shows, nil
}

// ParseOne decodes a /shows/{id} response
func (p *ShowParser) ParseOne(body io.Reader) (models.Show, error) {
	var raw models.TVMazeShow
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return models.Show{}, fmt.Errorf("failed to decode show: %w", err)
	}
	return p.convert(raw), nil
}

// convert keeps the summary as-is (nil included) and falls back to the
// placeholder image when TVmaze has no medium-resolution artwork.
func (p *ShowParser) convert(raw models.TVMazeShow) models.Show {
	image := p.missingImageURL
	if raw.Image != nil && raw.Image.Medium != "" {
		image = raw.Image.Medium
	}
	return models.Show{
		ID:      raw.ID,
		Name:    raw.Name,
		Summary: raw.Summary,
		Image:   image,
	}
}
