package testutil

import (
	"encoding/json"
	"strconv"
)

// StrPtr is a helper for creating *string values in tests
func StrPtr(v string) *string {
	return &v
}

// ShowOptions describes one show as TVmaze returns it.
type ShowOptions struct {
	ID      int
	Name    string
	Summary *string // nil renders "summary": null
	// MediumImage and OriginalImage fill the image object. Leaving both empty renders "image": null;
	// setting only OriginalImage renders an image object without a medium URL.
	MediumImage   string
	OriginalImage string
	Score         float64
}

// EpisodeOptions describes one episode as TVmaze returns it.
type EpisodeOptions struct {
	ID     int
	Name   string
	Season int
	Number int
}

func showPayload(opts ShowOptions) map[string]any {
	show := map[string]any{
		"id":       opts.ID,
		"url":      "https://www.tvmaze.com/shows/" + strconv.Itoa(opts.ID),
		"name":     opts.Name,
		"type":     "Scripted",
		"language": "English",
		"summary":  opts.Summary,
		"image":    nil,
	}
	if opts.MediumImage != "" || opts.OriginalImage != "" {
		image := map[string]any{}
		if opts.MediumImage != "" {
			image["medium"] = opts.MediumImage
		}
		if opts.OriginalImage != "" {
			image["original"] = opts.OriginalImage
		}
		show["image"] = image
	}
	return show
}

// GenerateSearchResultsJSON builds a /search/shows response body for the given shows.
func GenerateSearchResultsJSON(shows []ShowOptions) string {
	results := make([]map[string]any, 0, len(shows))
	for _, opts := range shows {
		results = append(results, map[string]any{
			"score": opts.Score,
			"show":  showPayload(opts),
		})
	}
	return mustMarshal(results)
}

// GenerateShowJSON builds a /shows/{id} response body.
func GenerateShowJSON(opts ShowOptions) string {
	return mustMarshal(showPayload(opts))
}

// GenerateEpisodesJSON builds a /shows/{id}/episodes response body.
func GenerateEpisodesJSON(episodes []EpisodeOptions) string {
	payload := make([]map[string]any, 0, len(episodes))
	for _, ep := range episodes {
		payload = append(payload, map[string]any{
			"id":      ep.ID,
			"name":    ep.Name,
			"season":  ep.Season,
			"number":  ep.Number,
			"type":    "regular",
			"runtime": 60,
		})
	}
	return mustMarshal(payload)
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
