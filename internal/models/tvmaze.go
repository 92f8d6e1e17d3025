package models

// TVMazeImage is the image object embedded in TVmaze show payloads
type TVMazeImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// TVMazeShow is the raw show payload of the TVmaze API
type TVMazeShow struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Summary *string      `json:"summary"`
	Image   *TVMazeImage `json:"image"` // null for shows without artwork
}

// TVMazeSearchResult is a single entry of the /search/shows response
type TVMazeSearchResult struct {
	Score float64    `json:"score"`
	Show  TVMazeShow `json:"show"`
}

// TVMazeEpisode is the raw episode payload of the /shows/{id}/episodes response
type TVMazeEpisode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}
