package models

// Show represents a TV show in the shape the views render
type Show struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Summary *string `json:"summary"` // HTML as returned by TVmaze, nil when the API has none
	Image   string  `json:"image"`   // Medium-resolution image URL or the missing-image placeholder
}

// HasSummary reports whether the API supplied a summary for the show
func (s Show) HasSummary() bool {
	return s.Summary != nil
}
