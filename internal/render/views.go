package render

import (
	"net/url"
	"strconv"

	"github.com/Belphemur/ShowBrowser/internal/models"
)

// DefaultEpisodesTitle heads the episodes modal when the show name is unknown.
const DefaultEpisodesTitle = "Episodes"

// PageData is everything the full page shows at once.
type PageData struct {
	Query        string
	Error        string
	ShowsView    ShowsView
	EpisodesView EpisodesView
}

// ShowsView feeds the shows container. Query is carried into each card's Episodes link.
type ShowsView struct {
	Query string
	Shows []models.Show
}

// EpisodesView feeds the episodes modal. The zero value is a hidden, empty modal.
type EpisodesView struct {
	Visible  bool
	ShowID   int
	Title    string
	Episodes []models.Episode
	CloseURL string
}

// NewEpisodesView builds a visible modal for a show's episodes. An empty title falls back to DefaultEpisodesTitle.
func NewEpisodesView(query string, showID int, title string, episodes []models.Episode) EpisodesView {
	if title == "" {
		title = DefaultEpisodesTitle
	}
	return EpisodesView{
		Visible:  true,
		ShowID:   showID,
		Title:    title,
		Episodes: episodes,
		CloseURL: SearchURL(query),
	}
}

// HiddenEpisodesView is the closed modal whose close control still points back at the search page.
func HiddenEpisodesView(query string) EpisodesView {
	return EpisodesView{Title: DefaultEpisodesTitle, CloseURL: SearchURL(query)}
}

// SearchURL links to the results page for query with the episodes modal closed.
func SearchURL(query string) string {
	if query == "" {
		return "/search"
	}
	return "/search?" + url.Values{"q": {query}}.Encode()
}

// EpisodesURL links to the results page for query with the episodes of showID open.
func EpisodesURL(query string, showID int) string {
	return "/search?" + url.Values{"q": {query}, "show": {strconv.Itoa(showID)}}.Encode()
}
