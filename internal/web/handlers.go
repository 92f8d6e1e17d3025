package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Belphemur/ShowBrowser/internal/models"
	"github.com/Belphemur/ShowBrowser/internal/render"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleIndex renders the empty search page.
func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, render.ViewPage, render.PageData{
		EpisodesView: render.HiddenEpisodesView(""),
	})
}

// handleSearch serves a search submission: the episodes modal starts hidden and the
// shows container is rebuilt from the fresh results. A "show" parameter then opens
// the modal for that show's episodes.
// GET /search?q=...&show=...
func (s *Server) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()
	query := c.QueryParam("q")

	data := render.PageData{
		Query:        query,
		ShowsView:    render.ShowsView{Query: query},
		EpisodesView: render.HiddenEpisodesView(query),
	}

	shows, err := s.client.SearchShows(ctx, query)
	if err != nil {
		return s.renderPageError(c, data, err)
	}
	data.ShowsView.Shows = shows

	rawID := c.QueryParam("show")
	if rawID == "" {
		return c.Render(http.StatusOK, render.ViewPage, data)
	}

	showID, err := parseShowID(rawID)
	if err != nil {
		data.Error = msgInvalidShowID
		return c.Render(http.StatusBadRequest, render.ViewPage, data)
	}
	view, err := s.episodesView(ctx, query, showID)
	if err != nil {
		return s.renderPageError(c, data, err)
	}
	data.EpisodesView = view
	return c.Render(http.StatusOK, render.ViewPage, data)
}

// handleShowsFragment returns only the rebuilt shows container.
// GET /shows?q=...
func (s *Server) handleShowsFragment(c echo.Context) error {
	query := c.QueryParam("q")
	shows, err := s.client.SearchShows(c.Request().Context(), query)
	if err != nil {
		return s.renderBannerError(c, err)
	}
	return c.Render(http.StatusOK, render.ViewShows, render.ShowsView{Query: query, Shows: shows})
}

// handleEpisodesFragment returns only the episodes modal, made visible.
// GET /shows/:id/episodes?q=...
func (s *Server) handleEpisodesFragment(c echo.Context) error {
	showID, err := parseShowID(c.Param("id"))
	if err != nil {
		return c.Render(http.StatusBadRequest, render.ViewBanner, msgInvalidShowID)
	}
	view, err := s.episodesView(c.Request().Context(), c.QueryParam("q"), showID)
	if err != nil {
		return s.renderBannerError(c, err)
	}
	return c.Render(http.StatusOK, render.ViewEpisodes, view)
}

// GET /api/shows?q=...
func (s *Server) handleAPIShows(c echo.Context) error {
	shows, err := s.client.SearchShows(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		reportError(c, err)
		status, msg := errorStatus(err)
		return echo.NewHTTPError(status, msg).SetInternal(err)
	}
	if shows == nil {
		shows = []models.Show{}
	}
	return c.JSON(http.StatusOK, shows)
}

// GET /api/shows/:id/episodes
func (s *Server) handleAPIEpisodes(c echo.Context) error {
	showID, err := parseShowID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidShowID)
	}
	episodes, err := s.client.GetEpisodes(c.Request().Context(), showID)
	if err != nil {
		reportError(c, err)
		status, msg := errorStatus(err)
		return echo.NewHTTPError(status, msg).SetInternal(err)
	}
	if episodes == nil {
		episodes = []models.Episode{}
	}
	return c.JSON(http.StatusOK, episodes)
}

// episodesView fetches the episodes of exactly showID. The show's name titles the
// modal; failing to look it up only costs the title.
func (s *Server) episodesView(ctx context.Context, query string, showID int) (render.EpisodesView, error) {
	episodes, err := s.client.GetEpisodes(ctx, showID)
	if err != nil {
		return render.EpisodesView{}, err
	}

	title := ""
	show, err := s.client.GetShow(ctx, showID)
	if err != nil {
		s.logger.Warn().Err(err).Int("show_id", showID).Msg("Could not load show name for episodes title")
	} else {
		title = show.Name
	}
	return render.NewEpisodesView(query, showID, title, episodes), nil
}

func (s *Server) renderPageError(c echo.Context, data render.PageData, err error) error {
	reportError(c, err)
	status, msg := errorStatus(err)
	s.logger.Error().Err(err).Str("query", data.Query).Int("status", status).Msg("Search page failed")
	data.Error = msg
	return c.Render(status, render.ViewPage, data)
}

func (s *Server) renderBannerError(c echo.Context, err error) error {
	reportError(c, err)
	status, msg := errorStatus(err)
	s.logger.Error().Err(err).Str("path", c.Request().URL.Path).Int("status", status).Msg("Fragment failed")
	return c.Render(status, render.ViewBanner, msg)
}

// parseShowID accepts positive decimal TVmaze IDs only.
func parseShowID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
