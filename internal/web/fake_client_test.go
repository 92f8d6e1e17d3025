package web

import (
	"context"
	"sync"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
	"github.com/Belphemur/ShowBrowser/internal/models"
)

// fakeClient serves canned shows and episodes and records which show IDs were requested.
type fakeClient struct {
	mu          sync.Mutex
	shows       []models.Show
	episodes    map[int][]models.Episode
	searchErr   error
	episodesErr error
	showErr     error

	queries         []string
	episodeRequests []int
}

func (f *fakeClient) SearchShows(_ context.Context, query string) ([]models.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.shows, nil
}

func (f *fakeClient) GetEpisodes(_ context.Context, showID int) ([]models.Episode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.episodeRequests = append(f.episodeRequests, showID)
	if f.episodesErr != nil {
		return nil, f.episodesErr
	}
	episodes, ok := f.episodes[showID]
	if !ok {
		return nil, apperrors.NewShowNotFoundError(showID)
	}
	return episodes, nil
}

func (f *fakeClient) GetShow(_ context.Context, showID int) (*models.Show, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.showErr != nil {
		return nil, f.showErr
	}
	for i := range f.shows {
		if f.shows[i].ID == showID {
			show := f.shows[i]
			return &show, nil
		}
	}
	return nil, apperrors.NewShowNotFoundError(showID)
}

func (f *fakeClient) Close() error { return nil }

func newFakeClient() *fakeClient {
	summary := "<p>Four friends in <b>New York</b>.</p>"
	return &fakeClient{
		shows: []models.Show{
			{ID: 139, Name: "Girls", Summary: &summary, Image: "https://img/139.jpg"},
			{ID: 23542, Name: "Good Girls", Summary: nil, Image: "https://tinyurl.com/missing-tv"},
		},
		episodes: map[int][]models.Episode{
			139: {
				{ID: 1, Name: "Pilot", Season: 1, Number: 1},
				{ID: 2, Name: "Vagina Panic", Season: 1, Number: 2},
			},
			23542: {},
		},
	}
}
