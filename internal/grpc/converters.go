package grpc

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/ShowBrowser/internal/models"
)

// convertShowToStruct converts a models.Show to a Struct with id, name, summary and image fields.
// A missing summary becomes a null value.
func convertShowToStruct(show models.Show) *structpb.Struct {
	summary := structpb.NewNullValue()
	if show.Summary != nil {
		summary = structpb.NewStringValue(*show.Summary)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":      structpb.NewNumberValue(float64(show.ID)),
		"name":    structpb.NewStringValue(show.Name),
		"summary": summary,
		"image":   structpb.NewStringValue(show.Image),
	}}
}

// convertShowFromStruct converts a show Struct back to a models.Show
func convertShowFromStruct(s *structpb.Struct) models.Show {
	fields := s.GetFields()
	show := models.Show{
		ID:    int(fields["id"].GetNumberValue()),
		Name:  fields["name"].GetStringValue(),
		Image: fields["image"].GetStringValue(),
	}
	if v, ok := fields["summary"].GetKind().(*structpb.Value_StringValue); ok {
		summary := v.StringValue
		show.Summary = &summary
	}
	return show
}

// convertEpisodeToStruct converts a models.Episode to a Struct
func convertEpisodeToStruct(episode models.Episode) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":     structpb.NewNumberValue(float64(episode.ID)),
		"name":   structpb.NewStringValue(episode.Name),
		"season": structpb.NewNumberValue(float64(episode.Season)),
		"number": structpb.NewNumberValue(float64(episode.Number)),
	}}
}

// convertEpisodeFromStruct converts an episode Struct back to a models.Episode
func convertEpisodeFromStruct(s *structpb.Struct) models.Episode {
	fields := s.GetFields()
	return models.Episode{
		ID:     int(fields["id"].GetNumberValue()),
		Name:   fields["name"].GetStringValue(),
		Season: int(fields["season"].GetNumberValue()),
		Number: int(fields["number"].GetNumberValue()),
	}
}

func convertShowsToList(shows []models.Show) *structpb.ListValue {
	values := make([]*structpb.Value, len(shows))
	for i, show := range shows {
		values[i] = structpb.NewStructValue(convertShowToStruct(show))
	}
	return &structpb.ListValue{Values: values}
}

func convertShowsFromList(list *structpb.ListValue) []models.Show {
	shows := make([]models.Show, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		shows = append(shows, convertShowFromStruct(v.GetStructValue()))
	}
	return shows
}

func convertEpisodesToList(episodes []models.Episode) *structpb.ListValue {
	values := make([]*structpb.Value, len(episodes))
	for i, episode := range episodes {
		values[i] = structpb.NewStructValue(convertEpisodeToStruct(episode))
	}
	return &structpb.ListValue{Values: values}
}

func convertEpisodesFromList(list *structpb.ListValue) []models.Episode {
	episodes := make([]models.Episode, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		episodes = append(episodes, convertEpisodeFromStruct(v.GetStructValue()))
	}
	return episodes
}
