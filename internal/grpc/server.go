package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
	"github.com/Belphemur/ShowBrowser/internal/client"
	"github.com/Belphemur/ShowBrowser/internal/config"
)

// server implements the ShowServiceServer interface
type server struct {
	client client.Client
	logger zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(c client.Client) ShowServiceServer {
	return &server{
		client: c,
		logger: config.GetLogger(),
	}
}

// SearchShows implements ShowServiceServer.SearchShows
func (s *server) SearchShows(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	query := req.GetValue()
	s.logger.Debug().Str("query", query).Msg("SearchShows called")

	shows, err := s.client.SearchShows(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Failed to search shows")
		return nil, toStatus(err, "failed to search shows")
	}

	s.logger.Debug().Str("query", query).Int("count", len(shows)).Msg("SearchShows completed")
	return convertShowsToList(shows), nil
}

// GetEpisodes implements ShowServiceServer.GetEpisodes
func (s *server) GetEpisodes(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.ListValue, error) {
	showID := req.GetValue()
	if showID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "show id must be positive, got %d", showID)
	}
	s.logger.Debug().Int64("show_id", showID).Msg("GetEpisodes called")

	episodes, err := s.client.GetEpisodes(ctx, int(showID))
	if err != nil {
		s.logger.Error().Err(err).Int64("show_id", showID).Msg("Failed to get episodes")
		return nil, toStatus(err, "failed to get episodes")
	}

	s.logger.Debug().Int64("show_id", showID).Int("count", len(episodes)).Msg("GetEpisodes completed")
	return convertEpisodesToList(episodes), nil
}

// GetShow implements ShowServiceServer.GetShow
func (s *server) GetShow(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	showID := req.GetValue()
	if showID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "show id must be positive, got %d", showID)
	}

	show, err := s.client.GetShow(ctx, int(showID))
	if err != nil {
		s.logger.Error().Err(err).Int64("show_id", showID).Msg("Failed to get show")
		return nil, toStatus(err, "failed to get show")
	}
	return convertShowToStruct(*show), nil
}

// toStatus maps client errors onto gRPC codes. Unknown shows carry a ResourceInfo detail.
func toStatus(err error, msg string) error {
	var notFound *apperrors.ErrNotFound
	switch {
	case errors.As(err, &notFound):
		st := status.New(codes.NotFound, fmt.Sprintf("%s: %v", msg, err))
		detailed, derr := st.WithDetails(&errdetails.ResourceInfo{
			ResourceType: "showbrowser.v1." + notFound.Resource,
			ResourceName: fmt.Sprint(notFound.ID),
			Description:  notFound.Error(),
		})
		if derr == nil {
			st = detailed
		}
		return st.Err()
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s: %v", msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s: %v", msg, err)
	default:
		return status.Errorf(codes.Unavailable, "%s: %v", msg, err)
	}
}
