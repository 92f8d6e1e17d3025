package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/ShowBrowser/internal/apperrors"
	"github.com/Belphemur/ShowBrowser/internal/client"
	"github.com/Belphemur/ShowBrowser/internal/models"
)

// remoteClient satisfies client.Client by calling a ShowService over gRPC.
type remoteClient struct {
	conn *grpc.ClientConn
}

// NewRemoteClient connects to the ShowService at target. The connection is plaintext.
func NewRemoteClient(target string, opts ...grpc.DialOption) (client.Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target, err)
	}
	return &remoteClient{conn: conn}, nil
}

func (r *remoteClient) SearchShows(ctx context.Context, query string) ([]models.Show, error) {
	out := new(structpb.ListValue)
	if err := r.conn.Invoke(ctx, searchShowsMethod, wrapperspb.String(query), out); err != nil {
		return nil, fromStatus(err)
	}
	return convertShowsFromList(out), nil
}

func (r *remoteClient) GetEpisodes(ctx context.Context, showID int) ([]models.Episode, error) {
	out := new(structpb.ListValue)
	if err := r.conn.Invoke(ctx, getEpisodesMethod, wrapperspb.Int64(int64(showID)), out); err != nil {
		return nil, fromStatus(err)
	}
	return convertEpisodesFromList(out), nil
}

func (r *remoteClient) GetShow(ctx context.Context, showID int) (*models.Show, error) {
	out := new(structpb.Struct)
	if err := r.conn.Invoke(ctx, getShowMethod, wrapperspb.Int64(int64(showID)), out); err != nil {
		return nil, fromStatus(err)
	}
	show := convertShowFromStruct(out)
	return &show, nil
}

func (r *remoteClient) Close() error {
	return r.conn.Close()
}

// fromStatus turns NotFound, DeadlineExceeded and Canceled statuses back into the
// errors a local client returns, so callers handle remote and local lookups the same way.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.DeadlineExceeded:
		return errors.Join(context.DeadlineExceeded, err)
	case codes.Canceled:
		return errors.Join(context.Canceled, err)
	case codes.NotFound:
	default:
		return err
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ResourceInfo); ok {
			return errors.Join(apperrors.NewNotFoundError("show", info.GetResourceName()), err)
		}
	}
	return errors.Join(apperrors.NewNotFoundError("show", nil), err)
}
