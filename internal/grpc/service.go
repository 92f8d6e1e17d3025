package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified name of the show service.
const ServiceName = "showbrowser.v1.ShowService"

const (
	searchShowsMethod = "/" + ServiceName + "/SearchShows"
	getEpisodesMethod = "/" + ServiceName + "/GetEpisodes"
	getShowMethod     = "/" + ServiceName + "/GetShow"
)

// ShowServiceServer is the server API for the show service. Messages are
// well-known protobuf types: shows and episodes travel as Structs.
type ShowServiceServer interface {
	// SearchShows returns a list of show structs matching the query.
	SearchShows(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	// GetEpisodes returns a list of episode structs for a show ID.
	GetEpisodes(context.Context, *wrapperspb.Int64Value) (*structpb.ListValue, error)
	// GetShow returns a single show struct.
	GetShow(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
}

// RegisterShowServiceServer registers srv on s.
func RegisterShowServiceServer(s grpc.ServiceRegistrar, srv ShowServiceServer) {
	s.RegisterService(&ShowServiceDesc, srv)
}

// ShowServiceDesc describes the show service for grpc.Server.RegisterService.
var ShowServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShowServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchShows", Handler: searchShowsHandler},
		{MethodName: "GetEpisodes", Handler: getEpisodesHandler},
		{MethodName: "GetShow", Handler: getShowHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "showbrowser/v1/show_service.proto",
}

func searchShowsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowServiceServer).SearchShows(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: searchShowsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowServiceServer).SearchShows(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getEpisodesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowServiceServer).GetEpisodes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getEpisodesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowServiceServer).GetEpisodes(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func getShowHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowServiceServer).GetShow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getShowMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowServiceServer).GetShow(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}
