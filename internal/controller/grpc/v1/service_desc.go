package grpcv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "rbacpanel.analytics.v1.Analytics"

// AnalyticsServer exposes the log analyzer. Requests and responses are plain
// Structs carrying the same JSON documents as the HTTP API.
type AnalyticsServer interface {
	ListLogFiles(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFilteredLogs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPerformanceMetrics(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUserActivity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AnalyticsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func handler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AnalyticsServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(AnalyticsServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

var AnalyticsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyticsServer)(nil),
	Methods: []grpc.MethodDesc{
		handler("ListLogFiles", AnalyticsServer.ListLogFiles),
		handler("GetSummary", AnalyticsServer.GetSummary),
		handler("GetFilteredLogs", AnalyticsServer.GetFilteredLogs),
		handler("GetPerformanceMetrics", AnalyticsServer.GetPerformanceMetrics),
		handler("GetUserActivity", AnalyticsServer.GetUserActivity),
		handler("GetAlerts", AnalyticsServer.GetAlerts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rbacpanel/analytics/v1/analytics.proto",
}

func RegisterAnalyticsServer(s grpc.ServiceRegistrar, srv AnalyticsServer) {
	s.RegisterService(&AnalyticsServiceDesc, srv)
}
