package grpcv1

import (
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/service"
	"google.golang.org/grpc"
)

func RegisterServices(services *service.Services, counters *metrics.Counters) func(s *grpc.Server) {
	return func(s *grpc.Server) {
		RegisterAnalyticsServer(s, NewAnalyticsController(services.Logs, counters))
	}
}
