package grpcv1

import (
	"context"

	logginghelper "github.com/Egor213/RBACPanel/internal/controller/common/logging"
	"github.com/Egor213/RBACPanel/internal/controller/common/validators"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/service"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const transport = "grpc"

type AnalyticsController struct {
	logs      *service.LogService
	validator *validators.Validator
	counters  *metrics.Counters
}

func NewAnalyticsController(logs *service.LogService, counters *metrics.Counters) *AnalyticsController {
	return &AnalyticsController{
		logs:      logs,
		validator: validators.New(),
		counters:  counters,
	}
}

func (c *AnalyticsController) inc(method, result string) {
	if c.counters != nil && c.counters.GrpcRequests != nil {
		c.counters.GrpcRequests.Inc(method, result)
	}
}

func (c *AnalyticsController) query(method string, req *structpb.Struct) (validators.LogQuery, error) {
	c.inc(method, "received")
	q, err := LogQueryFromStruct(req)
	if err == nil {
		err = c.validator.Validate(q)
	}
	if err != nil {
		c.inc(method, "failed")
		logginghelper.LogError(transport, method, err)
		return q, status.Errorf(codes.InvalidArgument, "invalid argument: %s", err)
	}
	logginghelper.LogReceived(transport, method, log.Fields{"hours": q.Hours, "category": q.Category})
	return q, nil
}

func (c *AnalyticsController) reply(method, key string, v any, err error) (*structpb.Struct, error) {
	if err != nil {
		c.inc(method, "failed")
		logginghelper.LogError(transport, method, err)
		return nil, status.FromContextError(err).Err()
	}
	out, err := ToStruct(key, v)
	if err != nil {
		c.inc(method, "failed")
		logginghelper.LogError(transport, method, err)
		return nil, status.Error(codes.Internal, "cannot encode response")
	}
	c.inc(method, "ok")
	return out, nil
}

func (c *AnalyticsController) ListLogFiles(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	c.inc("ListLogFiles", "received")
	return c.reply("ListLogFiles", "files", c.logs.ListFiles(ctx), nil)
}

func (c *AnalyticsController) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q, err := c.query("GetSummary", req)
	if err != nil {
		return nil, err
	}
	summary, err := c.logs.Summary(ctx, q.Hours)
	return c.reply("GetSummary", "", summary, err)
}

func (c *AnalyticsController) GetFilteredLogs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q, err := c.query("GetFilteredLogs", req)
	if err != nil {
		return nil, err
	}
	entries, err := c.logs.FilteredLogs(ctx, q.Filter())
	return c.reply("GetFilteredLogs", "entries", entries, err)
}

func (c *AnalyticsController) GetPerformanceMetrics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q, err := c.query("GetPerformanceMetrics", req)
	if err != nil {
		return nil, err
	}
	perf, err := c.logs.PerformanceMetrics(ctx, q.Hours)
	return c.reply("GetPerformanceMetrics", "", perf, err)
}

func (c *AnalyticsController) GetUserActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q, err := c.query("GetUserActivity", req)
	if err != nil {
		return nil, err
	}
	stats, err := c.logs.UserActivity(ctx, q.Hours)
	return c.reply("GetUserActivity", "", stats, err)
}

func (c *AnalyticsController) GetAlerts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	c.inc("GetAlerts", "received")
	alerts, err := c.logs.RealTimeAlerts(ctx)
	return c.reply("GetAlerts", "alerts", alerts, err)
}
