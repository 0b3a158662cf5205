package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Egor213/RBACPanel/internal/broker"
	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/repo"
	"github.com/Egor213/RBACPanel/internal/repo/repotypes"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	alertWindowHours = 1

	errorCountThreshold   = 10
	slowRequestsThreshold = 5
	failedLoginsThreshold = 5
	avgResponseThreshold  = 0.5
)

// RealTimeAlerts evaluates fixed thresholds over the last hour. The order of the returned
// alerts is errors, slow requests, failed logins, average latency.
func (s *LogService) RealTimeAlerts(ctx context.Context) ([]domain.Alert, error) {
	var (
		summary  domain.LogsSummary
		activity domain.UserActivityStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.Summary(gctx, alertWindowHours)
		return err
	})
	g.Go(func() (err error) {
		activity, err = s.UserActivity(gctx, alertWindowHours)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	alerts := []domain.Alert{}

	errorCount := summary.ByLevel[domain.LevelError] + summary.ByLevel[domain.LevelCritical]
	if errorCount > errorCountThreshold {
		alerts = append(alerts, domain.Alert{
			Level:     domain.AlertLevelHigh,
			Type:      domain.AlertTypeErrors,
			Message:   fmt.Sprintf("High number of errors in the last hour: %d", errorCount),
			Count:     errorCount,
			Timestamp: now,
		})
	}

	perf := summary.PerformanceStats
	if perf.SlowRequests > slowRequestsThreshold {
		alerts = append(alerts, domain.Alert{
			Level:     domain.AlertLevelMedium,
			Type:      domain.AlertTypePerformance,
			Message:   fmt.Sprintf("Detected %d slow requests in the last hour", perf.SlowRequests),
			Count:     perf.SlowRequests,
			Timestamp: now,
		})
	}

	if failed := activity.TotalFailedLogins(); failed > failedLoginsThreshold {
		alerts = append(alerts, domain.Alert{
			Level:     domain.AlertLevelHigh,
			Type:      domain.AlertTypeSecurity,
			Message:   fmt.Sprintf("Multiple failed login attempts: %d", failed),
			Count:     failed,
			Timestamp: now,
		})
	}

	if perf.AvgResponseTime > avgResponseThreshold {
		alerts = append(alerts, domain.Alert{
			Level:     domain.AlertLevelMedium,
			Type:      domain.AlertTypePerformance,
			Message:   fmt.Sprintf("High average response time: %.3fs", perf.AvgResponseTime),
			Value:     perf.AvgResponseTime,
			Timestamp: now,
		})
	}

	return alerts, nil
}

// AlertService persists and publishes alert snapshots. Both sinks are optional.
type AlertService struct {
	logs     *LogService
	history  repo.AlertHistory
	producer broker.Producer
	counters *metrics.Counters
}

func NewAlertService(logs *LogService, history repo.AlertHistory, producer broker.Producer, counters *metrics.Counters) *AlertService {
	return &AlertService{
		logs:     logs,
		history:  history,
		producer: producer,
		counters: counters,
	}
}

// Snapshot computes the current alerts and hands them to the configured sinks. Sink
// failures are joined into the returned error; the computed alerts are always returned.
func (s *AlertService) Snapshot(ctx context.Context) ([]domain.Alert, error) {
	alerts, err := s.logs.RealTimeAlerts(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range alerts {
		if s.counters != nil {
			s.counters.AlertsRaised.Inc(a.Type, string(a.Level))
		}
		log.WithFields(log.Fields{
			"type":  a.Type,
			"level": a.Level,
			"count": a.Count,
			"value": a.Value,
		}).Warn(a.Message)
	}

	if len(alerts) == 0 {
		return alerts, nil
	}

	var errs []error
	if s.history != nil {
		if err := s.history.SaveAlerts(ctx, alerts); err != nil {
			log.WithError(err).Error("Failed to save alerts")
			errs = append(errs, fmt.Errorf("%w: %w", ErrAlertsNotSaved, err))
		}
	}
	if s.producer != nil {
		if err := s.producer.PublishAlerts(ctx, alerts); err != nil {
			log.WithError(err).Error("Failed to publish alerts")
			errs = append(errs, fmt.Errorf("%w: %w", ErrAlertsNotPublished, err))
		}
	}

	return alerts, errors.Join(errs...)
}

func (s *AlertService) History(ctx context.Context, filter repotypes.AlertFilter) ([]domain.Alert, error) {
	if s.history == nil {
		return nil, ErrAlertHistoryDisabled
	}
	alerts, err := s.history.ListAlerts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
