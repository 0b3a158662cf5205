package service

import (
	"context"
	"sort"

	"github.com/Egor213/RBACPanel/internal/domain"
)

const (
	accessLogFile       = "api/access.log"
	performanceMaxLines = 5000

	slowEndpointThreshold = 2.0
	slowRequestsLimit     = 50
)

// PerformanceMetrics aggregates the backend API access log over the last timeRangeHours hours.
func (s *LogService) PerformanceMetrics(ctx context.Context, timeRangeHours int) (domain.PerformanceMetrics, error) {
	w := s.window(timeRangeHours)
	metrics := domain.NewPerformanceMetrics()

	entries, err := s.readFiles(ctx, []fileRef{{category: domain.CategoryBackend, name: accessLogFile}}, performanceMaxLines)
	if err != nil {
		return metrics, err
	}

	durations := map[string][]float64{}
	slow := []domain.SlowRequest{}

	for _, e := range entries {
		if e.Timestamp == "" {
			continue
		}
		at, ok := w.admit(e.Timestamp)
		if !ok {
			continue
		}

		endpoint := e.Endpoint
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := entryStatus(e)

		metrics.RequestCountByEndpoint[endpoint]++
		metrics.StatusCodes[status]++

		if e.Duration != nil && *e.Duration > 0 {
			durations[endpoint] = append(durations[endpoint], *e.Duration)
			if *e.Duration > slowEndpointThreshold {
				slow = append(slow, domain.SlowRequest{
					Endpoint:   endpoint,
					Duration:   *e.Duration,
					Timestamp:  e.Timestamp,
					StatusCode: status,
				})
			}
		}

		hour := w.hourKey(at)
		rate := metrics.ErrorRateByHour[hour]
		rate.Total++
		if status >= 400 {
			rate.Errors++
			if e.Message != "" {
				metrics.TopErrorMessages[e.Message]++
			}
		}
		metrics.ErrorRateByHour[hour] = rate
	}

	for endpoint, values := range durations {
		metrics.AvgResponseTimeByEndpoint[endpoint] = mean(values)
	}

	if len(slow) > slowRequestsLimit {
		slow = slow[len(slow)-slowRequestsLimit:]
	}
	sort.SliceStable(slow, func(i, j int) bool {
		return slow[i].Duration > slow[j].Duration
	})
	metrics.SlowRequests = slow

	return metrics, nil
}

func entryStatus(e domain.LogEntry) int {
	switch {
	case e.StatusCode != nil:
		return *e.StatusCode
	case e.ResponseStatus != nil:
		return *e.ResponseStatus
	default:
		return 0
	}
}
