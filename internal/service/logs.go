package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeRangeHours = 24
	defaultMaxEntries     = 500
	defaultConcurrency    = 4

	summaryMaxLines  = 5000
	filteredMaxLines = 2000

	recentErrorsLimit    = 20
	slowRequestThreshold = 1.0
)

type fileRef struct {
	category domain.Category
	name     string
}

// LogService answers dashboard queries by scanning log files on every call.
// It keeps no state between calls, so callers may cancel or time out freely.
type LogService struct {
	files       repo.LogFiles
	loc         *time.Location
	now         func() time.Time
	concurrency int
}

type LogServiceOption func(*LogService)

func WithLocation(loc *time.Location) LogServiceOption {
	return func(s *LogService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) LogServiceOption {
	return func(s *LogService) {
		s.now = now
	}
}

func WithConcurrency(n int) LogServiceOption {
	return func(s *LogService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewLogService(files repo.LogFiles, opts ...LogServiceOption) *LogService {
	s := &LogService{
		files:       files,
		loc:         time.Local,
		now:         time.Now,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LogService) ListFiles(ctx context.Context) map[domain.Category][]string {
	return s.files.ListFiles(ctx)
}

func (s *LogService) window(hours int) window {
	if hours <= 0 {
		hours = defaultTimeRangeHours
	}
	return newWindow(s.now(), hours, s.loc)
}

func (s *LogService) allFiles(ctx context.Context, only string) []fileRef {
	available := s.files.ListFiles(ctx)
	refs := []fileRef{}
	for _, c := range domain.Categories {
		if only != "" && !strings.EqualFold(only, string(c)) {
			continue
		}
		for _, name := range available[c] {
			refs = append(refs, fileRef{category: c, name: name})
		}
	}
	return refs
}

// readFiles reads refs concurrently and returns their entries in refs order.
// A file that fails to read contributes nothing; only cancellation is returned.
func (s *LogService) readFiles(ctx context.Context, refs []fileRef, maxLines int) ([]domain.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([][]domain.LogEntry, len(refs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			entries, err := s.files.ReadFile(ctx, ref.category, ref.name, maxLines)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.WithFields(log.Fields{
					"category": ref.category,
					"file":     ref.name,
					"error":    err,
				}).Warn("Failed to read log file")
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]domain.LogEntry, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

type timedError struct {
	domain.RecentError
	at time.Time
}

// Summary aggregates every discovered file over the last timeRangeHours hours.
func (s *LogService) Summary(ctx context.Context, timeRangeHours int) (domain.LogsSummary, error) {
	w := s.window(timeRangeHours)
	summary := domain.NewLogsSummary()

	entries, err := s.readFiles(ctx, s.allFiles(ctx, ""), summaryMaxLines)
	if err != nil {
		return summary, err
	}

	var (
		errs      []timedError
		durations []float64
	)

	for _, e := range entries {
		if e.Timestamp == "" {
			continue
		}
		at, ok := w.admit(e.Timestamp)
		if !ok {
			continue
		}

		summary.TotalEntries++
		summary.ByLevel[e.Level]++
		summary.ByCategory[e.Category]++
		summary.ByHour[w.hourKey(at)]++

		if domain.IsErrorLevel(e.Level) {
			errs = append(errs, timedError{
				RecentError: domain.RecentError{
					Timestamp: e.Timestamp,
					Message:   e.Message,
					Logger:    e.Logger,
					Category:  e.Category,
				},
				at: at,
			})
		}

		if e.Endpoint != "" {
			summary.TopEndpoints[e.Endpoint]++
		}
		if e.Username != "" && e.Username != "null" {
			summary.TopUsers[e.Username]++
		}

		if e.Duration != nil {
			durations = append(durations, *e.Duration)
			summary.PerformanceStats.TotalRequests++
			if *e.Duration > slowRequestThreshold {
				summary.PerformanceStats.SlowRequests++
			}
		}
	}

	summary.PerformanceStats.AvgResponseTime = mean(durations)

	// The newest errors in scan order are kept first, then ordered by time.
	if len(errs) > recentErrorsLimit {
		errs = errs[len(errs)-recentErrorsLimit:]
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].at.After(errs[j].at)
	})
	for _, e := range errs {
		summary.RecentErrors = append(summary.RecentErrors, e.RecentError)
	}

	return summary, nil
}

// FilteredLogs lists entries matching every predicate of f, newest first.
func (s *LogService) FilteredLogs(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error) {
	w := s.window(f.TimeRangeHours)

	var refs []fileRef
	if f.Category != "" && f.LogFile != "" {
		c, _ := domain.ParseCategory(f.Category)
		refs = []fileRef{{category: c, name: f.LogFile}}
	} else {
		refs = s.allFiles(ctx, f.Category)
	}

	entries, err := s.readFiles(ctx, refs, filteredMaxLines)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(f.SearchTerm)
	out := []domain.LogEntry{}

	for _, e := range entries {
		if carriesTimestamp(e) {
			if _, ok := w.admit(e.Timestamp); !ok {
				continue
			}
		}
		if f.Level != "" && !strings.EqualFold(e.Level, f.Level) {
			continue
		}
		if f.Username != "" && e.Username != f.Username {
			continue
		}
		if search != "" {
			text := strings.ToLower(strings.Join([]string{e.Message, e.Endpoint, e.Action, e.Logger}, " "))
			if !strings.Contains(text, search) {
				continue
			}
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})

	limit := f.MaxEntries
	if limit <= 0 {
		limit = defaultMaxEntries
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// carriesTimestamp reports whether the line declared a timestamp at all. A structured
// line with an empty or null "timestamp" key still counts and then fails to parse.
func carriesTimestamp(e domain.LogEntry) bool {
	if e.Fields != nil {
		_, ok := e.Fields["timestamp"]
		return ok
	}
	return e.Timestamp != ""
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
