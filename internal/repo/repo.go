package repo

import (
	"context"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo/logfs"
	"github.com/Egor213/RBACPanel/internal/repo/pgdb"
	"github.com/Egor213/RBACPanel/internal/repo/repotypes"
	"github.com/Egor213/RBACPanel/pkg/postgres"
)

type LogFiles interface {
	ListFiles(ctx context.Context) map[domain.Category][]string
	ReadFile(ctx context.Context, category domain.Category, name string, maxLines int) ([]domain.LogEntry, error)
}

type AlertHistory interface {
	SaveAlerts(ctx context.Context, alerts []domain.Alert) error
	ListAlerts(ctx context.Context, filter repotypes.AlertFilter) ([]domain.Alert, error)
}

type Repositories struct {
	LogFiles
	AlertHistory
}

// NewRepositories wires the file-backed log repo; alert history stays nil without Postgres.
func NewRepositories(logsRoot string, pg *postgres.Postgres) *Repositories {
	r := &Repositories{
		LogFiles: logfs.NewFileRepo(logsRoot),
	}
	if pg != nil {
		r.AlertHistory = pgdb.NewAlertRepo(pg)
	}
	return r
}
