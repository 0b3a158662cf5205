package pgdb

import (
	"context"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"
	"github.com/Egor213/RBACPanel/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type AlertRepo struct {
	*postgres.Postgres
}

func NewAlertRepo(pg *postgres.Postgres) *AlertRepo {
	return &AlertRepo{pg}
}

// SaveAlerts inserts a batch of alerts in one transaction.
func (r *AlertRepo) SaveAlerts(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	return r.TrManager.Do(ctx, func(ctx context.Context) error {
		for _, a := range alerts {
			sql, args, err := r.Builder.
				Insert("alerts").
				Columns("level", "type", "message", "count", "value", "created_at").
				Values(string(a.Level), a.Type, a.Message, a.Count, a.Value, a.Timestamp).
				ToSql()
			if err != nil {
				return errorsUtils.WrapPathErr(err)
			}

			if _, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...); err != nil {
				return errorsUtils.WrapPathErr(err)
			}
		}
		return nil
	})
}

func (r *AlertRepo) ListAlerts(ctx context.Context, filter repotypes.AlertFilter) ([]domain.Alert, error) {
	conds, limit := BuildAlertQueryFilters(filter)

	query := r.Builder.
		Select("id", "level", "type", "message", "count", "value", "created_at").
		From("alerts").
		OrderBy("created_at DESC").
		Limit(limit)

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	alerts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Alert])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return alerts, nil
}
