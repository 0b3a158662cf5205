package pgdb

import (
	"github.com/Egor213/RBACPanel/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
)

const defaultAlertLimit = uint64(100)

func BuildAlertQueryFilters(filter repotypes.AlertFilter) ([]sq.Sqlizer, uint64) {
	conds := []sq.Sqlizer{}

	if filter.Type != "" {
		conds = append(conds, sq.Eq{"type": filter.Type})
	}
	if filter.Level != "" {
		conds = append(conds, sq.Eq{"level": filter.Level})
	}
	if !filter.From.IsZero() {
		conds = append(conds, sq.GtOrEq{"created_at": filter.From})
	}
	if !filter.To.IsZero() {
		conds = append(conds, sq.LtOrEq{"created_at": filter.To})
	}

	limit := defaultAlertLimit
	if filter.Limit > 0 {
		limit = uint64(filter.Limit)
	}

	return conds, limit
}
