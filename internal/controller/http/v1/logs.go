package httpv1

import (
	"errors"
	"net/http"
	"time"

	logginghelper "github.com/Egor213/RBACPanel/internal/controller/common/logging"
	"github.com/Egor213/RBACPanel/internal/controller/common/validators"
	"github.com/Egor213/RBACPanel/internal/repo/repotypes"
	"github.com/Egor213/RBACPanel/internal/service"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func (c *controller) bindLogQuery(ctx echo.Context) (validators.LogQuery, error) {
	var q validators.LogQuery
	if err := bindAndValidate(ctx, &q); err != nil {
		return q, err
	}
	logginghelper.LogReceived(transport, ctx.Path(), log.Fields{"hours": q.Hours, "category": q.Category})
	return q, nil
}

// analyzerError reports a query that could not finish, which only happens on cancellation.
func analyzerError(ctx echo.Context, err error) error {
	logginghelper.LogError(transport, ctx.Path(), err)
	return errorResponse(ctx, http.StatusServiceUnavailable, "log query interrupted")
}

func (c *controller) logFiles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.logs.ListFiles(ctx.Request().Context()))
}

func (c *controller) summary(ctx echo.Context) error {
	q, err := c.bindLogQuery(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	summary, err := c.logs.Summary(ctx.Request().Context(), q.Hours)
	if err != nil {
		return analyzerError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (c *controller) filteredLogs(ctx echo.Context) error {
	q, err := c.bindLogQuery(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	entries, err := c.logs.FilteredLogs(ctx.Request().Context(), q.Filter())
	if err != nil {
		return analyzerError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": entries,
	})
}

func (c *controller) performance(ctx echo.Context) error {
	q, err := c.bindLogQuery(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	metrics, err := c.logs.PerformanceMetrics(ctx.Request().Context(), q.Hours)
	if err != nil {
		return analyzerError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, metrics)
}

func (c *controller) activityStats(ctx echo.Context) error {
	q, err := c.bindLogQuery(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	stats, err := c.logs.UserActivity(ctx.Request().Context(), q.Hours)
	if err != nil {
		return analyzerError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (c *controller) realTimeAlerts(ctx echo.Context) error {
	alerts, err := c.logs.RealTimeAlerts(ctx.Request().Context())
	if err != nil {
		return analyzerError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]any{"alerts": alerts})
}

func (c *controller) alertSnapshot(ctx echo.Context) error {
	alerts, err := c.alerts.Snapshot(ctx.Request().Context())
	if alerts == nil && err != nil {
		return analyzerError(ctx, err)
	}

	resp := map[string]any{"alerts": alerts}
	if err != nil {
		resp["warning"] = err.Error()
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (c *controller) alertHistory(ctx echo.Context) error {
	var q validators.AlertHistoryQuery
	if err := bindAndValidate(ctx, &q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	filter := repotypes.AlertFilter{
		Type:  q.Type,
		Level: q.Level,
		Limit: q.Limit,
	}
	if q.Hours > 0 {
		filter.From = time.Now().Add(-time.Duration(q.Hours) * time.Hour)
	}

	alerts, err := c.alerts.History(ctx.Request().Context(), filter)
	switch {
	case errors.Is(err, service.ErrAlertHistoryDisabled):
		return errorResponse(ctx, http.StatusServiceUnavailable, err.Error())
	case err != nil:
		logginghelper.LogError(transport, ctx.Path(), err)
		return errorResponse(ctx, http.StatusInternalServerError, "cannot load alert history")
	}
	return ctx.JSON(http.StatusOK, map[string]any{"alerts": alerts})
}
