package service

import (
	"time"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	"github.com/Egor213/RBACPanel/internal/broker"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/Egor213/RBACPanel/internal/repo"
)

type Services struct {
	Logs   *LogService
	Alerts *AlertService
	Auth   *AuthService
}

type ServicesDependencies struct {
	Repos    *repo.Repositories
	AuthAPI  AuthAPI
	Producer broker.Producer
	Counters *metrics.Counters
	Activity *activitylog.Logger

	Location           *time.Location
	MaxConcurrentReads int
	Auth               AuthConfig
}

func NewServices(deps ServicesDependencies) *Services {
	logs := NewLogService(deps.Repos.LogFiles,
		WithLocation(deps.Location),
		WithConcurrency(deps.MaxConcurrentReads),
	)

	return &Services{
		Logs:   logs,
		Alerts: NewAlertService(logs, deps.Repos.AlertHistory, deps.Producer, deps.Counters),
		Auth: NewAuthService(deps.AuthAPI, deps.Auth,
			WithAuthCounters(deps.Counters),
			WithActivityLog(deps.Activity),
		),
	}
}
