package service

import (
	"context"
	"sort"

	"github.com/Egor213/RBACPanel/internal/domain"
)

const (
	userActionsLogFile = "user_actions/actions.log"
	permissionsLogFile = "permissions/permissions.log"

	userActionsMaxLines = 3000
	permissionsMaxLines = 2000
)

const (
	ActionLoginAttempt   = "login_attempt"
	ActionLogin          = "login"
	ActionLoginFailed    = "login_failed"
	ActionLoginError     = "login_error"
	ActionLogout         = "logout"
	ActionPageNavigation = "page_navigation"
)

func isActiveUsername(name string) bool {
	return name != "" && name != "unknown" && name != "null"
}

// UserActivity derives per-user statistics from the frontend action and permission logs.
func (s *LogService) UserActivity(ctx context.Context, timeRangeHours int) (domain.UserActivityStats, error) {
	w := s.window(timeRangeHours)
	stats := domain.NewUserActivityStats()

	actions, err := s.readFiles(ctx, []fileRef{{category: domain.CategoryFrontend, name: userActionsLogFile}}, userActionsMaxLines)
	if err != nil {
		return stats, err
	}

	active := map[string]struct{}{}
	for _, e := range actions {
		if e.Timestamp == "" {
			continue
		}
		if _, ok := w.admit(e.Timestamp); !ok {
			continue
		}

		user := e.Username
		if !isActiveUsername(user) {
			continue
		}
		active[user] = struct{}{}

		switch e.Action {
		case ActionLoginAttempt:
			stats.LoginAttempts[user]++
		case ActionLogin:
			if e.Success == nil || *e.Success {
				stats.SuccessfulLogins[user]++
			}
		case ActionLoginFailed, ActionLoginError:
			stats.FailedLogins[user]++
		}

		perUser, ok := stats.UserActions[user]
		if !ok {
			perUser = map[string]int{}
			stats.UserActions[user] = perUser
		}
		perUser[e.Action]++

		if e.Action == ActionPageNavigation && e.Page != "" {
			stats.PageViews[e.Page]++
		}
	}

	checks, err := s.readFiles(ctx, []fileRef{{category: domain.CategoryFrontend, name: permissionsLogFile}}, permissionsMaxLines)
	if err != nil {
		return stats, err
	}

	for _, e := range checks {
		if e.Timestamp == "" || e.Permission == "" {
			continue
		}
		if _, ok := w.admit(e.Timestamp); !ok {
			continue
		}

		tally := stats.PermissionChecks[e.Permission]
		if e.Granted != nil && *e.Granted {
			tally.Granted++
		} else {
			tally.Denied++
		}
		stats.PermissionChecks[e.Permission] = tally
	}

	for user := range active {
		stats.ActiveUsers = append(stats.ActiveUsers, user)
	}
	sort.Strings(stats.ActiveUsers)

	return stats, nil
}
