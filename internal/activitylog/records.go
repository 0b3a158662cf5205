package activitylog

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type UserAction struct {
	Action   string
	Page     string
	Resource string
	Success  bool
	// Username overrides the user found in the context, e.g. for a login attempt.
	Username string
	Details  map[string]any
}

type PermissionCheck struct {
	Permission string
	Resource   string
	Page       string
	Granted    bool
	Username   string
}

type APICall struct {
	Method      string
	Endpoint    string
	StatusCode  int
	Duration    float64
	Success     bool
	ErrorDetail string
}

func (l *Logger) UserAction(ctx context.Context, a UserAction) {
	if l == nil || l.actions == nil {
		return
	}

	fields := log.Fields{
		"action":  a.Action,
		"success": a.Success,
	}
	if a.Page != "" {
		fields["page"] = a.Page
	}
	if a.Resource != "" {
		fields["resource"] = a.Resource
	}
	for k, v := range a.Details {
		fields[k] = v
	}
	fields = withUser(ctx, fields, a.Username)

	msg := "User action: " + a.Action
	if a.Page != "" {
		msg += " on " + a.Page
	}
	if a.Resource != "" {
		msg += " for " + a.Resource
	}

	e := entry(l.actions, actionsLogger, fields)
	if a.Success {
		e.Info(msg)
	} else {
		e.Warn(msg)
	}
}

func (l *Logger) PermissionCheck(ctx context.Context, c PermissionCheck) {
	if l == nil || l.permissions == nil {
		return
	}

	fields := log.Fields{
		"action":     "permission_check",
		"permission": c.Permission,
		"granted":    c.Granted,
	}
	if c.Resource != "" {
		fields["resource"] = c.Resource
	}
	if c.Page != "" {
		fields["page"] = c.Page
	}
	fields = withUser(ctx, fields, c.Username)

	outcome := "denied"
	if c.Granted {
		outcome = "granted"
	}
	msg := fmt.Sprintf("Permission %s: %s", c.Permission, outcome)
	if c.Resource != "" {
		msg += " for " + c.Resource
	}

	e := entry(l.permissions, permissionsLogger, fields)
	if c.Granted {
		e.Info(msg)
	} else {
		e.Warn(msg)
	}
}

func (l *Logger) APICall(ctx context.Context, c APICall) {
	if l == nil || l.api == nil {
		return
	}

	fields := log.Fields{
		"action":       "api_call",
		"api_endpoint": c.Endpoint,
		"method":       c.Method,
		"duration":     c.Duration,
		"success":      c.Success,
	}
	if c.StatusCode != 0 {
		fields["response_status"] = c.StatusCode
	}
	if c.ErrorDetail != "" {
		fields["error_detail"] = c.ErrorDetail
	}
	fields = withUser(ctx, fields, "")

	msg := fmt.Sprintf("API call: %s %s", c.Method, c.Endpoint)
	if c.StatusCode != 0 {
		msg += fmt.Sprintf(" - %d", c.StatusCode)
	}
	msg += fmt.Sprintf(" (%.3fs)", c.Duration)

	e := entry(l.api, apiLogger, fields)
	if c.Success {
		e.Info(msg)
	} else {
		e.Error(msg)
	}
}
