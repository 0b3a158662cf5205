package service

import "fmt"

var (
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrEmptyToken       = fmt.Errorf("backend returned no access token")

	ErrAlertHistoryDisabled = fmt.Errorf("alert history is not configured")
	ErrAlertsNotSaved       = fmt.Errorf("cannot save alerts")
	ErrAlertsNotPublished   = fmt.Errorf("cannot publish alerts")
)
