package domain

type RecentError struct {
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
	Logger    string   `json:"logger"`
	Category  Category `json:"category"`
}

type PerformanceStats struct {
	AvgResponseTime float64 `json:"avg_response_time"`
	SlowRequests    int     `json:"slow_requests"`
	TotalRequests   int     `json:"total_requests"`
}

type LogsSummary struct {
	TotalEntries     int              `json:"total_entries"`
	ByLevel          map[string]int   `json:"by_level"`
	ByCategory       map[Category]int `json:"by_category"`
	ByHour           map[string]int   `json:"by_hour"`
	RecentErrors     []RecentError    `json:"recent_errors"`
	TopEndpoints     map[string]int   `json:"top_endpoints"`
	TopUsers         map[string]int   `json:"top_users"`
	PerformanceStats PerformanceStats `json:"performance_stats"`
}

func NewLogsSummary() LogsSummary {
	return LogsSummary{
		ByLevel:      map[string]int{},
		ByCategory:   map[Category]int{},
		ByHour:       map[string]int{},
		RecentErrors: []RecentError{},
		TopEndpoints: map[string]int{},
		TopUsers:     map[string]int{},
	}
}

type SlowRequest struct {
	Endpoint   string  `json:"endpoint"`
	Duration   float64 `json:"duration"`
	Timestamp  string  `json:"timestamp"`
	StatusCode int     `json:"status_code"`
}

type ErrorRate struct {
	Total  int `json:"total"`
	Errors int `json:"errors"`
}

type PerformanceMetrics struct {
	RequestCountByEndpoint    map[string]int       `json:"request_count_by_endpoint"`
	AvgResponseTimeByEndpoint map[string]float64   `json:"avg_response_time_by_endpoint"`
	StatusCodes               map[int]int          `json:"status_codes"`
	ErrorRateByHour           map[string]ErrorRate `json:"error_rate_by_hour"`
	SlowRequests              []SlowRequest        `json:"slow_requests"`
	TopErrorMessages          map[string]int       `json:"top_error_messages"`
}

func NewPerformanceMetrics() PerformanceMetrics {
	return PerformanceMetrics{
		RequestCountByEndpoint:    map[string]int{},
		AvgResponseTimeByEndpoint: map[string]float64{},
		StatusCodes:               map[int]int{},
		ErrorRateByHour:           map[string]ErrorRate{},
		SlowRequests:              []SlowRequest{},
		TopErrorMessages:          map[string]int{},
	}
}

type PermissionTally struct {
	Granted int `json:"granted"`
	Denied  int `json:"denied"`
}

type UserActivityStats struct {
	ActiveUsers      []string                  `json:"active_users"`
	LoginAttempts    map[string]int            `json:"login_attempts"`
	SuccessfulLogins map[string]int            `json:"successful_logins"`
	FailedLogins     map[string]int            `json:"failed_logins"`
	UserActions      map[string]map[string]int `json:"user_actions"`
	PageViews        map[string]int            `json:"page_views"`
	PermissionChecks map[string]PermissionTally `json:"permission_checks"`
}

func NewUserActivityStats() UserActivityStats {
	return UserActivityStats{
		ActiveUsers:      []string{},
		LoginAttempts:    map[string]int{},
		SuccessfulLogins: map[string]int{},
		FailedLogins:     map[string]int{},
		UserActions:      map[string]map[string]int{},
		PageViews:        map[string]int{},
		PermissionChecks: map[string]PermissionTally{},
	}
}

// TotalFailedLogins sums failed logins across all users.
func (s UserActivityStats) TotalFailedLogins() int {
	total := 0
	for _, n := range s.FailedLogins {
		total += n
	}
	return total
}
