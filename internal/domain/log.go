package domain

import "strings"

type Category string

const (
	CategoryBackend  Category = "Backend"
	CategoryFrontend Category = "Frontend"
	CategorySystem   Category = "System"
)

// Categories lists the log category roots in scan order.
var Categories = []Category{CategoryBackend, CategoryFrontend, CategorySystem}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
	LevelUnknown  = "UNKNOWN"
)

// NormalizeLevel upper-cases a level name and maps anything outside the known set to UNKNOWN.
func NormalizeLevel(level string) string {
	switch l := strings.ToUpper(strings.TrimSpace(level)); l {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return l
	case "WARN":
		return LevelWarning
	case "FATAL", "PANIC":
		return LevelCritical
	default:
		return LevelUnknown
	}
}

func IsErrorLevel(level string) bool {
	return level == LevelError || level == LevelCritical
}

// LogEntry is one normalized log line. Entries are derived on every query and never mutated.
type LogEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level"`
	Logger    string `json:"logger,omitempty"`
	Message   string `json:"message,omitempty"`

	Module   string `json:"module,omitempty"`
	Function string `json:"function,omitempty"`
	Line     string `json:"line,omitempty"`

	Action     string `json:"action,omitempty"`
	Page       string `json:"page,omitempty"`
	Component  string `json:"component,omitempty"`
	Permission string `json:"permission,omitempty"`
	Resource   string `json:"resource,omitempty"`
	Status     string `json:"status,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	Username   string `json:"username,omitempty"`

	// Duration is in seconds; nil when the line carried no numeric duration.
	Duration       *float64 `json:"duration,omitempty"`
	StatusCode     *int     `json:"status_code,omitempty"`
	ResponseStatus *int     `json:"response_status,omitempty"`
	Success        *bool    `json:"success,omitempty"`
	Granted        *bool    `json:"granted,omitempty"`

	// Fields holds every key of a structured line as decoded.
	Fields map[string]any `json:"fields,omitempty"`

	Category Category `json:"category"`
	LogFile  string   `json:"log_file"`
	RawLine  string   `json:"raw_line"`
}

// LogFilter selects entries for a filtered listing. Zero values disable a predicate.
type LogFilter struct {
	Category       string
	LogFile        string
	Level          string
	Username       string
	SearchTerm     string
	TimeRangeHours int
	MaxEntries     int
}
