package domain

import "time"

type AlertLevel string

const (
	AlertLevelLow    AlertLevel = "low"
	AlertLevelMedium AlertLevel = "medium"
	AlertLevelHigh   AlertLevel = "high"
)

const (
	AlertTypeErrors      = "errors"
	AlertTypePerformance = "performance"
	AlertTypeSecurity    = "security"
)

type Alert struct {
	ID        int64      `json:"id,omitempty" db:"id"`
	Level     AlertLevel `json:"level" db:"level"`
	Type      string     `json:"type" db:"type"`
	Message   string     `json:"message" db:"message"`
	Count     int        `json:"count,omitempty" db:"count"`
	Value     float64    `json:"value,omitempty" db:"value"`
	Timestamp time.Time  `json:"timestamp" db:"created_at"`
}
