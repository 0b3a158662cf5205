package domain

import "time"

// SessionState is the cached authentication of one user session.
// Authenticated implies a non-empty Token.
type SessionState struct {
	Authenticated       bool
	Token               string
	User                *User
	TokenValidatedAt    time.Time
	PermissionsCachedAt time.Time
}

type PermissionsCacheInfo struct {
	Cached           bool    `json:"cached"`
	CacheAgeSeconds  float64 `json:"cache_age"`
	ExpiresInSeconds float64 `json:"expires_in"`
	IsExpired        bool    `json:"is_expired"`
	TTLSeconds       float64 `json:"ttl"`
}
