package logfs_test

import (
	"testing"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo/logfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_JSON(t *testing.T) {
	line := `{"timestamp":"2024-05-01T10:00:00Z","level":"error","logger":"frontend.api","message":"API call: GET /admin/users","endpoint":"/admin/users","duration":1.5,"response_status":500,"username":"alice","success":false,"line":42}`

	entry, ok := logfs.ParseLine(line)
	require.True(t, ok)

	assert.Equal(t, "2024-05-01T10:00:00Z", entry.Timestamp)
	assert.Equal(t, domain.LevelError, entry.Level)
	assert.Equal(t, "frontend.api", entry.Logger)
	assert.Equal(t, "/admin/users", entry.Endpoint)
	assert.Equal(t, "alice", entry.Username)
	assert.Equal(t, "42", entry.Line)
	require.NotNil(t, entry.Duration)
	assert.InDelta(t, 1.5, *entry.Duration, 1e-9)
	require.NotNil(t, entry.ResponseStatus)
	assert.Equal(t, 500, *entry.ResponseStatus)
	require.NotNil(t, entry.Success)
	assert.False(t, *entry.Success)
	assert.Nil(t, entry.Granted)
	assert.Equal(t, "alice", entry.Fields["username"])
}

func TestParseLine_JSONEndpointFallback(t *testing.T) {
	entry, ok := logfs.ParseLine(`{"level":"INFO","api_endpoint":"/auth/me"}`)
	require.True(t, ok)
	assert.Equal(t, "/auth/me", entry.Endpoint)
	assert.Empty(t, entry.Timestamp)
}

func TestParseLine_NonNumericDuration(t *testing.T) {
	entry, ok := logfs.ParseLine(`{"level":"INFO","duration":"slow"}`)
	require.True(t, ok)
	assert.Nil(t, entry.Duration)
}

func TestParseLine_Text(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		module   string
		function string
		lineNo   string
	}{
		{
			name:     "full location",
			line:     "2024-05-01 10:00:00 - app.auth - WARNING - service.py:authenticate:57 - bad password",
			module:   "service.py",
			function: "authenticate",
			lineNo:   "57",
		},
		{
			name:     "module and function",
			line:     "2024-05-01 10:00:00 - app.auth - WARNING - service.py:authenticate - bad password",
			module:   "service.py",
			function: "authenticate",
		},
		{
			name:     "extra location segments",
			line:     "2024-05-01 10:00:00 - app.auth - WARNING - service.py:authenticate:57:3 - bad password",
			module:   "service.py",
			function: "authenticate",
			lineNo:   "57",
		},
		{
			name:   "module only",
			line:   "2024-05-01 10:00:00 - app.auth - WARNING - service.py - bad password",
			module: "service.py",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry, ok := logfs.ParseLine(tc.line)
			require.True(t, ok)

			assert.Equal(t, "2024-05-01T10:00:00", entry.Timestamp)
			assert.Equal(t, "app.auth", entry.Logger)
			assert.Equal(t, domain.LevelWarning, entry.Level)
			assert.Equal(t, "bad password", entry.Message)
			assert.Equal(t, tc.module, entry.Module)
			assert.Equal(t, tc.function, entry.Function)
			assert.Equal(t, tc.lineNo, entry.Line)
			assert.Nil(t, entry.Fields)
		})
	}
}

func TestParseLine_Dropped(t *testing.T) {
	for _, line := range []string{
		"",
		"   \t ",
		"plain text without structure",
		"2024-13-45 10:00:00 - app - INFO - mod - impossible date",
		`[1, 2, 3]`,
		`{"broken json"`,
	} {
		_, ok := logfs.ParseLine(line)
		assert.False(t, ok, line)
	}
}

func TestParseLine_Idempotent(t *testing.T) {
	for _, line := range []string{
		`{"timestamp":"2024-05-01T10:00:00","level":"INFO","message":"hello","duration":0.2}`,
		"2024-05-01 10:00:00 - app.main - INFO - main.py:run:10 - started",
	} {
		first, ok := logfs.ParseLine(line)
		require.True(t, ok)
		second, ok := logfs.ParseLine(line)
		require.True(t, ok)
		assert.Equal(t, first, second)
	}
}
