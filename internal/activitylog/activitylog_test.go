package activitylog

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/Egor213/RBACPanel/internal/repo/logfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []domain.LogEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []domain.LogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		e, ok := logfs.ParseLine(sc.Text())
		require.True(t, ok, sc.Text())
		entries = append(entries, e)
	}
	require.NoError(t, sc.Err())
	return entries
}

func TestLogger_WritesAnalyzerReadableLines(t *testing.T) {
	root := t.TempDir()
	l := New(Config{Root: root, Enabled: true, MaxSizeMB: 1, MaxBackups: 1})

	ctx := WithUsername(context.Background(), "alice")
	l.UserAction(ctx, UserAction{Action: "page_navigation", Page: "Logs", Success: true})
	l.UserAction(ctx, UserAction{Action: "login_failed", Username: "bob", Success: false})
	l.PermissionCheck(ctx, PermissionCheck{Permission: "logs:view", Granted: true})
	l.PermissionCheck(ctx, PermissionCheck{Permission: "users:delete", Granted: false})
	l.APICall(ctx, APICall{Method: "GET", Endpoint: "/auth/me", StatusCode: 200, Duration: 0.25, Success: true})
	require.NoError(t, l.Close())

	actions := readEntries(t, filepath.Join(root, "frontend", "user_actions", "actions.log"))
	require.Len(t, actions, 2)
	assert.Equal(t, "page_navigation", actions[0].Action)
	assert.Equal(t, "Logs", actions[0].Page)
	assert.Equal(t, "alice", actions[0].Username)
	assert.Equal(t, domain.LevelInfo, actions[0].Level)
	assert.Equal(t, "bob", actions[1].Username)
	assert.Equal(t, domain.LevelWarning, actions[1].Level)
	require.NotNil(t, actions[1].Success)
	assert.False(t, *actions[1].Success)

	perms := readEntries(t, filepath.Join(root, "frontend", "permissions", "permissions.log"))
	require.Len(t, perms, 2)
	assert.Equal(t, "logs:view", perms[0].Permission)
	require.NotNil(t, perms[0].Granted)
	assert.True(t, *perms[0].Granted)
	require.NotNil(t, perms[1].Granted)
	assert.False(t, *perms[1].Granted)

	all := readEntries(t, filepath.Join(root, "frontend", "frontend.log"))
	require.Len(t, all, 5)
	call := all[4]
	assert.Equal(t, "frontend.api", call.Logger)
	assert.Equal(t, "/auth/me", call.Endpoint)
	require.NotNil(t, call.ResponseStatus)
	assert.Equal(t, 200, *call.ResponseStatus)
	require.NotNil(t, call.Duration)
	assert.InDelta(t, 0.25, *call.Duration, 1e-9)
	assert.NotEmpty(t, call.Timestamp)
}

func TestLogger_Disabled(t *testing.T) {
	root := t.TempDir()
	l := New(Config{Root: root, Enabled: false})

	l.UserAction(context.Background(), UserAction{Action: "login"})
	l.PermissionCheck(context.Background(), PermissionCheck{Permission: "x"})
	l.APICall(context.Background(), APICall{Method: "GET", Endpoint: "/health"})
	require.NoError(t, l.Close())

	_, err := os.Stat(filepath.Join(root, "frontend"))
	assert.True(t, os.IsNotExist(err))

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.UserAction(context.Background(), UserAction{}) })
}
