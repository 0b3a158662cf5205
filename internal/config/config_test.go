package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
app:
  name: rbacpanel
  version: test
prometheus:
  port: "9090"
backend:
  url: http://backend/api/v1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 300*time.Second, cfg.Auth.PermissionsTTL)
	assert.Equal(t, 60*time.Second, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTimeout)
	assert.Equal(t, 4, cfg.Logs.MaxConcurrentReads)
	assert.Empty(t, cfg.PG.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.GRPC.Port)
	assert.Zero(t, cfg.Alerts.MonitorInterval)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("AUTH_PERMISSIONS_TTL", "2m")

	cfg, err := New(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Minute, cfg.Auth.PermissionsTTL)
}

func TestNew_PathFromEnv(t *testing.T) {
	t.Setenv("APP_CONFIG_PATH", writeConfig(t, minimalConfig))

	cfg, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "http://backend/api/v1", cfg.Backend.URL)
}

func TestNew_MissingRequired(t *testing.T) {
	_, err := New(writeConfig(t, "app:\n  name: x\n  version: y\n"))
	assert.Error(t, err)
}

func TestLogs_Location(t *testing.T) {
	testCases := []struct {
		name    string
		tz      string
		want    string
		wantErr bool
	}{
		{name: "local", tz: "Local", want: time.Local.String()},
		{name: "empty", tz: "", want: time.Local.String()},
		{name: "utc", tz: "UTC", want: "UTC"},
		{name: "unknown", tz: "Mars/Olympus", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := Logs{Timezone: tc.tz}.Location()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, loc.String())
		})
	}
}
