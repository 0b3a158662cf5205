package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_LogQuery(t *testing.T) {
	v := New()

	testCases := []struct {
		name    string
		query   LogQuery
		wantErr bool
	}{
		{name: "empty", query: LogQuery{}},
		{name: "full", query: LogQuery{Category: "backend", LogFile: "api/access.log", Level: "error", Hours: 24, Limit: 100}},
		{name: "unknown category", query: LogQuery{Category: "db"}, wantErr: true},
		{name: "path escape", query: LogQuery{Category: "Backend", LogFile: "../secret.log"}, wantErr: true},
		{name: "bad level", query: LogQuery{Level: "LOUD"}, wantErr: true},
		{name: "warn alias", query: LogQuery{Level: "warn"}},
		{name: "window too large", query: LogQuery{Hours: 10000}, wantErr: true},
		{name: "negative limit", query: LogQuery{Limit: -1}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.query)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLogQuery_Filter(t *testing.T) {
	f := LogQuery{Category: "backend", Level: "warn", Hours: 6, Limit: 10, SearchTerm: "x"}.Filter()
	assert.Equal(t, "WARNING", f.Level)
	assert.Equal(t, 6, f.TimeRangeHours)
	assert.Equal(t, 10, f.MaxEntries)
	assert.Equal(t, "x", f.SearchTerm)

	assert.Empty(t, LogQuery{}.Filter().Level)
}

func TestValidator_RegisterRequest(t *testing.T) {
	v := New()

	ok := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1", TenantName: "acme"}
	assert.NoError(t, v.Validate(ok))

	bad := ok
	bad.Email = "not-an-email"
	assert.Error(t, v.Validate(bad))

	bad = ok
	bad.TenantName = ""
	assert.Error(t, v.Validate(bad))

	assert.Equal(t, "acme", ok.Domain().TenantName)
}
