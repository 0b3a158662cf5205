package rbacapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	"github.com/Egor213/RBACPanel/internal/metrics"
	"github.com/h2non/gock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://rbac.test"

type recordedCalls struct {
	mu    sync.Mutex
	calls []activitylog.APICall
}

func (r *recordedCalls) APICall(_ context.Context, c activitylog.APICall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func newTestClient(t *testing.T) (*Client, *recordedCalls) {
	t.Helper()
	calls := &recordedCalls{}
	c := New(baseURL, time.Second, WithCallLogger(calls))
	gock.InterceptClient(c.http)
	t.Cleanup(func() {
		gock.RestoreClient(c.http)
		gock.Off()
	})
	return c, calls
}

func TestClient_Login(t *testing.T) {
	c, calls := newTestClient(t)

	gock.New(baseURL).
		Post("/auth/login").
		MatchType("json").
		JSON(map[string]string{"username": "alice", "password": "secret"}).
		Reply(200).
		JSON(map[string]any{
			"access_token": "tok",
			"token_type":   "bearer",
			"user":         map[string]any{"id": 1, "username": "alice"},
		})

	resp, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)

	require.Len(t, calls.calls, 1)
	assert.Equal(t, "/auth/login", calls.calls[0].Endpoint)
	assert.Equal(t, 200, calls.calls[0].StatusCode)
	assert.True(t, calls.calls[0].Success)
	assert.True(t, gock.IsDone())
}

func TestClient_CurrentUserSendsBearer(t *testing.T) {
	c, _ := newTestClient(t)

	gock.New(baseURL).
		Get("/auth/me").
		MatchHeader("Authorization", "^Bearer tok$").
		Reply(200).
		JSON(map[string]any{
			"id":       7,
			"username": "bob",
			"roles": []any{
				map[string]any{"name": "viewer", "permissions": []any{map[string]any{"name": "logs:view"}}},
			},
		})

	user, err := c.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.HasPermission("logs:view"))
}

func TestClient_Errors(t *testing.T) {
	testCases := []struct {
		name         string
		setup        func()
		wantStatus   int
		wantMessage  string
		invalidToken bool
		transport    bool
	}{
		{
			name: "detail string",
			setup: func() {
				gock.New(baseURL).Get("/auth/test-token").Reply(401).JSON(map[string]any{"detail": "Could not validate credentials"})
			},
			wantStatus:   401,
			wantMessage:  "Could not validate credentials",
			invalidToken: true,
		},
		{
			name: "detail list",
			setup: func() {
				gock.New(baseURL).Get("/auth/test-token").Reply(422).JSON(map[string]any{
					"detail": []any{map[string]any{"msg": "field required"}},
				})
			},
			wantStatus:  422,
			wantMessage: "field required",
		},
		{
			name: "no json body",
			setup: func() {
				gock.New(baseURL).Get("/auth/test-token").Reply(503).BodyString("upstream down")
			},
			wantStatus:  503,
			wantMessage: "HTTP 503",
		},
		{
			name: "forbidden",
			setup: func() {
				gock.New(baseURL).Get("/auth/test-token").Reply(403).JSON(map[string]any{"detail": "Inactive user"})
			},
			wantStatus:   403,
			wantMessage:  "Inactive user",
			invalidToken: true,
		},
		{
			name: "connection refused",
			setup: func() {
				gock.New(baseURL).Get("/auth/test-token").ReplyError(errors.New("connection refused"))
			},
			transport:   true,
			wantMessage: "Could not connect to the backend",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, calls := newTestClient(t)
			tc.setup()

			err := c.TestToken(context.Background(), "tok")
			require.Error(t, err)
			assert.Equal(t, tc.invalidToken, IsInvalidToken(err))
			assert.Equal(t, tc.transport, IsTransport(err))
			assert.Equal(t, tc.wantMessage, Message(err))

			if !tc.transport {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tc.wantStatus, apiErr.StatusCode)
			}

			require.Len(t, calls.calls, 1)
			assert.False(t, calls.calls[0].Success)
			assert.Equal(t, tc.wantMessage, calls.calls[0].ErrorDetail)
		})
	}
}

func TestClient_GenericResults(t *testing.T) {
	c, _ := newTestClient(t)
	counters := metrics.NewTestCounters()
	c.counters = counters

	gock.New(baseURL).Get("/admin/users").Reply(200).JSON([]any{map[string]any{"id": 1}})
	gock.New(baseURL).Delete("/admin/roles/3").Reply(204)
	gock.New(baseURL).Post("/admin/roles").Reply(400).JSON(map[string]any{"detail": "Role already exists"})
	gock.New(baseURL).Put("/admin/roles/4").ReplyError(errors.New("reset by peer"))

	res := c.Get(context.Background(), "tok", "/admin/users")
	assert.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[{"id":1}]`, string(res.Data))

	res = c.Delete(context.Background(), "tok", "/admin/roles/3")
	assert.True(t, res.OK())
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Empty(t, res.Data)

	res = c.Post(context.Background(), "tok", "/admin/roles", map[string]string{"name": "x"})
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Role already exists", res.Error)

	res = c.Put(context.Background(), "tok", "/admin/roles/4", map[string]string{"name": "y"})
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	backend := counters.BackendRequests.(*metrics.PrometheusCounter)
	assert.Equal(t, 1.0, testutil.ToFloat64(backend.Vec().WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(backend.Vec().WithLabelValues("PUT", "error")))
}
