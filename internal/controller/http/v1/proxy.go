package httpv1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Egor213/RBACPanel/internal/client/rbacapi"
	logginghelper "github.com/Egor213/RBACPanel/internal/controller/common/logging"
	"github.com/labstack/echo/v4"
)

type proxyRoute struct {
	method   string
	path     string
	resource string
	action   string
}

func (r proxyRoute) permission() string {
	return r.resource + ":" + r.action
}

// proxyRoutes forward to the backend endpoint of the same path.
var proxyRoutes = []proxyRoute{
	{http.MethodGet, "/admin/users", "users", "read"},
	{http.MethodGet, "/admin/users/:id", "users", "read"},
	{http.MethodPost, "/admin/users/:id/roles/:role_id", "users", "update"},
	{http.MethodDelete, "/admin/users/:id/roles/:role_id", "users", "update"},
	{http.MethodPost, "/admin/users/:id/superadmin", "users", "update"},
	{http.MethodDelete, "/admin/users/:id/superadmin", "users", "update"},

	{http.MethodGet, "/admin/roles", "roles", "read"},
	{http.MethodPost, "/admin/roles", "roles", "create"},
	{http.MethodPut, "/admin/roles/:id", "roles", "update"},
	{http.MethodDelete, "/admin/roles/:id", "roles", "delete"},

	{http.MethodGet, "/admin/permissions", "permissions", "read"},
	{http.MethodPost, "/admin/permissions", "permissions", "create"},

	{http.MethodGet, "/tenants", "tenants", "read"},
	{http.MethodGet, "/tenants/analytics", "tenants", "read"},
	{http.MethodGet, "/tenants/:id/users", "tenants", "read"},
	{http.MethodPost, "/tenants", "tenants", "create"},
	{http.MethodPut, "/tenants/:id", "tenants", "update"},
	{http.MethodPost, "/tenants/:id/:action", "tenants", "update"},
	{http.MethodDelete, "/tenants/:id", "tenants", "delete"},

	{http.MethodGet, "/webhooks", "webhooks", "read"},
	{http.MethodGet, "/webhooks/analytics", "webhooks", "read"},
	{http.MethodPost, "/webhooks", "webhooks", "create"},
	{http.MethodPost, "/webhooks/:id/:action", "webhooks", "update"},
	{http.MethodDelete, "/webhooks/:id", "webhooks", "delete"},

	{http.MethodGet, "/api-keys", "api_keys", "read"},
	{http.MethodGet, "/api-keys/stats", "api_keys", "read"},
	{http.MethodPost, "/api-keys", "api_keys", "create"},
	{http.MethodPost, "/api-keys/:id/rotate", "api_keys", "update"},
	{http.MethodPut, "/api-keys/:id", "api_keys", "update"},
	{http.MethodDelete, "/api-keys/:id", "api_keys", "delete"},

	{http.MethodGet, "/protected/posts", "posts", "read"},
	{http.MethodPost, "/protected/posts/create", "posts", "create"},
	{http.MethodGet, "/protected/settings", "settings", "read"},
}

// backendEndpoint rebuilds the backend path from the matched route template so
// a decoded parameter can never change which backend resource is addressed.
func backendEndpoint(ctx echo.Context) (string, bool) {
	segments := strings.Split(strings.TrimPrefix(ctx.Path(), apiPrefix), "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		value := ctx.Param(seg[1:])
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		if value == "" || value == "." || strings.Contains(value, "..") || strings.ContainsAny(value, `/\`) {
			return "", false
		}
		segments[i] = url.PathEscape(value)
	}
	return strings.Join(segments, "/"), true
}

func (c *controller) proxy(ctx echo.Context) error {
	req := ctx.Request()
	endpoint, ok := backendEndpoint(ctx)
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid path parameter")
	}
	if req.URL.RawQuery != "" {
		endpoint += "?" + req.URL.RawQuery
	}

	var body any
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "cannot read request body")
		}
		if len(strings.TrimSpace(string(raw))) > 0 {
			if !json.Valid(raw) {
				return errorResponse(ctx, http.StatusBadRequest, "request body must be JSON")
			}
			body = json.RawMessage(raw)
		}
	}

	token := sessionFrom(ctx).State().Token
	rctx := req.Context()

	var res rbacapi.Result
	switch req.Method {
	case http.MethodGet:
		res = c.backend.Get(rctx, token, endpoint)
	case http.MethodPost:
		res = c.backend.Post(rctx, token, endpoint, body)
	case http.MethodPut:
		res = c.backend.Put(rctx, token, endpoint, body)
	case http.MethodDelete:
		res = c.backend.Delete(rctx, token, endpoint)
	default:
		return errorResponse(ctx, http.StatusMethodNotAllowed, "method not allowed")
	}

	if !res.OK() {
		status := res.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		logginghelper.LogError(transport, ctx.Path(), fmt.Errorf("backend %s %s: %d %s", req.Method, endpoint, res.StatusCode, res.Error))
		return errorResponse(ctx, status, res.Error)
	}
	if len(res.Data) == 0 {
		return ctx.NoContent(res.StatusCode)
	}
	return ctx.JSONBlob(res.StatusCode, res.Data)
}
