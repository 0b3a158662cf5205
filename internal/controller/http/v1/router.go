package httpv1

import (
	"context"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	"github.com/Egor213/RBACPanel/internal/client/rbacapi"
	"github.com/Egor213/RBACPanel/internal/controller/common/validators"
	"github.com/Egor213/RBACPanel/internal/service"
	"github.com/Egor213/RBACPanel/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	apiPrefix = "/api/v1"
	transport = "http"

	PermissionLogsView = "logs:view"
)

// BackendAPI is the generic backend client the admin proxy forwards through.
type BackendAPI interface {
	Get(ctx context.Context, token, endpoint string) rbacapi.Result
	Post(ctx context.Context, token, endpoint string, body any) rbacapi.Result
	Put(ctx context.Context, token, endpoint string, body any) rbacapi.Result
	Delete(ctx context.Context, token, endpoint string) rbacapi.Result
	Health(ctx context.Context) rbacapi.Result
}

type Dependencies struct {
	Services     *service.Services
	Sessions     *session.Store
	Backend      BackendAPI
	Activity     *activitylog.Logger
	CookieName   string
	SecureCookie bool
}

type controller struct {
	logs     *service.LogService
	alerts   *service.AlertService
	auth     *service.AuthService
	sessions *session.Store
	backend  BackendAPI
	activity *activitylog.Logger
	cookie   cookieConfig
}

func ConfigureRouter(handler *echo.Echo, deps Dependencies) {
	handler.Validator = validators.New()
	handler.Use(middleware.Recover())

	c := &controller{
		logs:     deps.Services.Logs,
		alerts:   deps.Services.Alerts,
		auth:     deps.Services.Auth,
		sessions: deps.Sessions,
		backend:  deps.Backend,
		activity: deps.Activity,
		cookie:   cookieConfig{name: deps.CookieName, secure: deps.SecureCookie},
	}
	if c.cookie.name == "" {
		c.cookie.name = defaultCookieName
	}

	handler.GET("/health", c.health)

	api := handler.Group(apiPrefix, c.sessionMiddleware)

	auth := api.Group("/auth")
	auth.POST("/login", c.login)
	auth.POST("/register", c.register)
	auth.POST("/logout", c.logout)
	auth.GET("/me", c.me, c.requireAuth)
	auth.GET("/roles", c.roles, c.requireAuth)
	auth.GET("/roles/:role", c.hasRole, c.requireAuth)
	auth.GET("/permissions", c.permissions, c.requireAuth)
	auth.GET("/check", c.check, c.requireAuth)
	auth.GET("/cache", c.cacheInfo, c.requireAuth)
	auth.POST("/cache/refresh", c.cacheRefresh, c.requireAuth)
	auth.DELETE("/cache", c.cacheInvalidate, c.requireAuth)

	logs := api.Group("/logs", c.requirePermission(PermissionLogsView))
	logs.GET("", c.filteredLogs, c.trackPage("Logs"))
	logs.GET("/files", c.logFiles)
	logs.GET("/summary", c.summary, c.trackPage("Logs Dashboard"))
	logs.GET("/performance", c.performance, c.trackPage("Performance"))
	logs.GET("/activity", c.activityStats, c.trackPage("User Activity"))
	logs.GET("/alerts", c.realTimeAlerts)

	alerts := api.Group("/alerts", c.requirePermission(PermissionLogsView))
	alerts.POST("/snapshot", c.alertSnapshot)
	alerts.GET("/history", c.alertHistory)

	if c.backend != nil {
		for _, r := range proxyRoutes {
			api.Add(r.method, r.path, c.proxy, c.requirePermission(r.permission()))
		}
	}
}
