package httpv1

import (
	"errors"
	"net/http"

	"github.com/Egor213/RBACPanel/internal/activitylog"
	logginghelper "github.com/Egor213/RBACPanel/internal/controller/common/logging"
	"github.com/Egor213/RBACPanel/internal/service"
	"github.com/Egor213/RBACPanel/internal/session"
	"github.com/labstack/echo/v4"
)

const (
	defaultCookieName = "rbacpanel_session"
	sessionKey        = "session"
)

type cookieConfig struct {
	name   string
	secure bool
}

// sessionMiddleware resolves the session cookie, creating a fresh session when the
// cookie is missing or expired, and tags the request context with the current username.
func (c *controller) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var sess *session.Session
		if cookie, err := ctx.Cookie(c.cookie.name); err == nil {
			sess, _ = c.sessions.Get(cookie.Value)
		}
		if sess == nil {
			sess = c.sessions.Create()
			ctx.SetCookie(c.newCookie(sess.ID))
		}
		ctx.Set(sessionKey, sess)

		if user := sess.State().User; user != nil {
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(activitylog.WithUsername(req.Context(), user.Username)))
		}
		return next(ctx)
	}
}

func (c *controller) newCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     c.cookie.name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func sessionFrom(ctx echo.Context) *session.Session {
	sess, _ := ctx.Get(sessionKey).(*session.Session)
	if sess == nil {
		return session.New("")
	}
	return sess
}

func (c *controller) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !c.auth.IsAuthenticated(ctx.Request().Context(), sessionFrom(ctx)) {
			return errorResponse(ctx, http.StatusUnauthorized, service.ErrNotAuthenticated.Error())
		}
		return next(ctx)
	}
}

func (c *controller) requirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := c.auth.Authorize(ctx.Request().Context(), sessionFrom(ctx), permission)
			switch {
			case err == nil:
				return next(ctx)
			case errors.Is(err, service.ErrNotAuthenticated):
				logginghelper.LogDenied(transport, ctx.Path(), permission, err)
				return errorResponse(ctx, http.StatusUnauthorized, err.Error())
			default:
				logginghelper.LogDenied(transport, ctx.Path(), permission, err)
				return errorResponse(ctx, http.StatusForbidden, "missing permission "+permission)
			}
		}
	}
}

// trackPage records a page view for the activity statistics.
func (c *controller) trackPage(page string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			c.activity.UserAction(ctx.Request().Context(), activitylog.UserAction{
				Action:  service.ActionPageNavigation,
				Page:    page,
				Success: true,
			})
			return next(ctx)
		}
	}
}
