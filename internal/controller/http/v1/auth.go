package httpv1

import (
	"net/http"
	"strconv"

	"github.com/Egor213/RBACPanel/internal/controller/common/validators"
	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/labstack/echo/v4"
)

type userResponse struct {
	User        *domain.User `json:"user"`
	Roles       []string     `json:"roles"`
	Permissions []string     `json:"permissions"`
}

func (c *controller) login(ctx echo.Context) error {
	var req validators.LoginRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	// A successful login always moves to a new session id.
	prev := sessionFrom(ctx)
	sess := c.sessions.Create()
	user, err := c.auth.Login(ctx.Request().Context(), sess, req.Username, req.Password)
	if err != nil {
		c.sessions.Delete(sess.ID)
		return backendError(ctx, err)
	}
	c.sessions.Delete(prev.ID)
	ctx.Set(sessionKey, sess)
	ctx.SetCookie(c.newCookie(sess.ID))

	return ctx.JSON(http.StatusOK, userResponse{
		User:        user,
		Roles:       user.RoleNames(),
		Permissions: user.PermissionNames(),
	})
}

func (c *controller) register(ctx echo.Context) error {
	var req validators.RegisterRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	user, err := c.auth.Register(ctx.Request().Context(), req.Domain())
	if err != nil {
		return backendError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, user)
}

func (c *controller) logout(ctx echo.Context) error {
	sess := sessionFrom(ctx)
	c.auth.Logout(ctx.Request().Context(), sess)
	c.sessions.Delete(sess.ID)

	expired := c.newCookie("")
	expired.MaxAge = -1
	ctx.SetCookie(expired)
	return ctx.NoContent(http.StatusNoContent)
}

func (c *controller) me(ctx echo.Context) error {
	user := c.auth.CurrentUser(ctx.Request().Context(), sessionFrom(ctx))
	if user == nil {
		return errorResponse(ctx, http.StatusUnauthorized, "session expired")
	}
	return ctx.JSON(http.StatusOK, userResponse{
		User:        user,
		Roles:       user.RoleNames(),
		Permissions: user.PermissionNames(),
	})
}

func (c *controller) roles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string][]string{
		"roles": c.auth.UserRoles(ctx.Request().Context(), sessionFrom(ctx)),
	})
}

func (c *controller) hasRole(ctx echo.Context) error {
	role := ctx.Param("role")
	return ctx.JSON(http.StatusOK, map[string]any{
		"role":     role,
		"assigned": c.auth.HasRole(ctx.Request().Context(), sessionFrom(ctx), role),
	})
}

func (c *controller) permissions(ctx echo.Context) error {
	refresh, _ := strconv.ParseBool(ctx.QueryParam("refresh"))
	return ctx.JSON(http.StatusOK, map[string][]string{
		"permissions": c.auth.UserPermissions(ctx.Request().Context(), sessionFrom(ctx), refresh),
	})
}

type checkResponse struct {
	Permission    string `json:"permission"`
	Granted       bool   `json:"granted"`
	CachedGranted bool   `json:"cached_granted"`
}

func (c *controller) check(ctx echo.Context) error {
	var q validators.PermissionQuery
	if err := bindAndValidate(ctx, &q); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	sess := sessionFrom(ctx)
	return ctx.JSON(http.StatusOK, checkResponse{
		Permission:    q.Permission,
		Granted:       c.auth.HasPermission(ctx.Request().Context(), sess, q.Permission),
		CachedGranted: c.auth.HasPermissionCached(sess, q.Permission),
	})
}

func (c *controller) cacheInfo(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.auth.PermissionsCacheInfo(sessionFrom(ctx)))
}

func (c *controller) cacheRefresh(ctx echo.Context) error {
	sess := sessionFrom(ctx)
	if err := c.auth.RefreshUserPermissions(ctx.Request().Context(), sess, true); err != nil {
		return backendError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, c.auth.PermissionsCacheInfo(sess))
}

func (c *controller) cacheInvalidate(ctx echo.Context) error {
	sess := sessionFrom(ctx)
	c.auth.InvalidatePermissionsCache(sess)
	return ctx.JSON(http.StatusOK, c.auth.PermissionsCacheInfo(sess))
}
