package httpv1

import (
	"errors"
	"net/http"

	"github.com/Egor213/RBACPanel/internal/client/rbacapi"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
}

func errorResponse(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, errorBody{
		Error:  message,
		Path:   ctx.Request().URL.Path,
		Status: status,
	})
}

// backendError keeps the backend's 4xx answers and reports everything else as 502.
func backendError(ctx echo.Context, err error) error {
	var apiErr *rbacapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return errorResponse(ctx, apiErr.StatusCode, apiErr.Message)
	}
	return errorResponse(ctx, http.StatusBadGateway, rbacapi.Message(err))
}

var errInvalidRequest = errors.New("invalid request")

// bindAndValidate returns the error to report as 400; the response is not written yet.
func bindAndValidate(ctx echo.Context, v any) error {
	if err := ctx.Bind(v); err != nil {
		return errInvalidRequest
	}
	return ctx.Validate(v)
}

// health never fails: an unreachable backend is reported, not propagated.
func (c *controller) health(ctx echo.Context) error {
	resp := map[string]string{"status": "ok"}
	if c.backend != nil {
		resp["backend"] = "ok"
		if res := c.backend.Health(ctx.Request().Context()); !res.OK() {
			resp["backend"] = "unavailable"
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}
