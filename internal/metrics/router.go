package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

const subsystem = "rbacpanel"

func ConfigureRouter(handler *echo.Echo) {
	handler.GET("/metrics", echoprometheus.NewHandler())
}

// HTTPMiddleware records request counts and latencies of the dashboard API.
func HTTPMiddleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware(subsystem)
}
