package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the gateway process is running.  It
// does not reach the backend; an unreachable backend shows up as 502s on
// the real routes instead.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
