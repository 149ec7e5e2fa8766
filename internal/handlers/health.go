package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable
type Pinger func(ctx context.Context) error

// HealthCheck answers 200 while every pinger succeeds and 503 otherwise
func HealthCheck(pingers ...Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		for _, ping := range pingers {
			if err := ping(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status":  "unhealthy",
					"service": "event-comments",
					"error":   err.Error(),
				})
			}
		}

		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "event-comments",
		})
	}
}

func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Event comments API")
}
