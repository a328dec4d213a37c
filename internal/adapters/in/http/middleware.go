package http

import (
	"time"

	"orders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// RequestMetrics counts requests by route template and status and records their latency.
func RequestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
