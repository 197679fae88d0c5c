package middleware

import (
	"time"

	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that matched no route, keeping the route
// label's cardinality bounded.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records Prometheus HTTP metrics.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Collect observes every request: count and duration by method, route
// template and final status, and the number of requests in flight.
func (m *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.server.Config.Observability.Metrics.Enabled {
				return next(c)
			}

			collectors := m.server.Metrics
			collectors.HTTPRequestsInFlight.Inc()
			defer collectors.HTTPRequestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			route := c.Path()
			if route == "" || route == "/*" {
				route = unmatchedRoute
			}

			collectors.ObserveRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}
