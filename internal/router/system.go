package router

import (
	"github.com/deppfellow/daca-chatbot/internal/handler"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/deppfellow/daca-chatbot/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic:
//  1. Status endpoint
//  2. Docs endpoint (OpenAPI UI)
//  3. Static files endpoint (openapi.json and openapi.html)
//  4. Prometheus metrics, when enabled
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.Files)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if metricsCfg := s.Config.Observability.Metrics; metricsCfg.Enabled {
		r.GET(metricsCfg.Path, echo.WrapHandler(s.Metrics.Handler()))
	}
}
