// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/daca-chatbot/internal/handler"
	"github.com/deppfellow/daca-chatbot/internal/middleware"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the full middleware chain and
// every route registered.
//
// Middleware order matters:
//   - RequestID first, so every later log line and response carries the id
//   - New Relic before EnhanceTracing and ContextEnhancer, which read the transaction
//   - RequestLogger and Metrics outside RateLimit, so denied requests are logged and counted
//   - Recover last, closest to the handlers
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Collect(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerAPIRoutes(router, h)

	return router
}
