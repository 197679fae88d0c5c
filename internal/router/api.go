package router

import (
	"net/http"

	"github.com/deppfellow/daca-chatbot/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerAPIRoutes registers the chatbot endpoints.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Root.Welcome)

	r.GET("/users/:user_id", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK))

	chat := handler.Handle(h.Chat.Handler, h.Chat.Reply, http.StatusOK)
	r.POST("/chat/", chat)
	r.POST("/chat", chat)
}
