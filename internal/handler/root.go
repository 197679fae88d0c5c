package handler

import (
	"net/http"

	"github.com/deppfellow/daca-chatbot/internal/model"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/labstack/echo/v4"
)

// WelcomeMessage is the body of the root endpoint.
const WelcomeMessage = "Welcome to the DACA Chatbot API! Access /docs for the API documentation."

type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
	}
}

// Welcome greets the caller. Query strings, headers and bodies are ignored.
func (h *RootHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Welcome{Message: WelcomeMessage})
}
