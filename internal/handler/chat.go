package handler

import (
	"github.com/deppfellow/daca-chatbot/internal/model"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/deppfellow/daca-chatbot/internal/service"
	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	Handler
	chatService *service.ChatService
}

func NewChatHandler(s *server.Server, chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		Handler:     NewHandler(s),
		chatService: chatService,
	}
}

// Reply answers a chat message. The body has already been decoded and
// validated into req.
func (h *ChatHandler) Reply(c echo.Context, req *model.Message) (*model.Response, error) {
	return h.chatService.Reply(c.Request().Context(), req)
}
