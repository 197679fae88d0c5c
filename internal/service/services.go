package service

import (
	"github.com/deppfellow/daca-chatbot/internal/server"
)

type Services struct {
	Chat *ChatService
	User *UserService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Chat: NewChatService(s),
		User: NewUserService(s),
	}
}
