package service

import (
	"context"

	"github.com/deppfellow/daca-chatbot/internal/model"
	"github.com/deppfellow/daca-chatbot/internal/server"
)

// DefaultRole is reported when a lookup names no role.
const DefaultRole = "guest"

type UserService struct {
	server *server.Server
}

func NewUserService(s *server.Server) *UserService {
	return &UserService{server: s}
}

// Lookup echoes userID together with role, or DefaultRole when role is empty.
func (s *UserService) Lookup(_ context.Context, userID, role string) *model.UserRole {
	if role == "" {
		role = DefaultRole
	}

	return &model.UserRole{UserID: userID, Role: role}
}
