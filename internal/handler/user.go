package handler

import (
	"github.com/deppfellow/daca-chatbot/internal/model"
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/deppfellow/daca-chatbot/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// GetUser reports the role of the user named in the path.
func (h *UserHandler) GetUser(c echo.Context, req *model.GetUserRequest) (*model.UserRole, error) {
	return h.userService.Lookup(c.Request().Context(), req.UserID, req.Role), nil
}
