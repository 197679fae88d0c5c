package handler

import (
	"github.com/deppfellow/daca-chatbot/internal/server"
	"github.com/deppfellow/daca-chatbot/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Root    *RootHandler
	User    *UserHandler
	Chat    *ChatHandler
	Health  *HealthHandler  // Health serves the service status endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation UI.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:    NewRootHandler(s),
		User:    NewUserHandler(s, services.User),
		Chat:    NewChatHandler(s, services.Chat),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
