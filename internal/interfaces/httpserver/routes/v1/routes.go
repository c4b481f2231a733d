package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine, middlewares ...gin.HandlerFunc) {
	group := engine.Group("/v1", middlewares...)
	registerProfileRoutes(group, r.handlers.Profile)
	registerChatRoutes(group, r.handlers.Chat)
	registerJournalRoutes(group, r.handlers.Journal)
	registerMeditationRoutes(group, r.handlers.Meditation)
}
