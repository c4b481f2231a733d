package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat/messages", handler.Send)
	router.GET("/chat/session", handler.OpenSession)
	router.GET("/chat/sessions/:session_id/messages", handler.Messages)
	router.POST("/chat/sessions/:session_id/end", handler.EndSession)
	router.POST("/chat/reset", handler.Reset)
	router.GET("/chat/state", handler.State)
	router.GET("/chat/state/schema", handler.StateSchema)
}
