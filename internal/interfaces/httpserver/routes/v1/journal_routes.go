package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
)

func registerJournalRoutes(router gin.IRoutes, handler *handlers.JournalHandler) {
	router.POST("/journal/entries", handler.Create)
	router.GET("/journal/entries/recent", handler.Recent)
	router.GET("/journal/entries/:entry_id", handler.Get)
	router.POST("/journal/entries/:entry_id/follow-ups", handler.FollowUp)
	router.POST("/journal/follow-ups/:followup_id/link", handler.Link)
	router.POST("/journal/search", handler.Search)
	router.POST("/journal/archive", handler.Archive)
	router.GET("/journal/session", handler.Session)
}
