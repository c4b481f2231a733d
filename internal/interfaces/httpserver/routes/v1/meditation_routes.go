package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
)

func registerMeditationRoutes(router gin.IRoutes, handler *handlers.MeditationHandler) {
	router.GET("/meditation/stages", handler.Stages)
	router.GET("/meditation/stages/:stage_id/content", handler.StageContent)
	router.POST("/meditation/sessions", handler.Start)
	router.POST("/meditation/sessions/:session_id/stage", handler.AdvanceStage)
	router.POST("/meditation/sessions/:session_id/complete", handler.Complete)
	router.POST("/meditation/sessions/:session_id/reflections", handler.Reflect)
	router.GET("/meditation/sessions/:session_id/reflections", handler.Reflections)
}
