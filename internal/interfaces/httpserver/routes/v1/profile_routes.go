package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/handlers"
)

func registerProfileRoutes(router gin.IRoutes, handler *handlers.ProfileHandler) {
	router.GET("/profile", handler.Get)
	router.PATCH("/profile", handler.Update)
}
