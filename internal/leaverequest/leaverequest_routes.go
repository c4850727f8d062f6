package leaverequest

import (
	"go-hris-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", handler.List)
		requests.GET("/me", handler.GetMine)
		requests.PATCH("/:kind/:id/status", handler.UpdateStatus)
	}
}
