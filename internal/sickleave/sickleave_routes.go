package sickleave

import (
	"go-hris-leave/internal/middleware"
	"go-hris-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/sick-leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "sick_leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("",
			middleware.RBACAuthorize(rbacService, "sick_leave", "read_all"),
			handler.List,
		)
		leaves.GET("/me", handler.GetMine)
		leaves.GET("/:id",
			middleware.RBACAuthorize(rbacService, "sick_leave", "read_all"),
			handler.GetByID,
		)
		leaves.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, "sick_leave", "approve"),
			handler.UpdateStatus,
		)
	}
}
