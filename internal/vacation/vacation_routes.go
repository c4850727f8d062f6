package vacation

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
	vacations := r.Group("/vacations")
	vacations.Use(middleware.AuthMiddleware())
	{
		vacations.POST("",
			middleware.RBACAuthorize(rbacService, "vacation", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		vacations.GET("",
			middleware.RBACAuthorize(rbacService, "vacation", "read_all"),
			handler.List,
		)
		vacations.GET("/me", handler.GetMine)
		vacations.GET("/:id",
			middleware.RBACAuthorize(rbacService, "vacation", "read_all"),
			handler.GetByID,
		)
		vacations.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, "vacation", "approve"),
			handler.UpdateStatus,
		)
	}
}
