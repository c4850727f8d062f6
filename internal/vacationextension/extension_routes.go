package vacationextension

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
	r.POST("/vacations/:id/extensions",
		middleware.AuthMiddleware(),
		middleware.RBACAuthorize(rbacService, "vacation_extension", "create"),
		middleware.Idempotency(rdb),
		handler.Create,
	)

	extensions := r.Group("/vacation-extensions")
	extensions.Use(middleware.AuthMiddleware())
	{
		extensions.GET("",
			middleware.RBACAuthorize(rbacService, "vacation_extension", "read_all"),
			handler.List,
		)
		extensions.GET("/me", handler.GetMine)
		extensions.GET("/:id",
			middleware.RBACAuthorize(rbacService, "vacation_extension", "read_all"),
			handler.GetByID,
		)
		extensions.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, "vacation_extension", "approve"),
			handler.UpdateStatus,
		)
	}
}
