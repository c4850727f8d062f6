package vacationcancellation

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
	r.POST("/vacations/:id/cancellations",
		middleware.AuthMiddleware(),
		middleware.RBACAuthorize(rbacService, "vacation_cancellation", "create"),
		middleware.Idempotency(rdb),
		handler.Create,
	)

	cancellations := r.Group("/vacation-cancellations")
	cancellations.Use(middleware.AuthMiddleware())
	{
		cancellations.GET("",
			middleware.RBACAuthorize(rbacService, "vacation_cancellation", "read_all"),
			handler.List,
		)
		cancellations.GET("/me", handler.GetMine)
		cancellations.GET("/:id",
			middleware.RBACAuthorize(rbacService, "vacation_cancellation", "read_all"),
			handler.GetByID,
		)
		cancellations.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, "vacation_cancellation", "approve"),
			handler.UpdateStatus,
		)
	}
}
