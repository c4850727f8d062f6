package ledger

import (
	"go-hris-leave/internal/middleware"
	"go-hris-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	balance := r.Group("/leave-balance")
	balance.Use(middleware.AuthMiddleware())
	{
		balance.GET("/me", handler.GetMine)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/:id/leave-balance",
			middleware.RBACAuthorize(rbacService, "leave_balance", "read_all"),
			handler.GetByEmployee,
		)
	}
}
