package attendance

import (
	"go-hris-leave/internal/middleware"
	"go-hris-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the clock. Mutations are limited to rps per employee
// with the given burst.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rps float64, burst int) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		clock := attendances.Group("",
			middleware.RateLimitByEmployee(rate.Limit(rps), burst),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
		)
		clock.POST("/clock-in", h.ClockIn)
		clock.POST("/take-break", h.TakeBreak)
		clock.POST("/back-to-work", h.BackToWork)
		clock.POST("/clock-out", h.ClockOut)

		attendances.GET("/today", h.GetToday)
		attendances.GET("/period", h.GetPeriod)
		attendances.GET("/history", h.GetHistory)
	}
}
