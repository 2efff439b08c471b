package attendance

import (
	"go-attend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetMine)
		attendance.GET("/admin/all", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), h.GetAllEmployees)
		attendance.GET("/:userId", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), h.GetForUser)

		mark := attendance.Group("", middleware.RBACAuthorize(rbacService, "attendance", "mark"))
		if rdb != nil {
			mark.Use(middleware.Idempotency(rdb))
		}
		mark.POST("/mark-arrival", h.MarkArrival)
		mark.POST("/mark-exit", h.MarkExit)
	}

	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/export", middleware.RBACAuthorize(rbacService, "report", "export"), h.ExportReport)
	}
}
