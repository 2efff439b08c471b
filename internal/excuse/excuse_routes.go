package excuse

import (
	"go-attend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	excuses := r.Group("/excuses")
	excuses.Use(middleware.AuthMiddleware())
	{
		excuses.POST("", middleware.RBACAuthorize(rbacService, "excuse", "create"), h.Create)
		excuses.GET("", middleware.RBACAuthorize(rbacService, "excuse", "create"), h.GetMine)
		excuses.GET("/pending", middleware.RBACAuthorize(rbacService, "excuse", "read"), h.GetPending)
		excuses.PATCH("/:id", middleware.RBACAuthorize(rbacService, "excuse", "decide"), h.Decide)
	}
}
