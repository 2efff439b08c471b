package rules

import (
	"go-attend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	rules := r.Group("/rules")
	rules.Use(middleware.AuthMiddleware())
	{
		// Every signed-in role may read the office rules.
		rules.GET("", h.Get)
		rules.PUT("", middleware.RBACAuthorize(rbacService, "rules", "write"), h.Update)
	}
}
