package user

import (
	"go-attend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetAll)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "write"), h.Create)
		users.PATCH("/:userId", middleware.RBACAuthorize(rbacService, "user", "write"), h.Update)
		users.PATCH("/:userId/role", middleware.RBACAuthorize(rbacService, "user", "write"), h.ChangeRole)
		users.DELETE("/:userId", middleware.RBACAuthorize(rbacService, "user", "delete"), h.Delete)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.PATCH("", middleware.RBACAuthorize(rbacService, "profile", "update"), h.UpdateMe)
		me.PATCH("/password", middleware.RBACAuthorize(rbacService, "profile", "update"), h.UpdateMyPassword)
	}
}
