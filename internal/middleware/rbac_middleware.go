package middleware

import (
	"net/http"

	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface so this package does not depend on the
// rbac package's concrete service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// RBACAuthorize gates a route on a resource/action pair. Authorization here
// is authoritative; the client-side role gate is convenience only.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.AbortError(c, http.StatusUnauthorized, "Missing auth context")
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.AbortError(c, http.StatusForbidden, "You do not have permission to access this resource")
			return
		}
		if !allowed {
			response.AbortError(c, http.StatusForbidden, "You do not have permission to access this resource")
			return
		}
		c.Next()
	}
}
