package auth

import (
	"go-attend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	// 5 req/s with a small burst keeps credential stuffing slow without
	// bothering real users.
	limited := middleware.RateLimitByIP(rate.Limit(5), 10)

	r.POST("/login", limited, h.Login)
	r.POST("/register", limited, h.Register)
}
