package middleware

import (
	"net/http"
	"sync"

	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type keyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.limiters[key]
	if !ok {
		l = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = l
	}
	return l
}

// RateLimitByIP throttles unauthenticated routes (login, register) per
// client IP.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			response.AbortError(c, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
