package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency replays cached responses for repeated POSTs carrying the same
// Idempotency-Key. A double-clicked "mark exit" therefore hits the service
// once; the second submission gets the first result (or a 409 while the
// first is still in flight).
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var cached any
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.AbortWithStatusJSON(http.StatusOK, cached)
				return
			}
		}

		// Short-lived lock; if the server dies mid-request the lock expires
		// on its own.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "This action is already being processed, please wait",
			})
			return
		}

		// Handlers use these to cache the result and release the lock.
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
