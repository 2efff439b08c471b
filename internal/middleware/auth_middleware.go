package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-attend/internal/shared/contextutil"
	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and seeds the request context
// with the caller's identity. Every route except login/register sits behind
// it; a stale token fails here and the client redirects to login.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Session expired, please log in again"
			}
			response.AbortError(c, http.StatusUnauthorized, msg)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.AbortError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		role, _ := claims["role"].(string)
		username, _ := claims["username"].(string)
		email, _ := claims["email"].(string)

		c.Set("user_id", userID)
		c.Set("username", username)
		c.Set("email", email)
		c.Set("role", role)

		c.Request = c.Request.WithContext(
			contextutil.WithUserID(c.Request.Context(), userID),
		)
		c.Next()
	}
}
