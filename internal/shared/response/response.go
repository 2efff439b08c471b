// Package response writes the wire shapes the dashboard client consumes.
// Success bodies are the bare resource shapes; every failure body carries a
// single "error" string the client surfaces verbatim.
package response

import (
	"github.com/gin-gonic/gin"
)

// JSON writes a success body as-is.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Error writes the failure contract: {"error": "<message>"}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// AbortError writes the failure contract and stops the handler chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
