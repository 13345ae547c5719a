package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API always answers HTTP 200; the status flag in the body carries the
// logical outcome. Existing mobile clients depend on this contract.

func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   data,
	})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": message,
	})
}

func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  false,
		"message": message,
	})
}

// Unauthorized is the one place the API breaks the HTTP-200 rule: requests
// without a valid token never reach a handler.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  false,
		"message": message,
	})
}
