package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

// ResponseError writes {"error": msg} with the status mapped from err.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s: %v", c.FullPath(), err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// Data wraps a payload as {"data": v}.
func Data(c *gin.Context, code int, v any) {
	c.JSON(code, gin.H{"data": v})
}
