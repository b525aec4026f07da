package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gas-storage-valuation/internal/api/models"
)

// ErrorHandler recovers from handler panics and answers with the standard
// error envelope used by every handler.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
