package middleware

import (
	"log"
	"net/http"

	"grid-balance/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware handles panics and errors
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("ErrorHandler: panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		if err, ok := recovered.(string); ok {
			c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternalError, err))
		} else {
			c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternalError, "An unexpected error occurred"))
		}
		c.Abort()
	})
}
