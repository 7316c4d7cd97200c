package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDValidator проверяет, что параметр пути является положительным целым.
// Использование: rg.Group("/:id", IDValidator("id", "Invalid client ID"))
func IDValidator(paramName, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
			return
		}

		c.Next()
	}
}
