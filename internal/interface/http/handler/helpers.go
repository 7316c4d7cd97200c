package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam читает положительный целочисленный параметр пути.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
