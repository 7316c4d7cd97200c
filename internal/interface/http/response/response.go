package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JULEEP/securitybackend/internal/logger"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// Response конверт ответов /api/... : {success, message, data?, error?}.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail отвечает ошибкой. Ошибки клиента (4xx) отдаются своим сообщением,
// для остальных message = fallback, а error содержит очищенный текст причины.
func Fail(c *gin.Context, err error, fallback string) {
	appErr := apperror.Classify(err)

	if appErr.HTTPStatus < http.StatusInternalServerError {
		c.JSON(appErr.HTTPStatus, Response{
			Success: false,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
		return
	}

	logger.L().WithFields(logrus.Fields{
		"code":   appErr.Code,
		"path":   c.FullPath(),
		"method": c.Request.Method,
	}).WithError(err).Error(fallback)

	c.JSON(appErr.HTTPStatus, Response{
		Success: false,
		Message: fallback,
		Error:   apperror.Public(err),
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Success: false,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{
		Success: false,
		Message: message,
	})
}
