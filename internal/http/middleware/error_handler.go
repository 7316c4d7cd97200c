package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JULEEP/securitybackend/internal/logger"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// ErrorHandler отвечает на ошибки, добавленные через c.Error, если
// обработчик сам ничего не записал. Внутренние причины не раскрываются.
func ErrorHandler(dev bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.Classify(err)

		logger.L().WithFields(logrus.Fields{
			"code":       appErr.Code,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		}).WithError(err).Error("Request error")

		message := appErr.Message
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			message = "Internal server error"
		}

		body := gin.H{"message": message}
		if dev {
			body["error"] = apperror.Public(err)
		}
		c.JSON(appErr.HTTPStatus, body)
	}
}

// Recovery перехватывает панику обработчика и отвечает 500.
// Стек возвращается клиенту только в development.
func Recovery(dev bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := string(debug.Stack())
			logger.L().WithFields(logrus.Fields{
				"panic":      fmt.Sprint(r),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"request_id": c.GetString(ContextRequestIDKey),
			}).Error("Panic recovered")

			body := gin.H{"message": "Internal server error"}
			if dev {
				body["stack"] = stack
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()

		c.Next()
	}
}
