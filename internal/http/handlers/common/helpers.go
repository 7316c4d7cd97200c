package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JULEEP/securitybackend/internal/http/middleware"
	"github.com/JULEEP/securitybackend/internal/logger"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

var (
	// ErrUserNotFound is returned when user is not found in context
	ErrUserNotFound = errors.New("user is not found in context")

	// ErrInvalidBody is returned when the request body is not a JSON object
	ErrInvalidBody = errors.New("request body must be a JSON object")
)

// CurrentUserID extracts user ID put into the context by AuthMiddleware
func CurrentUserID(c *gin.Context) (int64, error) {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		return 0, ErrUserNotFound
	}
	return id, nil
}

// ParseIDParam parses a positive integer path parameter
func ParseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// BindValues reads the body as a sparse set of columns for the partial-update engine.
// An empty body is treated as an empty object.
func BindValues(c *gin.Context) (common.Values, error) {
	values := common.Values{}
	if c.Request.ContentLength == 0 {
		return values, nil
	}
	if err := c.ShouldBindJSON(&values); err != nil {
		return nil, ErrInvalidBody
	}
	if values == nil {
		values = common.Values{}
	}
	return values, nil
}

// RespondMessage sends {"message": message}
func RespondMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// RespondLegacyError answers in the bare-JSON families.
// Client errors keep their message, server errors are logged and answered
// with {message: fallback, error: <sanitized cause>}.
func RespondLegacyError(c *gin.Context, err error, fallback string) {
	appErr := apperror.Classify(err)
	if appErr.HTTPStatus < http.StatusInternalServerError {
		body := gin.H{"message": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.HTTPStatus, body)
		return
	}

	LogFailure(c, appErr, err, fallback)
	c.JSON(appErr.HTTPStatus, gin.H{"message": fallback, "error": apperror.Public(err)})
}

// LogFailure writes a server-side failure with request fields
func LogFailure(c *gin.Context, appErr *apperror.AppError, err error, message string) {
	logger.L().WithFields(logrus.Fields{
		"code":       appErr.Code,
		"path":       c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString(middleware.ContextRequestIDKey),
	}).WithError(err).Error(message)
}
