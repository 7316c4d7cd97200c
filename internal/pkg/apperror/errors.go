package apperror

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/lib/pq"
)

type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest         ErrorCode = "BAD_REQUEST"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
)

// maxPublicMessage ограничивает длину текста ошибки хранилища в ответе.
const maxPublicMessage = 200

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	// Fields перечисляет поля, не прошедшие валидацию.
	Fields []string
	Cause  error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation создаёт ошибку валидации со списком полей.
func Validation(message string, fields ...string) *AppError {
	e := New(ErrCodeValidation, message)
	e.Fields = fields
	return e
}

// MissingFields формирует ошибку "Missing required fields: a, b".
func MissingFields(fields []string) *AppError {
	return Validation("Missing required fields: "+strings.Join(fields, ", "), fields...)
}

// NotFound создаёт ошибку отсутствия сущности.
func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	// нарушение уникальности отдаётся клиенту как 400
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsConflict(err error) bool {
	return Classify(err).Code == ErrCodeConflict
}

// Коды PostgreSQL, которые отображаются на ошибки клиента.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgInvalidDatetime     = "22007"
	pgDatetimeOverflow    = "22008"
	pgNumericOverflow     = "22003"
	pgStringTooLong       = "22001"
)

// Classify приводит любую ошибку к AppError.
// Ошибки драйвера PostgreSQL раскладываются по таксономии, остальное становится INTERNAL_ERROR.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return Wrap(err, ErrCodeConflict, conflictMessage(pqErr))
		case pgForeignKeyViolation:
			return withField(Wrap(err, ErrCodeValidation, "Referenced entity does not exist"), pqErr.Column)
		case pgNotNullViolation:
			return withField(Wrap(err, ErrCodeValidation, "Missing required fields: "+pqErr.Column), pqErr.Column)
		case pgCheckViolation, pgInvalidText, pgInvalidDatetime, pgDatetimeOverflow, pgNumericOverflow, pgStringTooLong:
			return withField(Wrap(err, ErrCodeValidation, "Invalid value: "+Public(err)), pqErr.Column)
		}
		if pqErr.Code.Class() == "08" {
			return Wrap(err, ErrCodeStorageUnavailable, "storage unavailable")
		}
		return Wrap(err, ErrCodeDatabaseError, "database error")
	}

	if isConnectionError(err) {
		return Wrap(err, ErrCodeStorageUnavailable, "storage unavailable")
	}

	return Wrap(err, ErrCodeInternal, "internal server error")
}

func withField(e *AppError, column string) *AppError {
	if column != "" {
		e.Fields = []string{column}
	}
	return e
}

func conflictMessage(pqErr *pq.Error) string {
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return "Email is already registered"
	case strings.Contains(pqErr.Constraint, "invoice_number"):
		return "Invoice number already exists"
	case strings.Contains(pqErr.Constraint, "user_id"):
		return "Record already exists for this user"
	}
	return "Duplicate value violates unique constraint"
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

var dsnPattern = regexp.MustCompile(`postgres(?:ql)?://\S+`)

// Public возвращает безопасный для ответа текст ошибки: без DSN и не длиннее 200 символов.
func Public(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		msg = pqErr.Message
	}

	msg = dsnPattern.ReplaceAllString(msg, "postgres://***")
	if len(msg) > maxPublicMessage {
		msg = msg[:maxPublicMessage]
	}
	return msg
}

var (
	ErrProposalNotFound   = NotFound("Proposal not found")
	ErrProjectNotFound    = NotFound("Project not found")
	ErrInvoiceNotFound    = NotFound("Invoice not found")
	ErrClientNotFound     = NotFound("Client not found")
	ErrUserNotFound       = NotFound("User not found")
	ErrUnauthorized       = New(ErrCodeUnauthorized, "Authorization required")
	ErrInvalidCredentials = New(ErrCodeBadRequest, "Invalid credentials")
	ErrEmailTaken         = New(ErrCodeConflict, "Email is already registered")
)
