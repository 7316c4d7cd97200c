package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/JULEEP/securitybackend/internal/logger"
)

// Logger интерфейс для логирования ошибок. *logrus.Logger ему удовлетворяет.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger func() Logger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(l Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: func() Logger { return l }}
}

// SafeGo запускает горутину с обработкой panic
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go func() {
		defer rh.recover("Panic in goroutine")
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer rh.recover("Panic in goroutine (with context)")
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover(prefix string) {
	if r := recover(); r != nil {
		rh.logger().Errorf("%s: %v\nStack trace:\n%s", prefix, r, debug.Stack())
	}
}

// DefaultRecoveryHandler пишет в логгер приложения; логгер берётся в момент паники,
// поэтому работает и до logger.Init.
var DefaultRecoveryHandler = &RecoveryHandler{logger: func() Logger { return logger.L() }}

// SafeGo - упрощенная функция для запуска безопасной горутины
func SafeGo(fn func()) {
	DefaultRecoveryHandler.SafeGo(fn)
}

// SafeGoWithContext - упрощенная функция для запуска безопасной горутины с контекстом
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, fn)
}
