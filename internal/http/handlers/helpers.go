package handlers

import (
	"context"

	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// CRUDStore репозиторий сущности верхнего уровня (клиенты, счета).
// Отсутствие строки возвращается как (nil, nil).
type CRUDStore[T any] interface {
	Create(ctx context.Context, values common.Values) (*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, values common.Values) (*T, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

// nonNil нужен, чтобы пустой список сериализовался как [], а не null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
