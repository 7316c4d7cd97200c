package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// Provisioner гарантирует наличие таблицы до первого запроса к ней.
type Provisioner interface {
	EnsureTable(ctx context.Context, table string) error
}

// Store универсальный CRUD над одной таблицей со статической схемой.
// Отсутствие строки возвращается как (nil, nil), а не ошибка.
type Store[T any] struct {
	db     *sqlx.DB
	schema Provisioner
	table  Table
}

// NewStore создаёт хранилище для таблицы.
func NewStore[T any](db *sqlx.DB, schema Provisioner, table Table) *Store[T] {
	return &Store[T]{db: db, schema: schema, table: table}
}

// DB возвращает соединение для специфичных запросов.
func (s *Store[T]) DB() *sqlx.DB {
	return s.db
}

// Table возвращает схему таблицы.
func (s *Store[T]) Table() Table {
	return s.table
}

// Ensure создаёт таблицу, если её ещё нет.
func (s *Store[T]) Ensure(ctx context.Context) error {
	if s.schema == nil {
		return nil
	}
	return s.schema.EnsureTable(ctx, s.table.Name)
}

// Insert создаёт строку из разреженного ввода.
func (s *Store[T]) Insert(ctx context.Context, values, fixed Values) (*T, error) {
	query, args, err := s.table.BuildInsert(values, fixed)
	if err != nil {
		return nil, err
	}
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	var entity T
	if err := s.db.GetContext(ctx, &entity, query, args...); err != nil {
		return nil, fmt.Errorf("%s: insert: %w", s.table.Name, err)
	}
	return &entity, nil
}

// GetBy возвращает строку по значению колонки.
func (s *Store[T]) GetBy(ctx context.Context, column string, value any) (*T, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", s.table.Name, column)
	if err := s.db.GetContext(ctx, &entity, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: get by %s: %w", s.table.Name, column, err)
	}
	return &entity, nil
}

// List возвращает все строки в заданном порядке.
func (s *Store[T]) List(ctx context.Context, orderBy string) ([]T, error) {
	return s.selectRows(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY %s", s.table.Name, orderBy))
}

// ListBy возвращает строки с заданным значением колонки.
func (s *Store[T]) ListBy(ctx context.Context, column string, value any, orderBy string) ([]T, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 ORDER BY %s", s.table.Name, column, orderBy)
	return s.selectRows(ctx, query, value)
}

func (s *Store[T]) selectRows(ctx context.Context, query string, args ...any) ([]T, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.table.Name, err)
	}
	return items, nil
}

// UpdateBy применяет частичное обновление к строке с заданным ключом.
func (s *Store[T]) UpdateBy(ctx context.Context, column string, key any, values Values) (*T, error) {
	return s.update(ctx, values, Key{Column: column, Value: key})
}

// UpdateOwned применяет частичное обновление к дочерней строке владельца.
func (s *Store[T]) UpdateOwned(ctx context.Context, id, ownerID int64, values Values) (*T, error) {
	return s.update(ctx, values, Key{Column: "id", Value: id}, Key{Column: "user_id", Value: ownerID})
}

func (s *Store[T]) update(ctx context.Context, values Values, keys ...Key) (*T, error) {
	query, args, err := s.table.BuildUpdate(values, keys...)
	if err != nil {
		return nil, err
	}
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	var entity T
	if err := s.db.GetContext(ctx, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: update: %w", s.table.Name, err)
	}
	return &entity, nil
}

// DeleteBy удаляет строку и возвращает её.
func (s *Store[T]) DeleteBy(ctx context.Context, column string, key any) (*T, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	var entity T
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING *", s.table.Name, column)
	if err := s.db.GetContext(ctx, &entity, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: delete: %w", s.table.Name, err)
	}
	return &entity, nil
}

// DeleteOwned удаляет дочернюю строку, только если она принадлежит владельцу.
func (s *Store[T]) DeleteOwned(ctx context.Context, id, ownerID int64) (*T, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	var entity T
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2 RETURNING *", s.table.Name)
	if err := s.db.GetContext(ctx, &entity, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: delete: %w", s.table.Name, err)
	}
	return &entity, nil
}

// RequireFound превращает отсутствие строки в NotFound.
func RequireFound[T any](entity *T, err error, notFound *apperror.AppError) (*T, error) {
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, notFound
	}
	return entity, nil
}
