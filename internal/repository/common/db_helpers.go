package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// BatchInserter накапливает строки и вставляет их одним запросом.
// Если задан returning, вставленные строки сканируются в T.
type BatchInserter[T any] struct {
	tx          *sqlx.Tx
	query       string
	returning   string
	batchSize   int
	values      []any
	rowCount    int
	fieldsCount int
	rows        []T
}

// NewBatchInserter создает новый batch inserter
func NewBatchInserter[T any](tx *sqlx.Tx, baseQuery string, fieldsCount int, batchSize int) *BatchInserter[T] {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter[T]{
		tx:          tx,
		query:       baseQuery,
		batchSize:   batchSize,
		values:      make([]any, 0, batchSize*fieldsCount),
		fieldsCount: fieldsCount,
	}
}

// Returning включает возврат вставленных строк.
func (bi *BatchInserter[T]) Returning(columns string) *BatchInserter[T] {
	bi.returning = columns
	return bi
}

// Add добавляет строку для вставки
func (bi *BatchInserter[T]) Add(ctx context.Context, rowValues ...any) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("expected %d fields, got %d", bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}

	return nil
}

// Flush выполняет вставку накопленных значений
func (bi *BatchInserter[T]) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	// ($1, $2, $3), ($4, $5, $6), ...
	var sb strings.Builder
	sb.WriteString(bi.query)
	sb.WriteString(" VALUES ")
	for i := 0; i < bi.rowCount; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := 0; j < bi.fieldsCount; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*bi.fieldsCount+j+1)
		}
		sb.WriteString(")")
	}

	if bi.returning != "" {
		sb.WriteString(" RETURNING ")
		sb.WriteString(bi.returning)

		var batch []T
		if err := bi.tx.SelectContext(ctx, &batch, sb.String(), bi.values...); err != nil {
			return fmt.Errorf("batch insert: %w", err)
		}
		bi.rows = append(bi.rows, batch...)
	} else if _, err := bi.tx.ExecContext(ctx, sb.String(), bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.values = bi.values[:0]
	bi.rowCount = 0

	return nil
}

// Rows возвращает строки, вставленные с RETURNING.
func (bi *BatchInserter[T]) Rows() []T {
	return bi.rows
}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
