package common

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// ColumnKind определяет, как значение из запроса передаётся в драйвер.
type ColumnKind int

const (
	ScalarColumn ColumnKind = iota
	// TextArrayColumn колонка TEXT[]; принимает только массив строк.
	TextArrayColumn
)

// Column описывает колонку таблицы, доступную для записи.
type Column struct {
	Name     string
	Aliases  []string
	Kind     ColumnKind
	Required bool
}

// Table статическая схема сущности: порядок колонок и белый список для update.
type Table struct {
	Name    string
	Columns []Column
	Mutable []string
}

// Values разреженный ввод: присутствие ключа означает "изменить".
type Values map[string]any

func (t Table) column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// lookup ищет значение колонки по имени или по одному из алиасов.
func lookup(values Values, col Column) (any, bool) {
	if v, ok := values[col.Name]; ok {
		return v, true
	}
	for _, alias := range col.Aliases {
		if v, ok := values[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

func convert(col Column, v any) (any, error) {
	if v == nil {
		if col.Kind == TextArrayColumn {
			return pq.Array([]string{}), nil
		}
		return nil, nil
	}

	if col.Kind == TextArrayColumn {
		switch arr := v.(type) {
		case []string:
			return pq.Array(arr), nil
		case []any:
			out := make([]string, 0, len(arr))
			for _, item := range arr {
				s, ok := item.(string)
				if !ok {
					return nil, apperror.Validation(col.Name+" must be an array of strings", col.Name)
				}
				out = append(out, s)
			}
			return pq.Array(out), nil
		default:
			return nil, apperror.Validation(col.Name+" must be an array of strings", col.Name)
		}
	}

	switch v.(type) {
	case map[string]any, []any:
		return nil, apperror.Validation("Invalid value for "+col.Name, col.Name)
	}
	return v, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Key условие WHERE column = value.
type Key struct {
	Column string
	Value  any
}

// BuildUpdate собирает UPDATE по белому списку таблицы.
// Перебираются колонки схемы, а не ключи ввода: неизвестные ключи игнорируются.
// updated_at выставляется всегда, поэтому пустой ввод даёт touch-only update.
func (t Table) BuildUpdate(values Values, keys ...Key) (string, []any, error) {
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("table %s: update without key", t.Name)
	}

	sets := make([]string, 0, len(t.Mutable)+1)
	args := make([]any, 0, len(t.Mutable)+len(keys))

	for _, name := range t.Mutable {
		col, ok := t.column(name)
		if !ok {
			return "", nil, fmt.Errorf("table %s: mutable column %s is not declared", t.Name, name)
		}
		raw, present := lookup(values, col)
		if !present {
			continue
		}
		v, err := convert(col, raw)
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col.Name, len(args)))
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	conds := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, k.Value)
		conds = append(conds, fmt.Sprintf("%s = $%d", k.Column, len(args)))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *",
		t.Name, strings.Join(sets, ", "), strings.Join(conds, " AND "))
	return query, args, nil
}

// BuildInsert собирает INSERT по колонкам схемы.
// fixed перекрывает ввод (например, user_id из пути).
// Все отсутствующие обязательные поля возвращаются одной ошибкой.
func (t Table) BuildInsert(values Values, fixed Values) (string, []any, error) {
	cols := make([]string, 0, len(t.Columns))
	placeholders := make([]string, 0, len(t.Columns))
	args := make([]any, 0, len(t.Columns))
	var missing []string

	for _, col := range t.Columns {
		raw, present := fixed[col.Name]
		if !present {
			raw, present = lookup(values, col)
		}
		if col.Required && isBlank(raw) {
			missing = append(missing, col.Name)
			continue
		}
		if !present {
			continue
		}
		v, err := convert(col, raw)
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
		cols = append(cols, col.Name)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	if len(missing) > 0 {
		return "", nil, apperror.MissingFields(missing)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		t.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return query, args, nil
}
