package common

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

var testTable = Table{
	Name: "widgets",
	Columns: []Column{
		{Name: "user_id", Required: true},
		{Name: "title", Required: true},
		{Name: "first_name", Aliases: []string{"firstName"}},
		{Name: "tags", Kind: TextArrayColumn},
		{Name: "status"},
	},
	Mutable: []string{"title", "first_name", "tags", "status"},
}

func TestBuildUpdate_IteratesSchemaOrder(t *testing.T) {
	query, args, err := testTable.BuildUpdate(Values{
		"status": "done",
		"title":  "New",
	}, Key{Column: "id", Value: int64(7)})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE widgets SET title = $1, status = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3 RETURNING *", query)
	assert.Equal(t, []any{"New", "done", int64(7)}, args)
}

func TestBuildUpdate_IgnoresUnknownKeys(t *testing.T) {
	query, args, err := testTable.BuildUpdate(Values{
		"title":   "X",
		"user_id": 99,
		"hacker":  "drop table",
	}, Key{Column: "id", Value: 1})
	require.NoError(t, err)

	assert.NotContains(t, query, "user_id")
	assert.NotContains(t, query, "hacker")
	assert.Len(t, args, 2)
}

func TestBuildUpdate_TouchOnly(t *testing.T) {
	query, args, err := testTable.BuildUpdate(Values{}, Key{Column: "id", Value: 1})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE widgets SET updated_at = CURRENT_TIMESTAMP WHERE id = $1 RETURNING *", query)
	assert.Equal(t, []any{1}, args)
}

func TestBuildUpdate_AliasAndArray(t *testing.T) {
	query, args, err := testTable.BuildUpdate(Values{
		"firstName": "Ann",
		"tags":      []any{"go", "sql"},
	}, Key{Column: "id", Value: 1}, Key{Column: "user_id", Value: 2})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE widgets SET first_name = $1, tags = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3 AND user_id = $4 RETURNING *", query)
	assert.Equal(t, "Ann", args[0])
	assert.Equal(t, pq.Array([]string{"go", "sql"}), args[1])
}

func TestBuildUpdate_RejectsNonStringArrayElement(t *testing.T) {
	_, _, err := testTable.BuildUpdate(Values{"tags": []any{"go", 3.0}}, Key{Column: "id", Value: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestBuildUpdate_RequiresKey(t *testing.T) {
	_, _, err := testTable.BuildUpdate(Values{"title": "x"})
	assert.Error(t, err)
}

func TestBuildInsert_ReportsAllMissing(t *testing.T) {
	_, _, err := testTable.BuildInsert(Values{"status": "new"}, nil)
	require.Error(t, err)

	appErr := apperror.Classify(err)
	assert.Equal(t, "Missing required fields: user_id, title", appErr.Message)
	assert.Equal(t, []string{"user_id", "title"}, appErr.Fields)
}

func TestBuildInsert_FixedOverridesInput(t *testing.T) {
	query, args, err := testTable.BuildInsert(Values{"user_id": 1, "title": "T"}, Values{"user_id": int64(5)})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO widgets (user_id, title) VALUES ($1, $2) RETURNING *", query)
	assert.Equal(t, []any{int64(5), "T"}, args)
}

func TestBuildInsert_BlankStringIsMissing(t *testing.T) {
	_, _, err := testTable.BuildInsert(Values{"title": "  "}, Values{"user_id": int64(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}
