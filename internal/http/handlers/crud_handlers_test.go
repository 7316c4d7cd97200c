package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Fields  []string        `json:"fields"`
}

func readEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestProjectHandler_Lifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	projects := newFakeProjects()
	r := gin.New()
	NewProjectHandler(projects).Register(r.Group("/api/projects"))

	w := send(r, http.MethodPost, "/api/projects/create/4", `{"title":"Site","user_id":99}`)
	require.Equal(t, http.StatusCreated, w.Code)
	env := readEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Project created successfully", env.Message)
	// владелец берётся из пути, а не из тела
	assert.Equal(t, int64(4), projects.items[1].UserID)

	send(r, http.MethodPost, "/api/projects/create/5", `{"title":"Other"}`)

	w = send(r, http.MethodGet, "/api/projects/user/4", "")
	require.Equal(t, http.StatusOK, w.Code)
	env = readEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "User projects retrieved successfully", env.Message)
	var owned []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &owned))
	assert.Len(t, owned, 1)

	w = send(r, http.MethodPut, "/api/projects/1", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", projects.items[1].Status)

	w = send(r, http.MethodDelete, "/api/projects/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodGet, "/api/projects/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", readEnvelope(t, w.Body.Bytes()).Message)
}

func TestProjectHandler_MissingTitle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewProjectHandler(newFakeProjects()).Register(r.Group("/api/projects"))

	w := send(r, http.MethodPost, "/api/projects/create/4", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"title"}, readEnvelope(t, w.Body.Bytes()).Fields)
}

func TestProjectHandler_ListEmptyIsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewProjectHandler(newFakeProjects()).Register(r.Group("/api/projects"))

	w := send(r, http.MethodGet, "/api/projects/all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(readEnvelope(t, w.Body.Bytes()).Data))
}

func TestInvoiceHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	invoices := newInvoiceStore()
	r := gin.New()
	NewInvoiceHandler(invoices).Register(r.Group("/api/invoices"))

	t.Run("create answers with envelope", func(t *testing.T) {
		w := send(r, http.MethodPost, "/api/invoices/create",
			`{"invoice_number":"INV-7","client":"Acme","amount":120.5,"date_issued":"2024-05-01","status":"unpaid"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		env := readEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "Invoice created successfully", env.Message)
	})

	t.Run("create lists missing fields", func(t *testing.T) {
		w := send(r, http.MethodPost, "/api/invoices/create", `{"client":"Acme"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := readEnvelope(t, w.Body.Bytes())
		assert.Equal(t, []string{"invoice_number", "amount", "date_issued", "status"}, env.Fields)
	})

	t.Run("list and get are bare", func(t *testing.T) {
		w := send(r, http.MethodGet, "/api/invoices/all", "")
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)

		w = send(r, http.MethodGet, "/api/invoices/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "INV-7", decode(t, w.Body.Bytes())["invoice_number"])
	})

	t.Run("download sets attachment name", func(t *testing.T) {
		w := send(r, http.MethodGet, "/api/invoices/download/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "attachment; filename=invoice-INV-7.json", w.Header().Get("Content-Disposition"))
	})

	t.Run("missing invoice", func(t *testing.T) {
		w := send(r, http.MethodGet, "/api/invoices/42", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Invoice not found"}`, w.Body.String())

		w = send(r, http.MethodGet, "/api/invoices/download/42", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update and delete", func(t *testing.T) {
		w := send(r, http.MethodPut, "/api/invoices/1", `{"status":"paid"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "paid", decode(t, w.Body.Bytes())["status"])

		w = send(r, http.MethodDelete, "/api/invoices/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Invoice deleted", w.Body.String())
	})

	t.Run("storage failure is masked", func(t *testing.T) {
		invoices.err = errors.New("connect postgres://admin:hunter2@db/app: refused")
		defer func() { invoices.err = nil }()

		w := send(r, http.MethodGet, "/api/invoices/all", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "hunter2")
	})
}

func TestClientHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clients := newClientStore()
	r := gin.New()
	NewClientHandler(clients).Register(r.Group("/api/clients"))

	w := send(r, http.MethodPost, "/api/clients", `{"name":"Acme","email":"ops@acme.io"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Acme", decode(t, w.Body.Bytes())["name"])

	w = send(r, http.MethodGet, "/api/clients", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = send(r, http.MethodPut, "/api/clients/1", `{"name":"Acme Ltd"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Ltd", clients.items[1].Name)

	w = send(r, http.MethodDelete, "/api/clients/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Client deleted successfully"}`, w.Body.String())

	w = send(r, http.MethodGet, "/api/clients/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Client not found"}`, w.Body.String())

	w = send(r, http.MethodGet, "/api/clients/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, http.MethodPost, "/api/clients", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
