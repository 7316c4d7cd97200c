package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenManager("test-secret-test-secret-test-secret")
	token, err := tokens.Issue(&models.User{ID: 42, Email: "a@b.io"}, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := UserIDFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": c.GetString(ContextEmailKey)})
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":42,"email":"a@b.io"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other, err := service.NewTokenManager("another-secret-another-secret-xx").Issue(&models.User{ID: 42}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		w := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token is not valid")
	})
}

func TestCORSMiddleware(t *testing.T) {
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("wildcard", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"*"}))
		r.GET("/", handler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://anything.test")
		w := serve(r, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
		r.GET("/", handler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := serve(r, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w = serve(r, req)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"*"}))
		r.GET("/", handler)

		w := serve(r, httptest.NewRequest(http.MethodOptions, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	build := func(dev bool) *gin.Engine {
		r := gin.New()
		r.Use(Recovery(dev))
		r.GET("/boom", func(c *gin.Context) { panic("boom") })
		return r
	}

	w := serve(build(true), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"stack"`)

	w = serve(build(false), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), `"stack"`)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(false))
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(apperror.NotFound("Client not found")) })
	r.GET("/db", func(c *gin.Context) {
		_ = c.Error(errors.New("dial postgres://u:secret@db/app"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Client not found"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/db", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestIDKey)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(memory.NewStore(), 2, time.Minute))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestNewRateLimitStore(t *testing.T) {
	store, err := NewRateLimitStore("")
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = NewRateLimitStore("://not-a-url")
	assert.Error(t, err)
}

func TestIDValidator(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", IDValidator("id", "Invalid invoice ID"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/items/7", nil)).Code)

	for _, bad := range []string{"0", "-3", "abc"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/items/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.JSONEq(t, `{"message":"Invalid invoice ID"}`, w.Body.String())
	}
}
