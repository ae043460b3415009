package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NomadCrew/pett-server/config"
	"github.com/NomadCrew/pett-server/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.RequestIDKey))
	})

	t.Run("generates an ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps an incoming ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "lb-1234")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "lb-1234", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "lb-1234", w.Body.String())
	})
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		environment  config.Environment
		expectedHSTS string
	}{
		{"development environment - no HSTS", config.EnvDevelopment, ""},
		{"production environment - with HSTS", config.EnvProduction, "max-age=31536000; includeSubDomains"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{Environment: tt.environment}}

			router := gin.New()
			router.Use(SecurityHeadersMiddleware(cfg))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "test")
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Equal(t, tt.expectedHSTS, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.NoRoute(NotFoundHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(stderrors.New("unexpected failure"))
	})
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "fine")
	})

	t.Run("unmatched route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp.Type)
		assert.Equal(t, "404", resp.Code)
		assert.Equal(t, "GET /nope", resp.Details)
	})

	t.Run("wrong method is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ok", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("plain error becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "SERVER_ERROR", resp.Type)
		assert.Equal(t, "Internal Server Error", resp.Message)
		assert.Empty(t, resp.Details)
	})

	t.Run("no error leaves the response alone", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fine", w.Body.String())
	})
}

func TestRecoveryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RecoveryHandler(), ErrorHandler())
	router.GET("/panic", func(c *gin.Context) {
		panic("status file vanished")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SERVER_ERROR", resp.Type)
	assert.Equal(t, "Internal Server Error", resp.Message)
	assert.Equal(t, "500", resp.Code)
	assert.Empty(t, resp.Details)
}

func TestAccessLogMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware(), AccessLogMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusServiceUnavailable, "Down")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Down", w.Body.String())
}
