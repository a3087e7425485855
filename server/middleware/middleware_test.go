package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestIDFromGin(c)})
	})
	return router
}

func TestRequestIDGenerated(t *testing.T) {
	router := newRouter(GinRequestIDMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPreserved(t *testing.T) {
	router := newRouter(GinRequestIDMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "mi-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "mi-id-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "mi-id-123")
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(GinCORSMiddleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	router := newRouter(rl.Middleware())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	require.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")

	// Первый клиент давно молчит, второй активен; следующий вызов
	// должен вычистить только молчащего
	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * clientIdleTTL)
	rl.lastCleanup = time.Now().Add(-2 * cleanupInterval)
	rl.mu.Unlock()

	rl.allow("10.0.0.3")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, stale := rl.clients["10.0.0.1"]
	_, active := rl.clients["10.0.0.2"]
	assert.False(t, stale)
	assert.True(t, active)
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	router := newRouter(rl.Middleware())

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	// Лимит первого клиента исчерпан, второй клиент не затронут
	w = httptest.NewRecorder()
	router.ServeHTTP(w, first)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	second := httptest.NewRequest(http.MethodGet, "/ping", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)
}
