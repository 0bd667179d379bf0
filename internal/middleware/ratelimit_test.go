package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limiter := NewRateLimiter(TierLookup, perMinute, nil)
	r.GET("/ping", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doPing(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	router := newLimitedRouter(10)

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, doPing(router, "10.0.0.1"))
	}
}

func TestRateLimiterRejectsOverBudget(t *testing.T) {
	router := newLimitedRouter(3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doPing(router, "10.0.0.2"))
	}
	require.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.2"))
}

func TestRateLimiterIsPerClient(t *testing.T) {
	router := newLimitedRouter(2)

	require.Equal(t, http.StatusOK, doPing(router, "10.0.0.3"))
	require.Equal(t, http.StatusOK, doPing(router, "10.0.0.3"))
	require.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.3"))

	// A different client still has its own budget.
	require.Equal(t, http.StatusOK, doPing(router, "10.0.0.4"))
}
