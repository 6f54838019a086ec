package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/genomexlab/genome-x/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAllowWithinBurst(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMin: 30, Burst: 3}, nil)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestAllowIsPerIP(t *testing.T) {
	l := NewLimiter(Config{RequestsPerMin: 30, Burst: 1}, nil)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestMiddlewareBlocksWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	l := NewLimiter(Config{RequestsPerMin: 30, Burst: 1}, metrics)

	r := gin.New()
	r.GET("/", l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, int64(1), metrics.RateLimitBlocks)
}
