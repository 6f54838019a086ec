// Package ratelimit provides per-IP token-bucket limiting for the analyze
// endpoint. Single-node deployment, so an in-memory limiter map is enough.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/genomexlab/genome-x/internal/monitoring"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMin int
	Burst          int
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		RequestsPerMin: 30,
		Burst:          10,
	}
}

// Limiter tracks one token bucket per client IP.
type Limiter struct {
	config   Config
	metrics  *monitoring.Metrics
	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a per-IP limiter and starts the idle-entry sweeper.
func NewLimiter(config Config, metrics *monitoring.Metrics) *Limiter {
	l := &Limiter{
		config:   config,
		metrics:  metrics,
		limiters: make(map[string]*clientLimiter),
	}

	go l.cleanup()

	return l
}

// cleanup drops buckets idle for more than 10 minutes.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		for ip, cl := range l.limiters {
			if time.Since(cl.lastSeen) > 10*time.Minute {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Allow reports whether ip may make another request now.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, exists := l.limiters[ip]
	if !exists {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.config.RequestsPerMin)/60.0), l.config.Burst),
		}
		l.limiters[ip] = cl
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

// Middleware rejects over-limit clients with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			if l.metrics != nil {
				l.metrics.IncrementRateLimitBlock()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
