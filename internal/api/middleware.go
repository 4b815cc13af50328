package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS allows browser clients from any origin.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	})
}

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type ipRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*visitor
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		ips: make(map[string]*visitor),
		r:   r,
		b:   b,
		now: time.Now,
	}
}

func (i *ipRateLimiter) limiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= limiterSweepEvery {
		i.sweep(now)
	}

	v, ok := i.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep must be called with mu held.
func (i *ipRateLimiter) sweep(now time.Time) {
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(i.ips, ip)
		}
	}
	i.lastSweep = now
}

// RateLimit rejects clients that exceed rps requests per second (with the
// given burst) with 429.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if burst <= 0 {
		burst = 1
	}
	rl := newIPRateLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}
