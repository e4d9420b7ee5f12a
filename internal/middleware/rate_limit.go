// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

const visitorIdleTimeout = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks one token bucket per client IP. Idle entries are evicted
// so the map stays bounded.
type RateLimiter struct {
	mtx      sync.Mutex
	visitors map[string]*visitor
	refill   rate.Limit
	burst    int
}

func NewRateLimiter(refill rate.Limit, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		refill:   refill,
		burst:    burst,
	}
	go rl.evictIdle()
	return rl
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > visitorIdleTimeout {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.refill, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Limiters bundles the per-route limiters, sized from configuration.
type Limiters struct {
	general  *RateLimiter
	upload   *RateLimiter
	validate *RateLimiter
}

func NewLimiters(cfg config.RateLimitConfig) *Limiters {
	return &Limiters{
		general:  NewRateLimiter(rate.Every(time.Second), cfg.GeneralPerSecond),
		upload:   NewRateLimiter(rate.Every(time.Minute), cfg.UploadsPerMinute),
		validate: NewRateLimiter(rate.Every(time.Second), cfg.ValidatePerSecond),
	}
}

func (l *Limiters) General() gin.HandlerFunc  { return l.general.Middleware() }
func (l *Limiters) Upload() gin.HandlerFunc   { return l.upload.Middleware() }
func (l *Limiters) Validate() gin.HandlerFunc { return l.validate.Middleware() }
