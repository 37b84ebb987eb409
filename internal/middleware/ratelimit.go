package middleware

import (
	"net/http" // HTTP status codes
	"sync"     // Guarding the limiter map
	"time"     // Refill interval and idle eviction

	"github.com/gin-gonic/gin" // Gin web framework
	"golang.org/x/time/rate"   // Token bucket limiter
)

// limiterIdleTTL is how long an IP keeps its bucket without requests
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter // Token bucket of the IP
	lastSeen time.Time     // Last request from the IP
}

// IPRateLimiter keeps one token bucket per client IP
type IPRateLimiter struct {
	ips map[string]*ipLimiter // Limiter per IP
	mu  sync.Mutex            // Guards ips
	r   rate.Limit            // Refill rate
	b   int                   // Burst size
}

// NewIPRateLimiter allows perMinute requests per IP with the same burst.
// Idle buckets are dropped in the background.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	limiter := &IPRateLimiter{
		ips: make(map[string]*ipLimiter),
		r:   rate.Every(time.Minute / time.Duration(perMinute)),
		b:   perMinute,
	}
	go limiter.cleanup()
	return limiter
}

// GetLimiter returns the limiter of ip, creating it on first use
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	entry, exists := i.ips[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (i *IPRateLimiter) cleanup() {
	for {
		time.Sleep(limiterIdleTTL)
		i.evictIdle(time.Now().Add(-limiterIdleTTL))
	}
}

// evictIdle drops the buckets of IPs not seen since cutoff
func (i *IPRateLimiter) evictIdle(cutoff time.Time) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	evicted := 0
	for ip, entry := range i.ips {
		if entry.lastSeen.Before(cutoff) {
			delete(i.ips, ip)
			evicted++
		}
	}
	return evicted
}

// RateLimitMiddleware rejects clients that exceed their bucket with 429
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			return
		}
		c.Next()
	}
}
