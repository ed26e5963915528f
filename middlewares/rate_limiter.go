package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string]*rate.Limiter
	mu       sync.Mutex
}

// NewRateLimiter allows count requests per interval seconds for each IP.
func NewRateLimiter(count int, interval int) *RateLimiter {
	if count <= 0 {
		count = 1
	}
	if interval <= 0 {
		interval = 1
	}
	return &RateLimiter{
		rate:     count,
		interval: time.Duration(interval) * time.Second,
		ips:      make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.ips[ip]
	if !ok {
		l = rate.NewLimiter(rate.Every(rl.interval/time.Duration(rl.rate)), rl.rate)
		rl.ips[ip] = l
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}

// CheckoutRateLimiter melindungi backend dari double-submit close bill
func CheckoutRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Second), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "Too many checkout requests, please wait",
			})
			return
		}
		c.Next()
	}
}
