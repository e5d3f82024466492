package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// IPRateLimiter 按客户端 IP 维护令牌桶
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    time.Duration
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// NewIPRateLimiter 创建限流器；requestsPerMinute <= 0 时返回 nil，表示不限流
func NewIPRateLimiter(requestsPerMinute, burst int) *IPRateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    time.Minute / time.Duration(requestsPerMinute),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow 判断该 IP 当前是否还有可用令牌
func (l *IPRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccessed = l.now()
	l.mu.Unlock()
	return entry.limiter.Allow()
}

// Cleanup 移除长时间未访问的 IP，返回移除数量。由定时任务调用。
func (l *IPRateLimiter) Cleanup() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.idleTTL)
	removed := 0
	for ip, entry := range l.limiters {
		if entry.lastAccessed.Before(cutoff) {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}

// Middleware 超出限额时返回 429
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			logrus.WithFields(logrus.Fields{
				"client_ip": ip,
				"path":      c.FullPath(),
			}).Warn("rate limit exceeded")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, APIError{
				Code:    ErrCodeRateLimited,
				Message: "too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
