package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	perMinute int
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
}

func newRateLimiterStore(perMinute int) *rateLimiterStore {
	if perMinute <= 0 {
		perMinute = 200
	}
	return &rateLimiterStore{perMinute: perMinute, limiters: make(map[string]*rate.Limiter)}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware limits requests per IP address to perMinute, with a burst of the
// same size.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	store := newRateLimiterStore(perMinute)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
