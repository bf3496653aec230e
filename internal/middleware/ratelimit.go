package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/hemoscan-screening-server/internal/domain"
)

// RateLimiter applies a token-bucket limit per client IP. Limiters live in a
// bounded LRU so an address scan cannot grow the table without limit.
type RateLimiter struct {
	logger   *logrus.Logger
	limiters *lru.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
}

// NewRateLimiter creates a per-client rate limiter.
func NewRateLimiter(config domain.RateLimitConfig, logger *logrus.Logger) (*RateLimiter, error) {
	maxClients := config.MaxClients
	if maxClients <= 0 {
		maxClients = 4096
	}

	limiters, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		logger:   logger,
		limiters: limiters,
		rps:      rate.Limit(config.RequestsPerSecond),
		burst:    config.Burst,
	}, nil
}

// limiterFor returns the token bucket for a client, creating it on first use.
func (r *RateLimiter) limiterFor(clientIP string) *rate.Limiter {
	if limiter, ok := r.limiters.Get(clientIP); ok {
		return limiter
	}
	limiter := rate.NewLimiter(r.rps, r.burst)
	r.limiters.Add(clientIP, limiter)
	return limiter
}

// Handler returns the gin middleware enforcing the limit.
func (r *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !r.limiterFor(clientIP).Allow() {
			r.logger.WithFields(logrus.Fields{
				"client_ip":      clientIP,
				"correlation_id": c.GetString("correlation_id"),
			}).Warn("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":      domain.ErrRateLimit,
				"message":   "Too many requests, slow down",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		c.Next()
	}
}
