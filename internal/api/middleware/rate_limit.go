package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/JorgeWendell/clinics/pkg/redis"
	"github.com/JorgeWendell/clinics/pkg/response"
)

// RateLimit allows limit requests per window for each client IP and route.
// Redis holds the shared sliding window; when rdb is nil or Redis fails the
// process-local token buckets take over.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(limit, window, localLimiterSize)

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())

		var allowed bool
		if rdb != nil {
			var err error
			allowed, err = rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
			if err != nil {
				allowed = local.allow(key)
			}
		} else {
			allowed = local.allow(key)
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// localLimiterSize caps the number of client buckets kept in memory;
// the least recently seen client is evicted first.
const localLimiterSize = 10000

type localLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	every    rate.Limit
	burst    int
}

func newLocalLimiter(limit int, window time.Duration, size int) *localLimiter {
	if limit <= 0 {
		limit = 1
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, *rate.Limiter](max(size, 1))
	return &localLimiter{
		limiters: cache,
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters.Add(key, lim)
	}
	l.mu.Unlock()
	return lim.Allow()
}
