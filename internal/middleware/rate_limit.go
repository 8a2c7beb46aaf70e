// internal/middleware/rate_limit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

// Per-client token buckets, keyed by IP. Throttled requests still answer
// HTTP 200 with an envelope code, same as every other failure.

type clientBucket struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	every rate.Limit
	burst int

	mu       sync.Mutex
	clients  map[string]*clientBucket
	nextScan time.Time
}

// Buckets idle longer than this are dropped; by then they have refilled
// anyway, so forgetting them changes nothing for the client.
const bucketIdleTTL = 3 * time.Minute

func newLimiterPool(every rate.Limit, burst int) *limiterPool {
	return &limiterPool{
		every:    every,
		burst:    burst,
		clients:  make(map[string]*clientBucket),
		nextScan: time.Now().Add(bucketIdleTTL),
	}
}

// allow takes one token from the caller's bucket, creating it on first
// sight. Stale entries are swept inline; there is no janitor goroutine.
func (p *limiterPool) allow(ip string) bool {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if now.After(p.nextScan) {
		for key, cb := range p.clients {
			if now.Sub(cb.lastSeen) > bucketIdleTTL {
				delete(p.clients, key)
			}
		}
		p.nextScan = now.Add(bucketIdleTTL)
	}

	cb, ok := p.clients[ip]
	if !ok {
		cb = &clientBucket{bucket: rate.NewLimiter(p.every, p.burst)}
		p.clients[ip] = cb
	}
	cb.lastSeen = now
	return cb.bucket.Allow()
}

func (p *limiterPool) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.allow(c.ClientIP()) {
			utils.Error(c, models.CodeThrottled, i18n.T(utils.GetLangFromContext(c), i18n.KeyThrottled))
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	generalPool = newLimiterPool(rate.Every(time.Second), 20)
	authPool    = newLimiterPool(rate.Every(time.Minute), 10)
	uploadPool  = newLimiterPool(rate.Every(time.Minute), 10)
)

// GeneralRateLimit applies the whole-API budget of 20 requests per second
// per client.
func GeneralRateLimit() gin.HandlerFunc {
	return generalPool.middleware()
}

// AuthRateLimit throttles register and login to 10 attempts per minute
// per client.
func AuthRateLimit() gin.HandlerFunc {
	return authPool.middleware()
}

// UploadRateLimit allows 10 image uploads per minute per client.
func UploadRateLimit() gin.HandlerFunc {
	return uploadPool.middleware()
}
