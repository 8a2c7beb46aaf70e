// internal/middleware/rate_limit_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

func TestLimiterPoolAllow(t *testing.T) {
	p := newLimiterPool(rate.Every(time.Hour), 2)

	assert.True(t, p.allow("10.0.0.1"))
	assert.True(t, p.allow("10.0.0.1"))
	assert.False(t, p.allow("10.0.0.1"), "burst exhausted")

	// Other clients keep their own bucket.
	assert.True(t, p.allow("10.0.0.2"))
}

func TestLimiterPoolSweepsIdleClients(t *testing.T) {
	p := newLimiterPool(rate.Every(time.Hour), 1)
	p.allow("10.0.0.1")

	p.mu.Lock()
	p.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * bucketIdleTTL)
	p.nextScan = time.Now().Add(-time.Second)
	p.mu.Unlock()

	// Fresh traffic from another client triggers the sweep.
	p.allow("10.0.0.2")

	p.mu.Lock()
	_, kept := p.clients["10.0.0.1"]
	p.mu.Unlock()
	assert.False(t, kept)
}

func TestRateLimitMiddlewareEnvelope(t *testing.T) {
	p := newLimiterPool(rate.Every(time.Hour), 1)

	r := gin.New()
	r.Use(I18nMiddleware(), p.middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Envelope[any]{Code: models.CodeSuccess})
	})

	get := func() models.Envelope[json.RawMessage] {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var env models.Envelope[json.RawMessage]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		return env
	}

	assert.Equal(t, models.CodeSuccess, get().Code)

	throttled := get()
	assert.Equal(t, models.CodeThrottled, throttled.Code)
	assert.NotEmpty(t, throttled.Message)
}
