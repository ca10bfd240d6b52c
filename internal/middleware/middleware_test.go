package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pastalink-bot/pkg/log"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/hook", handlers...)
	return r
}

func do(r *gin.Engine, remote string, headers map[string]string) int {
	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.RemoteAddr = remote
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestTelegramSecret(t *testing.T) {
	m := New(log.NewNop(), Config{WebhookSecret: "s3cret"})
	r := newEngine(m.TelegramSecret())

	assert.Equal(t, http.StatusUnauthorized, do(r, "1.2.3.4:1", nil))
	assert.Equal(t, http.StatusUnauthorized, do(r, "1.2.3.4:1", map[string]string{HeaderTelegramSecret: "nope"}))
	assert.Equal(t, http.StatusOK, do(r, "1.2.3.4:1", map[string]string{HeaderTelegramSecret: "s3cret"}))

	open := newEngine(New(log.NewNop(), Config{}).TelegramSecret())
	assert.Equal(t, http.StatusOK, do(open, "1.2.3.4:1", nil))
}

func TestAllowIPs(t *testing.T) {
	m := New(log.NewNop(), Config{AllowedIPs: []string{"149.154.160.0/20", "10.0.0.7", "not-an-ip"}})
	r := newEngine(m.AllowIPs())

	assert.Equal(t, http.StatusOK, do(r, "149.154.167.200:443", nil))
	assert.Equal(t, http.StatusOK, do(r, "10.0.0.7:80", nil))
	assert.Equal(t, http.StatusForbidden, do(r, "8.8.8.8:53", nil))

	open := newEngine(New(log.NewNop(), Config{}).AllowIPs())
	assert.Equal(t, http.StatusOK, do(open, "8.8.8.8:53", nil))
}

func TestRateLimit(t *testing.T) {
	// 60/min gives a burst of 6.
	m := New(log.NewNop(), Config{RateLimitPerMin: 60})
	r := newEngine(m.RateLimit())

	for range 6 {
		assert.Equal(t, http.StatusOK, do(r, "5.5.5.5:1", nil))
	}
	assert.Equal(t, http.StatusTooManyRequests, do(r, "5.5.5.5:1", nil))
	assert.Equal(t, http.StatusOK, do(r, "6.6.6.6:1", nil))
}

func TestStatsToken(t *testing.T) {
	m := New(log.NewNop(), Config{StatsToken: "tok"})
	r := newEngine(m.StatsToken())

	assert.Equal(t, http.StatusUnauthorized, do(r, "1.1.1.1:1", nil))
	assert.Equal(t, http.StatusUnauthorized, do(r, "1.1.1.1:1", map[string]string{"Authorization": "Bearer bad"}))
	assert.Equal(t, http.StatusOK, do(r, "1.1.1.1:1", map[string]string{"Authorization": "Bearer tok"}))
}
