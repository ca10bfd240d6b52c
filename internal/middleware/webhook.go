package middleware

import (
	"crypto/subtle"
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"pastalink-bot/internal/metrics"
	"pastalink-bot/pkg/response"
)

// TelegramSecret rejects requests whose secret header does not match.
// An empty configured secret disables the check.
func (m Middleware) TelegramSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg.WebhookSecret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(HeaderTelegramSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.cfg.WebhookSecret)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.TelegramSecret: bad secret from %s", c.ClientIP())
			metrics.WebhookUpdates.WithLabelValues(metrics.UpdateRejected).Inc()
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// AllowIPs rejects clients outside the allow list.
func (m Middleware) AllowIPs() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.ipAllowed(c.ClientIP()) {
			m.l.Warnf(c.Request.Context(), "middleware.AllowIPs: IP %s not whitelisted", c.ClientIP())
			metrics.WebhookUpdates.WithLabelValues(metrics.UpdateRejected).Inc()
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// RateLimit throttles each client IP.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}
		if err := m.limiter.Allow(c.ClientIP()); err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: %v", err)
			metrics.WebhookUpdates.WithLabelValues(metrics.UpdateRateLimited).Inc()
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

// StatsToken requires "Authorization: Bearer <token>".
func (m Middleware) StatsToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if m.cfg.StatsToken == "" || !ok ||
			subtle.ConstantTimeCompare([]byte(token), []byte(m.cfg.StatsToken)) != 1 {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

func (m Middleware) ipAllowed(raw string) bool {
	if len(m.allowedIPs) == 0 && len(m.allowedNet) == 0 {
		return true
	}
	ip := net.ParseIP(raw)
	if ip == nil {
		return false
	}
	for _, allowed := range m.allowedIPs {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, n := range m.allowedNet {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
