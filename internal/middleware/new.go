package middleware

import (
	"context"
	"net"
	"strings"

	"pastalink-bot/pkg/log"
	"pastalink-bot/pkg/ratelimit"
)

// HeaderTelegramSecret carries the secret registered with setWebhook.
const HeaderTelegramSecret = "X-Telegram-Bot-Api-Secret-Token"

// Config guards the webhook and admin routes.
type Config struct {
	WebhookSecret   string
	AllowedIPs      []string // plain addresses or CIDR ranges; empty allows all
	RateLimitPerMin int      // per client IP; non-positive disables
	StatsToken      string
}

type Middleware struct {
	l          log.Logger
	cfg        Config
	allowedIPs []net.IP
	allowedNet []*net.IPNet
	limiter    *ratelimit.Limiter
}

func New(l log.Logger, cfg Config) Middleware {
	m := Middleware{l: l, cfg: cfg}

	for _, entry := range cfg.AllowedIPs {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, ipNet, err := net.ParseCIDR(entry)
			if err != nil {
				l.Warnf(context.Background(), "middleware.New: skipping invalid CIDR %q: %v", entry, err)
				continue
			}
			m.allowedNet = append(m.allowedNet, ipNet)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			l.Warnf(context.Background(), "middleware.New: skipping invalid IP %q", entry)
			continue
		}
		m.allowedIPs = append(m.allowedIPs, ip)
	}

	if cfg.RateLimitPerMin > 0 {
		m.limiter = ratelimit.New(ratelimit.Config{PerMinute: cfg.RateLimitPerMin})
	}
	return m
}
