// Package ratelimit provides a per-client-IP token bucket for the auth
// endpoints.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxEntries = 10000

// IPRateLimiter keeps one token bucket per client IP. Entries idle for two
// cleanup intervals are dropped; the map is capped to avoid unbounded growth
// under address churn.
type IPRateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*limiterEntry
	rate           rate.Limit
	burst          int
	cleanup        time.Duration
	trustedProxies []*net.IPNet
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewIPRateLimiter creates a limiter allowing r requests per second with the
// given burst. trustedProxies lists CIDRs (or bare IPs) of reverse proxies
// whose forwarding headers may be believed; when empty, every proxy is
// trusted.
func NewIPRateLimiter(r rate.Limit, burst int, cleanup time.Duration, trustedProxies []string) *IPRateLimiter {
	l := &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     r,
		burst:    burst,
		cleanup:  cleanup,
	}

	for _, entry := range trustedProxies {
		if ipnet := parseCIDROrIP(entry); ipnet != nil {
			l.trustedProxies = append(l.trustedProxies, ipnet)
		}
	}

	go l.cleanupStale()
	return l
}

// Middleware rejects requests over the per-IP budget with 429.
func (l *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.limiterFor(l.clientIP(r)).Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= maxEntries {
			l.evictOldestLocked()
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter
}

func (l *IPRateLimiter) evictOldestLocked() {
	var oldestIP string
	var oldestTime time.Time
	for ip, entry := range l.limiters {
		if oldestIP == "" || entry.lastAccess.Before(oldestTime) {
			oldestIP = ip
			oldestTime = entry.lastAccess
		}
	}
	if oldestIP != "" {
		delete(l.limiters, oldestIP)
	}
}

func (l *IPRateLimiter) cleanupStale() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * l.cleanup)
		l.mu.Lock()
		for ip, entry := range l.limiters {
			if entry.lastAccess.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP resolves the originating client address, honoring forwarding
// headers only when the request comes from a trusted proxy.
func (l *IPRateLimiter) clientIP(r *http.Request) string {
	remoteIP := parseAddr(r.RemoteAddr)

	if len(l.trustedProxies) > 0 {
		trusted := false
		for _, ipnet := range l.trustedProxies {
			if ipnet.Contains(remoteIP) {
				trusted = true
				break
			}
		}
		if !trusted {
			return remoteIP.String()
		}
	}

	// The leftmost X-Forwarded-For entry is the originating client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if parsed := net.ParseIP(first); parsed != nil {
			return parsed.String()
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if parsed := net.ParseIP(xri); parsed != nil {
			return parsed.String()
		}
	}
	return remoteIP.String()
}

func parseCIDROrIP(s string) *net.IPNet {
	if _, ipnet, err := net.ParseCIDR(s); err == nil {
		return ipnet
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	suffix := "/32"
	if ip.To4() == nil {
		suffix = "/128"
	}
	_, ipnet, _ := net.ParseCIDR(s + suffix)
	return ipnet
}

func parseAddr(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}
