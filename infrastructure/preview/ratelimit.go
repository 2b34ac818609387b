// ABOUTME: Per-client rate limiting middleware for the preview file server
// ABOUTME: Fixed-window request counting keyed by client IP

package preview

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per client inside a fixed time window.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
	stop    chan struct{}
}

type window struct {
	count   int
	started time.Time
}

// NewLimiter creates a limiter allowing limit requests per span for each
// client key. A background sweeper drops idle windows.
func NewLimiter(limit int, span time.Duration) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether one more request from key fits the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.started) > l.span {
		l.windows[key] = &window{count: 1, started: now}
		return true
	}

	if w.count < l.limit {
		w.count++
		return true
	}
	return false
}

// Close stops the background sweeper.
func (l *Limiter) Close() {
	close(l.stop)
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.span)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for key, w := range l.windows {
				if now.Sub(w.started) > l.span {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// RateLimit returns middleware that rejects over-limit clients with 429.
func RateLimit(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))

			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(limiter.span.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte("rate limit exceeded\n"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client address, honoring proxy headers. The first
// X-Forwarded-For entry is the originating client when a proxy chain is
// involved; RemoteAddr carries a port that must not split one client into
// many rate limit windows.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
