package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// CredentialThrottle slows down password guessing against the auth
// endpoints with a per-IP token bucket.
type CredentialThrottle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewCredentialThrottle allows r attempts per second with the given burst.
// For "5 per minute" pass rate.Every(12*time.Second) with burst 5.
func NewCredentialThrottle(r rate.Limit, burst int) *CredentialThrottle {
	t := &CredentialThrottle{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    burst,
	}
	go t.evictIdle()
	return t
}

// Middleware returns the mux middleware enforcing the throttle.
func (t *CredentialThrottle) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !t.allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (t *CredentialThrottle) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.rate, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// evictIdle drops visitors not seen for 10 minutes so the map stays bounded.
func (t *CredentialThrottle) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		t.mu.Lock()
		for ip, v := range t.visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(t.visitors, ip)
			}
		}
		t.mu.Unlock()
	}
}

// clientIP prefers proxy headers so deployments behind a reverse proxy
// throttle the real client, not the proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
