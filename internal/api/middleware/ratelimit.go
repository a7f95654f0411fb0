package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/m04kA/SMC-TurnService/internal/api/handlers"
)

const msgRateLimited = "تم تجاوز الحد الأقصى للطلبات. يرجى المحاولة مرة أخرى لاحقاً."

// bucket токен-бакет одного клиента
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter ограничитель частоты запросов по IP клиента
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	ratePerSec float64
	burst      float64
	logger     Logger
}

// NewRateLimiter создает ограничитель: requestsPerMinute запросов в минуту
// с допустимым всплеском burst
func NewRateLimiter(requestsPerMinute, burst int, logger Logger) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		ratePerSec: float64(requestsPerMinute) / 60.0,
		burst:      float64(burst),
		logger:     logger,
	}
}

// Middleware отбивает запросы сверх лимита кодом 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			rl.logger.Warn("RateLimit: too many requests from %s: %s %s", ip, r.Method, r.URL.Path)
			handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[ip] = b
	}

	// Пополняем бакет за прошедшее время
	elapsed := now.Sub(b.lastSeen).Seconds()
	b.tokens += elapsed * rl.ratePerSec
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// CleanupLoop периодически выбрасывает бакеты давно молчащих клиентов.
// Останавливается закрытием stopCh.
func (rl *RateLimiter) CleanupLoop(interval, maxIdle time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if time.Since(b.lastSeen) > maxIdle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		case <-stopCh:
			return
		}
	}
}

// clientIP достает IP клиента из X-Forwarded-For или RemoteAddr
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
