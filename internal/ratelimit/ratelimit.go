package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"tenure/internal/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter — пер-IP ограничитель запросов поверх token bucket.
// Окно и лимит берутся из RATE_LIMIT_WINDOW_MS / RATE_LIMIT_MAX_REQUESTS.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New создаёт лимитер: maxRequests запросов на окно window с каждого IP.
func New(window time.Duration, maxRequests int) *Limiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &Limiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:    maxRequests,
	}
	go l.cleanup(window)
	return l
}

func (l *Limiter) visitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup периодически выбрасывает IP, не появлявшиеся дольше трёх окон.
func (l *Limiter) cleanup(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for range ticker.C {
		threshold := time.Now().Add(-3 * window)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if v.lastSeen.Before(threshold) {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware отклоняет избыточные запросы кодом 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.visitor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, response.ErrorResponse{
				Error:   "RATE_LIMITED",
				Message: "Слишком много запросов, попробуйте позже",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
