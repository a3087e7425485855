package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter лимитер одного клиента с отметкой последнего обращения
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	cleanupInterval = 5 * time.Minute
	clientIdleTTL   = 10 * time.Minute
)

// RateLimiter ограничивает частоту запросов по IP клиента.
// Загрузка и сопоставление таблиц — CPU-затратные операции,
// лимит защищает сервис от бесконтрольной заливки файлов.
// Лимитеры молчащих клиентов выбрасываются лениво при очередном
// обращении, фоновых горутин лимитер не держит.
type RateLimiter struct {
	mu          sync.Mutex
	clients     map[string]*clientLimiter
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
}

// NewRateLimiter создает лимитер: rps запросов в секунду на клиента
// с указанным burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients:     make(map[string]*clientLimiter),
		limit:       rate.Limit(rps),
		burst:       burst,
		lastCleanup: time.Now(),
	}
}

// Middleware возвращает gin-обработчик, отклоняющий запросы сверх лимита
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   true,
				"message": "Demasiadas peticiones, inténtelo de nuevo más tarde",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastCleanup) > cleanupInterval {
		rl.cleanupLocked(now)
	}

	cl, exists := rl.clients[clientIP]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[clientIP] = cl
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}

// cleanupLocked выбрасывает лимитеры давно молчащих клиентов. Вызывается
// под mu.
func (rl *RateLimiter) cleanupLocked(now time.Time) {
	cutoff := now.Add(-clientIdleTTL)
	for ip, cl := range rl.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
	rl.lastCleanup = now
}
