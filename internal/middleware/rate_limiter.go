package middleware

import (
	"net/http"
	"sync"
	"time"

	"comanda/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

type ventana struct {
	count int
	fin   time.Time
}

// RateLimiter counts requests per client IP in fixed windows. Expired
// entries are purged lazily while serving requests.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	entries   map[string]*ventana
	lastPurge time.Time
	now       func() time.Time
	msg       string
}

func NewRateLimiter(limit int, window time.Duration, msg string) *RateLimiter {
	if msg == "" {
		msg = "Demasiadas solicitudes. Intente nuevamente en un momento."
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*ventana),
		now:     time.Now,
		msg:     msg,
	}
}

// allow records one hit for key and reports whether it fits the window.
func (l *RateLimiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPurge) >= purgeInterval {
		l.purge(now)
	}
	e, ok := l.entries[key]
	if !ok || now.After(e.fin) {
		e = &ventana{fin: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.fin
}

// must hold mu
func (l *RateLimiter) purge(now time.Time) {
	purged := 0
	for k, e := range l.entries {
		if now.After(e.fin) {
			delete(l.entries, k)
			purged++
		}
	}
	l.lastPurge = now
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter purged")
	}
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", fin.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits PIN attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return NewRateLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").Middleware()
}
