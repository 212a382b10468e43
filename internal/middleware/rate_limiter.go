package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// limiter is a fixed-window per-IP counter. Each limiter owns its map and a
// background sweep that drops IPs whose window has expired.
type limiter struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
	limite   int
	ancho    time.Duration
	mensaje  string
}

type ventana struct {
	cuenta int
	fin    time.Time
}

const purgeInterval = 5 * time.Minute

func newLimiter(limite int, ancho time.Duration, mensaje string) *limiter {
	l := &limiter{
		ventanas: make(map[string]*ventana),
		limite:   limite,
		ancho:    ancho,
		mensaje:  mensaje,
	}
	go l.purgar()
	return l
}

func (l *limiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.ventanas[ip]
	if !ok || now.After(v.fin) {
		v = &ventana{fin: now.Add(l.ancho)}
		l.ventanas[ip] = v
	}
	v.cuenta++
	return v.cuenta <= l.limite, v.fin
}

func (l *limiter) purgar() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purgadas := 0
		for ip, v := range l.ventanas {
			if now.After(v.fin) {
				delete(l.ventanas, ip)
				purgadas++
			}
		}
		l.mu.Unlock()

		if purgadas > 0 {
			log.Debug().Int("entradas", purgadas).Msg("rate limiter purgado")
		}
	}
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", fin.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter caps login attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter caps requests per IP at limit per window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
