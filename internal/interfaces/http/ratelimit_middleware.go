package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraTrack-api/internal/application/dto"
)

// rateLimiter ventana fija en memoria, acotada. Suficiente para un despliegue
// de instancia única; un despliegue horizontal necesitaría un contador externo
// compartido.
type rateLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	buckets map[string]*rateBucket
	limit   int
	window  time.Duration
	maxKeys int
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		now:     time.Now,
		buckets: make(map[string]*rateBucket),
		limit:   limit,
		window:  window,
		maxKeys: 10000,
	}
}

// allow registra un intento para la clave y decide si pasa.
func (rl *rateLimiter) allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.buckets[key]
	if ok && now.After(bucket.windowEnd) {
		delete(rl.buckets, key)
		ok = false
	}
	if !ok {
		if len(rl.buckets) >= rl.maxKeys {
			rl.gc(now)
		}
		if len(rl.buckets) >= rl.maxKeys {
			// Mapa lleno incluso tras gc: mejor frenar que crecer sin límite.
			return false
		}
		bucket = &rateBucket{windowEnd: now.Add(rl.window)}
		rl.buckets[key] = bucket
	}
	if bucket.count >= rl.limit {
		return false
	}
	bucket.count++
	return true
}

func (rl *rateLimiter) gc(now time.Time) {
	for key, bucket := range rl.buckets {
		if now.After(bucket.windowEnd) {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit limita por IP los endpoints sensibles (login, set-password).
// Responde 429 cuando se agota la ventana.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	rl := newRateLimiter(limit, window)
	return func(c *fiber.Ctx) error {
		if !rl.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiados intentos, espere un momento",
			})
		}
		return c.Next()
	}
}
