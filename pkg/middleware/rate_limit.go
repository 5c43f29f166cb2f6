package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "deskbooker/pkg/errors"
	"deskbooker/pkg/logger"

	"golang.org/x/time/rate"
)

const RequesterHeader = "X-Requester-Email"

type RequesterExtractor func(r *http.Request) string

type requesterLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RequesterRateLimiter allows each requester `limit` requests per `window`, refilled
// continuously. Requests without a requester identity are not limited.
type RequesterRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*requesterLimiter
	limit     rate.Limit
	burst     int
	window    time.Duration
	extractor RequesterExtractor
	log       *logger.Logger
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func NewRequesterRateLimiter(limit int, window time.Duration, extractor RequesterExtractor, log *logger.Logger) *RequesterRateLimiter {
	if extractor == nil {
		extractor = DefaultRequesterExtractor
	}
	if limit <= 0 {
		limit = 1
	}

	limiter := &RequesterRateLimiter{
		limiters:  make(map[string]*requesterLimiter),
		limit:     rate.Every(window / time.Duration(limit)),
		burst:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *RequesterRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, entry := range rl.limiters {
				if time.Since(entry.lastSeen) > rl.window {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RequesterRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RequesterRateLimiter) Allow(requester string) bool {
	if requester == "" {
		return true
	}

	rl.mu.Lock()
	entry, ok := rl.limiters[requester]
	if !ok {
		entry = &requesterLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[requester] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

func RequesterRateLimit(limiter *RequesterRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester := limiter.extractor(r)

			if !limiter.Allow(requester) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"requester", requester,
					"path", r.URL.Path,
				)
				writeAppError(w, apperrors.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func DefaultRequesterExtractor(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(r.Header.Get(RequesterHeader)))
}
