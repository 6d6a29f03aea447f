package pixhttp

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/pixkit/pkg/cache"
	"github.com/dmitrymomot/pixkit/pkg/environment"
	"github.com/dmitrymomot/pixkit/pkg/httpserver"
	"github.com/dmitrymomot/pixkit/pkg/i18n"
	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/ratelimiter"
)

// Option configures the handler built by NewHandler.
type Option func(*handler)

// WithLogger sets the logger used for request logs. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithEnvironment tags every request context with env.
func WithEnvironment(env environment.Environment) Option {
	return func(h *handler) {
		h.env = env
	}
}

// WithImageStore adds a shared second-level image cache, typically Redis.
func WithImageStore(store cache.Store, ttl time.Duration) Option {
	return func(h *handler) {
		if store != nil {
			h.cacheOpts = append(h.cacheOpts, cache.WithRemote(store, ttl))
		}
	}
}

// WithReadinessCheck registers a named check for /health/ready.
func WithReadinessCheck(name string, check httpserver.Check) Option {
	return func(h *handler) {
		if check != nil {
			h.checks[name] = check
		}
	}
}

// WithRenderer replaces the QR code renderer. Nil is ignored.
func WithRenderer(r pix.Renderer) Option {
	return func(h *handler) {
		if r != nil {
			h.renderer = r
		}
	}
}

// WithRateLimiter replaces the limiter guarding the image routes.
func WithRateLimiter(l ratelimiter.RateLimiter) Option {
	return func(h *handler) {
		h.limiter = l
	}
}

// WithTranslator replaces the bundled error message translations. Nil is ignored.
func WithTranslator(tr *i18n.Translator) Option {
	return func(h *handler) {
		if tr != nil {
			h.tr = tr
		}
	}
}
