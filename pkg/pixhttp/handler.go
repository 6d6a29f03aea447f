package pixhttp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/pixkit/pkg/cache"
	"github.com/dmitrymomot/pixkit/pkg/clientip"
	"github.com/dmitrymomot/pixkit/pkg/environment"
	"github.com/dmitrymomot/pixkit/pkg/httpserver"
	"github.com/dmitrymomot/pixkit/pkg/i18n"
	"github.com/dmitrymomot/pixkit/pkg/logger"
	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/qrcode"
	"github.com/dmitrymomot/pixkit/pkg/ratelimiter"
	"github.com/dmitrymomot/pixkit/pkg/requestid"
)

// CacheHeader reports which cache tier served a rendered image.
const CacheHeader = "X-Cache"

type handler struct {
	cfg       Config
	log       *slog.Logger
	env       environment.Environment
	renderer  pix.Renderer
	images    *cache.Layered
	cacheOpts []cache.LayeredOption
	limiter   ratelimiter.RateLimiter
	checks    map[string]httpserver.Check
	tr        *i18n.Translator
	page      *template.Template
}

// NewHandler returns the router serving the payment page, the QR image, the
// payload text, the JSON API and the health probes.
//
// The configured merchant defaults are built and encoded up front, so a
// handler is never returned for a payment that cannot be encoded. Error
// messages follow the request language (English or Portuguese).
func NewHandler(cfg Config, opts ...Option) (http.Handler, error) {
	h := &handler{
		cfg:      cfg,
		log:      slog.New(slog.DiscardHandler),
		env:      environment.Development,
		renderer: qrcode.NewRenderer(qrcode.WithSize(cfg.QRSize)),
		checks:   make(map[string]httpserver.Check),
		page:     pageTemplate,
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := h.checkDefaults(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if h.tr == nil {
		tr, err := defaultTranslator(context.Background(), i18n.WithLogger(h.log))
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		h.tr = tr
	}

	h.images = cache.NewLayered(max(cfg.CacheSize, 1), append(h.cacheOpts,
		cache.WithErrorHandler(func(err error) {
			h.log.Warn("image cache unavailable", logger.Component("pixhttp"), logger.Error(err))
		}))...)

	if h.limiter == nil && cfg.RateLimit.RequestsPerSecond > 0 {
		bucket, err := ratelimiter.NewBucket(cfg.RateLimit)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		h.limiter = bucket
	}

	return h.routes(), nil
}

func (h *handler) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(h.env),
		i18n.Middleware(i18n.DefaultLangExtractor(
			i18n.WithSupportedLanguages(h.tr.SupportedLanguages()...),
		)),
		h.logRequests,
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.HealthCheckHandler(h.log, h.checks))
	r.Get("/payload", h.payload)

	r.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(ratelimiter.Middleware(h.limiter, ratelimiter.ByIP))
		}
		r.Get("/", h.index)
		r.Get("/qrcode.png", h.qrcode)
		r.Post("/api/payloads", h.createPayload)
	})

	return r
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	g, err := h.generatorFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	payload, png, err := h.render(w, r, g)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, pageData{
		Payload:     payload,
		QRCode:      template.URL(qrcode.DataURI(png)),
		Beneficiary: g.Beneficiary(),
		City:        g.City(),
		Amount:      g.Amount().StringFixed(2),
		Description: g.Description(),
	}); err != nil {
		h.log.ErrorContext(r.Context(), "render page", logger.Component("pixhttp"), logger.Error(err))
	}
}

func (h *handler) qrcode(w http.ResponseWriter, r *http.Request) {
	g, err := h.generatorFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	_, png, err := h.render(w, r, g)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(png)
}

func (h *handler) payload(w http.ResponseWriter, r *http.Request) {
	g, err := h.generatorFromQuery(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	payload, err := g.Encode()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(payload))
}

func (h *handler) createPayload(w http.ResponseWriter, r *http.Request) {
	g, err := h.generatorFromBody(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	payload, png, err := h.render(w, r, g)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, envelope{Data: payloadResponse{
		Payload:  payload,
		Checksum: payload[len(payload)-4:],
		QRCode:   qrcode.DataURI(png),
	}})
}

// render encodes g and returns the PNG for it, going through the image cache.
// The serving tier is reported in CacheHeader.
func (h *handler) render(w http.ResponseWriter, r *http.Request, g *pix.Generator) (string, []byte, error) {
	payload, err := g.Encode()
	if err != nil {
		return "", nil, err
	}

	key := fmt.Sprintf("%d:%s", h.cfg.QRSize, payload)
	png, source, err := h.images.GetOrCompute(r.Context(), key, func() ([]byte, error) {
		return g.Render(false)
	})
	if err != nil {
		return "", nil, err
	}
	w.Header().Set(CacheHeader, string(source))

	h.log.DebugContext(r.Context(), "payload rendered",
		logger.Component("pixhttp"),
		logger.KeyKind(g.KeyKind()),
		logger.Amount(g.Amount()),
		logger.PayloadChecksum(payload),
		slog.String("cache", string(source)),
	)
	return payload, png, nil
}
