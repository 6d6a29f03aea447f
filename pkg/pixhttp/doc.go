// Package pixhttp serves static PIX payments over HTTP.
//
// NewHandler returns a chi router with these routes:
//
//	GET  /              HTML page with the QR code and the copy-and-paste payload
//	GET  /qrcode.png    the QR code as a PNG image
//	GET  /payload       the payload as plain text
//	POST /api/payloads  JSON API, returns {"data":{"payload","checksum","qrcode"}}
//	GET  /health/live   liveness probe
//	GET  /health/ready  readiness probe
//
// The GET routes encode the merchant defaults from Config. The query
// parameters amount, description, identifier and single_use override them
// per request. Validation failures are answered with 422 and a JSON body of
// the form {"error":{"code","message","details"}}, where details maps field
// names to messages. A payment whose key and description do not fit the
// merchant account data object is a validation failure too.
//
// Error messages are English by default and Portuguese when the request asks
// for it through the lang query parameter or cookie, or Accept-Language.
// WithTranslator replaces the bundled messages.
//
// Rendered PNGs are cached by payload in an in-process LRU. WithImageStore
// adds a shared tier such as redis.ImageStore. The image routes are rate
// limited per client IP when Config.RateLimit is set.
//
//	h, err := pixhttp.NewHandler(cfg,
//		pixhttp.WithLogger(log),
//		pixhttp.WithImageStore(redis.NewImageStore(client, "pix:qrcode:"), time.Hour),
//		pixhttp.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
package pixhttp
