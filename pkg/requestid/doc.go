// Package requestid attaches correlation identifiers to HTTP requests.
//
// Middleware reuses a client-supplied X-Request-ID header when it is short
// and made of [a-zA-Z0-9_-], otherwise it generates a UUIDv4. The ID is
// stored in the request context, echoed in the response header and picked up
// by loggers through LoggerExtractor.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
