// Package clientip resolves the originating client's IP address of an
// *http.Request served behind reverse proxies.
//
// GetIP walks ProxyHeaders in order (CF-Connecting-IP, X-Forwarded-For,
// X-Real-IP) and falls back to RemoteAddr. Invalid values are skipped, so a
// malformed header never hides a valid one further down the list.
//
// Middleware stores the resolved address in the request context where
// FromContext, the rate limiter and the logger extractor pick it up.
//
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware)
//
// GetIP never returns an error. An empty string means no address was found.
package clientip
