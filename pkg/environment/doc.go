// Package environment propagates the application environment (development,
// staging, production) through context.Context, HTTP requests and structured
// logs.
//
// Parse normalizes names read from configuration such as APP_ENV. Middleware
// attaches the value to every request so handlers can switch behaviour with
// IsProduction, for example to hide internal error details. LoggerExtractor
// feeds the value into loggers built by pkg/logger.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	handler = environment.Middleware(env)(handler)
//
// Missing values result in the zero value ("").
package environment
