// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment
//     without overriding variables that are already set.
//   - Load parses the environment into any struct using `env` tags and caches
//     the result per type.
//   - MustLoad and MustLoadEnv panic on failure, for startup code.
//   - Reload and ResetCache drop cached values, mostly for tests.
//
// # Usage
//
//	type MerchantConfig struct {
//	    KeyKind string `env:"PIX_KEY_KIND" envDefault:"random"`
//	    Key     string `env:"PIX_KEY,required"`
//	    City    string `env:"PIX_CITY,required"`
//	}
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//	    log.Fatal(err)
//	}
//	var cfg MerchantConfig
//	config.MustLoad(&cfg)
//
// The default ./.env file is loaded automatically on the first Load call when
// it exists.
//
// # Error Handling
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile, ErrInvalidConfigType and ErrNilPointer.
package config
