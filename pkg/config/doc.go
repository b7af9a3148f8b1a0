// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv reads one or more `.env` files into the process environment
//     (the default `.env` in the working directory when no path is given).
//   - Load parses the environment into any struct annotated with `env` tags.
//   - Each configuration type is parsed once and cached for the lifetime of
//     the process. ForceReload and ResetCache drop cached values, which is
//     mostly useful in tests.
//   - MustLoad and MustLoadEnv panic on failure for configuration the service
//     cannot start without.
//
// # Usage
//
//	type GuardConfig struct {
//	    Enabled     bool     `env:"GUARD_ENABLED" envDefault:"true"`
//	    MaxBodySize int64    `env:"GUARD_MAX_BODY_SIZE" envDefault:"1048576"`
//	    SkipFields  []string `env:"GUARD_SKIP_FIELDS" envSeparator:","`
//	}
//
//	import "github.com/dmitrymomot/clinickit/pkg/config"
//
//	func main() {
//	    if err := config.LoadEnv("./deploy/.env"); err != nil {
//	        log.Fatalf("loading env: %v", err)
//	    }
//
//	    var cfg GuardConfig
//	    config.MustLoad(&cfg)
//	}
//
// A failed parse is not cached, so a later Load call sees a corrected
// environment.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`: env vars could not be parsed into the struct.
//   - `ErrLoadingEnvFile`: a requested `.env` file could not be read.
//   - `ErrConfigNotLoaded`: no cached value exists after a parse.
//   - `ErrNilPointer`: a nil pointer was passed to Load.
//
// Parse errors are joined with the underlying `env` error so callers can log
// which variable failed.
package config
