package guard

import "github.com/dmitrymomot/clinickit/pkg/config"

// Config controls request inspection. Values load from GUARD_* environment variables.
type Config struct {
	Enabled     bool  `env:"GUARD_ENABLED" envDefault:"true"`
	MaxBodySize int64 `env:"GUARD_MAX_BODY_SIZE" envDefault:"1048576"`
	MaxDepth    int   `env:"GUARD_MAX_DEPTH" envDefault:"32"`
	// DeepInspection also checks percent-decoded, entity-decoded and
	// NFKC-normalized forms of every value.
	DeepInspection bool `env:"GUARD_DEEP_INSPECTION" envDefault:"false"`
	// SkipFields names fields that are never inspected, either by key
	// ("password") or by dotted path ("patient.notes").
	SkipFields []string `env:"GUARD_SKIP_FIELDS" envSeparator:","`
	PolicyFile string   `env:"GUARD_POLICY_FILE"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		MaxBodySize: 1 << 20,
		MaxDepth:    32,
	}
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
