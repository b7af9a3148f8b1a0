package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry keeps one parsed copy per configuration type.
type registry struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	cache = &registry{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	dotenvOnce sync.Once
)

// LoadEnv reads the given .env files into the process environment. With no
// paths it reads ./.env. Variables that are already set keep their values,
// and earlier files win over later ones.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: load env files: %v", err))
	}
}

// Load parses environment variables into v using `env` struct tags.
// The first successful parse of a type is cached; later calls for the same
// type copy the cached value and do not look at the environment again.
//
// A ./.env file is read once per process before the first parse, if present.
//
//	type GuardConfig struct {
//		Enabled     bool  `env:"GUARD_ENABLED" envDefault:"true"`
//		MaxBodySize int64 `env:"GUARD_MAX_BODY_SIZE" envDefault:"1048576"`
//	}
//
//	var cfg GuardConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	if cached, ok := cache.get(key); ok {
		*v = cached.(T)
		return nil
	}

	cache.mu.Lock()
	once, ok := cache.onces[key]
	if !ok {
		once = new(sync.Once)
		cache.onces[key] = once
	}
	cache.mu.Unlock()

	var err error
	once.Do(func() {
		var parsed T
		if parseErr := env.Parse(&parsed); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			// Allow a later call to retry once the environment is fixed.
			cache.mu.Lock()
			delete(cache.onces, key)
			cache.mu.Unlock()
			return
		}

		cache.mu.Lock()
		cache.values[key] = parsed
		cache.mu.Unlock()
	})
	if err != nil {
		return err
	}

	if cached, ok := cache.get(key); ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if the configuration cannot be parsed.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: load required configuration: %v", err))
	}
}

// ForceReload drops the cached copy of T and parses it again.
func ForceReload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()
	cache.mu.Lock()
	delete(cache.values, key)
	delete(cache.onces, key)
	cache.mu.Unlock()

	return Load(v)
}

// ResetCache forgets every cached configuration. Intended for tests.
func ResetCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.values = make(map[string]any)
	cache.onces = make(map[string]*sync.Once)
}

func (r *registry) get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// typeKey identifies T by its package-qualified type name.
func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
