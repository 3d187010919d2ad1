package config

import (
	"errors"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// defaultEnvFile is read when no explicit files are given. Its absence is not an error.
const defaultEnvFile = ".env"

// ReadEnv merges the given .env files into a single map, later files
// overriding earlier ones. Without paths it reads ./.env if present.
func ReadEnv(paths ...string) (map[string]string, error) {
	if len(paths) == 0 {
		values, err := godotenv.Read(defaultEnvFile)
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		if err != nil {
			return nil, errors.Join(ErrLoadingEnvFile, err)
		}
		return values, nil
	}

	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, errors.Join(ErrLoadingEnvFile, err)
	}
	return values, nil
}

// Parse populates v from environ using `env` struct tags. The process
// environment is used when environ is nil.
//
// Example:
//
//	type RenderConfig struct {
//		Scale  int `env:"QRGEN_SCALE" envDefault:"4"`
//		Margin int `env:"QRGEN_MARGIN" envDefault:"4"`
//	}
//
//	var cfg RenderConfig
//	if err := config.Parse(&cfg, nil); err != nil {
//		// Handle error
//	}
func Parse[T any](v *T, environ map[string]string) error {
	if v == nil {
		return ErrNilPointer
	}
	if environ == nil {
		environ = processEnv()
	}
	if err := env.ParseWithOptions(v, env.Options{Environment: environ}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// overlay returns file values with the process environment applied on top,
// so real environment variables always win over .env files.
func overlay(file map[string]string) map[string]string {
	merged := make(map[string]string, len(file))
	maps.Copy(merged, file)
	maps.Copy(merged, processEnv())
	return merged
}

func processEnv() map[string]string {
	environ := os.Environ()
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
