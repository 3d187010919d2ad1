// Package config loads qrgen settings from `.env` files and environment
// variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - ReadEnv merges one or more `.env` files (later files win). Without
//     arguments it reads `./.env` when present.
//   - Parse fills any struct from an environment map using `env` tags.
//   - Load combines both for Config: file values first, then the process
//     environment on top, then Validate.
//
// The process environment is never modified.
//
// # Variables
//
//	APP_ENV             development | production (default development)
//	LOG_LEVEL           debug | info | warn | error (default info)
//	LOG_FORMAT          json | text (default: chosen by APP_ENV)
//	QRGEN_ENGINE        native | skip2 | rsc (default native)
//	QRGEN_SCALE         pixels per module, >= 1 (default 4)
//	QRGEN_MARGIN        quiet zone in modules, >= 0 (default 4)
//	QRGEN_FOREGROUND    dark module colour, #rgb or #rrggbb (default #000000)
//	QRGEN_BACKGROUND    light module colour (default #ffffff)
//	QRGEN_DOWNLOAD_DIR  export directory (default .)
//
// # Usage
//
//	cfg, err := config.Load("config/.env")
//	if err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrLoadingEnvFile` – an explicitly requested file could not be read.
//   - `ErrParsingConfig`  – a value could not be converted to its field type.
//   - `ErrInvalidConfig`  – values parsed but are out of range; every
//     offending variable is listed in the joined error.
//   - `ErrNilPointer`     – nil pointer passed to Parse.
package config
