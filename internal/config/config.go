// Package config loads c0ls's runtime configuration from the
// environment, the way the teacher's own config loader does: one
// struct, one LoadConfig, env vars with validated defaults.
package config

import (
	"os"
	"strconv"
)

// Config holds c0ls's runtime configuration.
type Config struct {
	// CacheDir is where build-stats cache entries (internal/cache) are
	// persisted between runs. Empty disables the on-disk cache.
	CacheDir string
	// MaxDiagnostics caps how many diagnostics all_diagnostics reports
	// per file before truncating, to keep editor UIs responsive on
	// pathological input.
	MaxDiagnostics int
	// Concurrency bounds how many files the build's lex+parse+lower
	// front-half processes in parallel.
	Concurrency int
	// StdlibOverrideDir is read from C0LS_STDLIB_DIR. Nothing consults
	// it: the build always checks internal/stdlib's compiled-in header
	// copies.
	StdlibOverrideDir string
	// UnreachableCode toggles whether statics reports unreachable
	// statements as diagnostics (spec §4.j's build-time switch).
	UnreachableCode bool
}

// LoadConfig reads Config from the environment, falling back to
// defaults for unset, empty, or out-of-range values.
func LoadConfig() *Config {
	cfg := &Config{
		CacheDir:          os.Getenv("C0LS_CACHE_DIR"),
		MaxDiagnostics:    200,
		Concurrency:       4,
		StdlibOverrideDir: os.Getenv("C0LS_STDLIB_DIR"),
		UnreachableCode:   false,
	}

	if v := os.Getenv("C0LS_MAX_DIAGNOSTICS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxDiagnostics = n
		}
	}
	if v := os.Getenv("C0LS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv("C0LS_UNREACHABLE_CODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UnreachableCode = b
		}
	}

	return cfg
}
