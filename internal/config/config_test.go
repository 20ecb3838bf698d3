package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearConfigEnvVars() {
	for _, v := range []string{
		"C0LS_CACHE_DIR", "C0LS_MAX_DIAGNOSTICS", "C0LS_CONCURRENCY",
		"C0LS_STDLIB_DIR", "C0LS_UNREACHABLE_CODE",
	} {
		os.Unsetenv(v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	cfg := LoadConfig()
	assert.Equal(t, "", cfg.CacheDir)
	assert.Equal(t, 200, cfg.MaxDiagnostics)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "", cfg.StdlibOverrideDir)
	assert.False(t, cfg.UnreachableCode)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("C0LS_CACHE_DIR", "/tmp/c0ls-cache")
	os.Setenv("C0LS_MAX_DIAGNOSTICS", "50")
	os.Setenv("C0LS_CONCURRENCY", "8")
	os.Setenv("C0LS_STDLIB_DIR", "/opt/c0-headers")
	os.Setenv("C0LS_UNREACHABLE_CODE", "true")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/c0ls-cache", cfg.CacheDir)
	assert.Equal(t, 50, cfg.MaxDiagnostics)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "/opt/c0-headers", cfg.StdlibOverrideDir)
	assert.True(t, cfg.UnreachableCode)
}

func TestLoadConfig_InvalidFallsBackToDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("C0LS_MAX_DIAGNOSTICS", "not-a-number")
	os.Setenv("C0LS_CONCURRENCY", "-1")
	os.Setenv("C0LS_UNREACHABLE_CODE", "not-a-bool")

	cfg := LoadConfig()
	assert.Equal(t, 200, cfg.MaxDiagnostics)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.False(t, cfg.UnreachableCode)
}

func TestLoadConfig_ZeroMaxDiagnosticsAccepted(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("C0LS_MAX_DIAGNOSTICS", "0")
	cfg := LoadConfig()
	assert.Equal(t, 0, cfg.MaxDiagnostics)
}
