package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func defaultsConfig() *Config {
	return &Config{
		Addr:        defaultAddr,
		Port:        defaultPort,
		DBStr:       defaultDBStr,
		MigratePath: defaultMigratePath,
		TokenTTL:    defaultTokenTTL,
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_STR", "postgres://x:y@localhost:5432/z")
	t.Setenv("SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "30m")

	cfg := defaultsConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "127.0.0.1", cfg.Addr)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://x:y@localhost:5432/z", cfg.DBStr)
	assert.Equal(t, "env-secret", cfg.Secret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestApplyEnvOverridesRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "PORT", value: "http"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "negative ttl", key: "TOKEN_TTL", value: "-5m"},
		{name: "ttl not a duration", key: "TOKEN_TTL", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := defaultsConfig()
			applyEnvOverrides(cfg)
			assert.Equal(t, defaultPort, cfg.Port)
			assert.Equal(t, defaultTokenTTL, cfg.TokenTTL)
		})
	}
}
