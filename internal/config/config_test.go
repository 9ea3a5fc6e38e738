package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8480",
		JWTSecret:  strings.Repeat("s", 40),
		DBPassword: "a-real-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid production config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "default jwt secret in production",
			mutate:  func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" },
			wantErr: "changed from the default",
		},
		{
			name:    "short jwt secret in production",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: "at least 32 characters",
		},
		{
			name:    "default db password in production",
			mutate:  func(c *Config) { c.DBPassword = "password" },
			wantErr: "strong DB_PASSWORD",
		},
		{
			name:    "empty db password in production",
			mutate:  func(c *Config) { c.DBPassword = "" },
			wantErr: "strong DB_PASSWORD",
		},
		{
			name: "prod alias enforced",
			mutate: func(c *Config) {
				c.Env = "prod"
				c.JWTSecret = "short"
			},
			wantErr: "at least 32 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validProductionConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_DevelopmentIsLenient(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:      "8480",
		JWTSecret: "short-dev-secret",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
}
