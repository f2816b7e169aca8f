package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			AppEnv:  "production",
			GinMode: "release",
			BaseURL: "https://portal.example.org",
		},
		Airtable: AirtableConfig{
			APIKey: "key123",
			BaseID: "appABC",
		},
		MagicLink: MagicLinkConfig{
			Secret:     "magic-secret",
			Salt:       "magic-link",
			TTLSeconds: 3600,
		},
		Session: SessionConfig{
			JWTSecret: "jwt-secret",
		},
		Email: EmailConfig{
			ResendAPIKey: "re_123",
			FromAddress:  "portal@example.org",
		},
		Admin: AdminConfig{
			PreviewKey: "admin-key",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "missing airtable api key",
			mutate: func(c *Config) { c.Airtable.APIKey = "" },
			errMsg: "AIRTABLE_API_KEY",
		},
		{
			name:   "missing airtable base id",
			mutate: func(c *Config) { c.Airtable.BaseID = "" },
			errMsg: "AIRTABLE_BASE_ID",
		},
		{
			name:   "missing magic link secret",
			mutate: func(c *Config) { c.MagicLink.Secret = "" },
			errMsg: "MAGIC_LINK_SECRET",
		},
		{
			name:   "missing jwt secret",
			mutate: func(c *Config) { c.Session.JWTSecret = "" },
			errMsg: "JWT_SECRET",
		},
		{
			name:   "missing admin key",
			mutate: func(c *Config) { c.Admin.PreviewKey = "" },
			errMsg: "ADMIN_KEY",
		},
		{
			name:   "missing resend key in production",
			mutate: func(c *Config) { c.Email.ResendAPIKey = "" },
			errMsg: "RESEND_API_KEY",
		},
		{
			name:   "missing from address in production",
			mutate: func(c *Config) { c.Email.FromAddress = "" },
			errMsg: "FROM_EMAIL",
		},
		{
			name:   "missing base url",
			mutate: func(c *Config) { c.Server.BaseURL = "" },
			errMsg: "BASE_URL",
		},
		{
			name:   "missing port",
			mutate: func(c *Config) { c.Server.Port = "" },
			errMsg: "PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestConfig_EmailOptionalInDevelopment(t *testing.T) {
	cfg := validConfig()
	cfg.Server.AppEnv = "development"
	cfg.Email = EmailConfig{}

	assert.NoError(t, cfg.Validate())
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "production environment",
			config:   &Config{Server: ServerConfig{AppEnv: "production", GinMode: "release"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}
