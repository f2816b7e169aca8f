package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Airtable      AirtableConfig
	MagicLink     MagicLinkConfig
	Session       SessionConfig
	Email         EmailConfig
	Admin         AdminConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type AirtableConfig struct {
	APIKey         string
	BaseID         string
	MentorsTable   string
	StudentsTable  string
	DeadlinesTable string
}

type MagicLinkConfig struct {
	Secret     string
	Salt       string
	TTLSeconds int
}

type SessionConfig struct {
	JWTSecret       string
	JWTIssuer       string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
}

type AdminConfig struct {
	PreviewKey string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	LookupTTLSeconds int // Mentor/student/deadline lookup memo TTL
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("AIRTABLE_MENTORS_TABLE", "Mentors")
	v.SetDefault("AIRTABLE_STUDENTS_TABLE", "Students")
	v.SetDefault("AIRTABLE_DEADLINES_TABLE", "Deadlines")
	v.SetDefault("MAGIC_LINK_SALT", "magic-link")
	v.SetDefault("MAGIC_LINK_TTL_SECONDS", 3600)
	v.SetDefault("LOOKUP_CACHE_TTL", 300) // 5 minutes in seconds
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "mentor-portal-api")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentor-portal-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Session defaults
	v.SetDefault("JWT_ISSUER", "mentor-portal-api")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
		},
		Airtable: AirtableConfig{
			APIKey:         v.GetString("AIRTABLE_API_KEY"),
			BaseID:         v.GetString("AIRTABLE_BASE_ID"),
			MentorsTable:   v.GetString("AIRTABLE_MENTORS_TABLE"),
			StudentsTable:  v.GetString("AIRTABLE_STUDENTS_TABLE"),
			DeadlinesTable: v.GetString("AIRTABLE_DEADLINES_TABLE"),
		},
		MagicLink: MagicLinkConfig{
			Secret:     v.GetString("MAGIC_LINK_SECRET"),
			Salt:       v.GetString("MAGIC_LINK_SALT"),
			TTLSeconds: v.GetInt("MAGIC_LINK_TTL_SECONDS"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		Email: EmailConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			FromAddress:  v.GetString("FROM_EMAIL"),
		},
		Admin: AdminConfig{
			PreviewKey: v.GetString("ADMIN_KEY"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			LookupTTLSeconds: v.GetInt("LOOKUP_CACHE_TTL"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Airtable configuration
	if c.Airtable.APIKey == "" {
		return fmt.Errorf("AIRTABLE_API_KEY is required")
	}
	if c.Airtable.BaseID == "" {
		return fmt.Errorf("AIRTABLE_BASE_ID is required")
	}

	// Auth secrets
	if c.MagicLink.Secret == "" {
		return fmt.Errorf("MAGIC_LINK_SECRET is required")
	}
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Admin.PreviewKey == "" {
		return fmt.Errorf("ADMIN_KEY is required")
	}

	// Email delivery is mandatory outside development; in development the
	// mailer falls back to logging the login URL
	if !c.IsDevelopment() {
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required outside development")
		}
		if c.Email.FromAddress == "" {
			return fmt.Errorf("FROM_EMAIL is required outside development")
		}
	}

	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}

	return nil
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}
