// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/nivela-brasil/intake-backend/logger"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// minServiceKeyLength guards against obviously truncated Supabase keys.
	minServiceKeyLength = 32
)

// Persistence driver selection.
const (
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// Empty means X-Forwarded-For headers are ignored entirely.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

// DatabaseConfig holds PostgreSQL connection details for the direct driver.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST"`
	Port         int    `mapstructure:"PORT"`
	User         string `mapstructure:"USER"`
	Password     string `mapstructure:"PASSWORD"`
	Name         string `mapstructure:"NAME"`
	SSLMode      string `mapstructure:"SSL_MODE"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS"`
}

// URL returns a postgres:// connection URL suitable for pgxpool and
// golang-migrate.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// SupabaseConfig holds the (URL, service-role key) pair for the REST driver.
type SupabaseConfig struct {
	URL        string `mapstructure:"URL"`
	ServiceKey string `mapstructure:"SERVICE_KEY"`
}

// IntakeConfig tunes the submission pipeline.
type IntakeConfig struct {
	// Driver selects the persistence backend: postgres or supabase.
	Driver string `mapstructure:"DRIVER"`
	// PersistTimeoutSeconds bounds each insert; a timeout surfaces as a
	// persistence-unavailable failure.
	PersistTimeoutSeconds int `mapstructure:"PERSIST_TIMEOUT_SECONDS"`
}

// RedisConfig holds Redis connection details for the rate limiter.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"ENABLED"`
	Address  string `mapstructure:"ADDRESS"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// RateLimitConfig holds the per-IP intake rate limit.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"REQUESTS_PER_MINUTE"`
	WindowSeconds     int `mapstructure:"WINDOW_SECONDS"`
}

// NotificationConfig configures the sales notification email sent after a new
// distributor application. Auto-disabled when no API key is set.
type NotificationConfig struct {
	Enabled      bool   `mapstructure:"ENABLED"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	FromAddress  string `mapstructure:"FROM_ADDRESS"`
	FromName     string `mapstructure:"FROM_NAME"`
	SalesAddress string `mapstructure:"SALES_ADDRESS"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server       ServerConfig       `mapstructure:"SERVER"`
	Database     DatabaseConfig     `mapstructure:"DATABASE"`
	Supabase     SupabaseConfig     `mapstructure:"SUPABASE"`
	Intake       IntakeConfig       `mapstructure:"INTAKE"`
	Redis        RedisConfig        `mapstructure:"REDIS"`
	RateLimit    RateLimitConfig    `mapstructure:"RATE_LIMIT"`
	Notification NotificationConfig `mapstructure:"NOTIFICATION"`
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper, sets
// defaults, unmarshals into Config and validates it. Missing persistence
// coordinates are a startup failure, not a runtime one.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("DATABASE.HOST", "")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "nivela")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("INTAKE.DRIVER", DriverPostgres)
	v.SetDefault("INTAKE.PERSIST_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS.ENABLED", false)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("RATE_LIMIT.REQUESTS_PER_MINUTE", 20)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("NOTIFICATION.ENABLED", false)
	v.SetDefault("NOTIFICATION.FROM_NAME", "NIVELA")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_OPEN_CONNS", "DB_MAX_OPEN_CONNS"},
		{"SUPABASE.URL", "SUPABASE_URL"},
		{"SUPABASE.SERVICE_KEY", "SUPABASE_SERVICE_KEY"},
		{"INTAKE.DRIVER", "INTAKE_DRIVER"},
		{"INTAKE.PERSIST_TIMEOUT_SECONDS", "INTAKE_PERSIST_TIMEOUT_SECONDS"},
		{"REDIS.ENABLED", "REDIS_ENABLED"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"RATE_LIMIT.REQUESTS_PER_MINUTE", "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		{"NOTIFICATION.ENABLED", "NOTIFICATION_ENABLED"},
		{"NOTIFICATION.RESEND_API_KEY", "RESEND_API_KEY"},
		{"NOTIFICATION.FROM_ADDRESS", "NOTIFICATION_FROM_ADDRESS"},
		{"NOTIFICATION.FROM_NAME", "NOTIFICATION_FROM_NAME"},
		{"NOTIFICATION.SALES_ADDRESS", "NOTIFICATION_SALES_ADDRESS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"driver", cfg.Intake.Driver,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"rate_limit_enabled", cfg.Redis.Enabled,
	)
	return &cfg, nil
}

// validateConfig checks whether the loaded configuration is usable.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	switch cfg.Intake.Driver {
	case DriverPostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres driver")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required for the postgres driver")
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("database name is required for the postgres driver")
		}
		if cfg.Database.Password == "" {
			log.Warn("Database password is not set. Ensure this is intended (e.g., trusted auth).")
		}
	case DriverSupabase:
		if cfg.Supabase.URL == "" {
			return fmt.Errorf("supabase URL is required for the supabase driver")
		}
		if _, err := url.ParseRequestURI(cfg.Supabase.URL); err != nil {
			return fmt.Errorf("invalid supabase URL: %w", err)
		}
		if len(cfg.Supabase.ServiceKey) < minServiceKeyLength {
			return fmt.Errorf("supabase service key must be at least %d characters long", minServiceKeyLength)
		}
	default:
		return fmt.Errorf("unknown intake driver %q (expected %s or %s)",
			cfg.Intake.Driver, DriverPostgres, DriverSupabase)
	}

	if cfg.Intake.PersistTimeoutSeconds <= 0 {
		return fmt.Errorf("intake persist timeout must be positive")
	}
	if cfg.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}
	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required when the rate limiter is enabled")
	}

	// Notification config degrades instead of failing: without a key there is
	// simply nothing to send.
	if cfg.Notification.Enabled && cfg.Notification.ResendAPIKey == "" {
		log.Warn("Notification API key not set, auto-disabling the sales notification email")
		cfg.Notification.Enabled = false
	}
	if cfg.Notification.Enabled && cfg.Notification.SalesAddress == "" {
		log.Warn("Notification sales address not set, auto-disabling the sales notification email")
		cfg.Notification.Enabled = false
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
