package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Security  SecurityConfig  `mapstructure:"security"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port" envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host" envconfig:"DB_HOST" default:"localhost"`
	Port         int    `mapstructure:"port" envconfig:"DB_PORT" default:"5432"`
	User         string `mapstructure:"user" envconfig:"DB_USER" default:"postgres"`
	Password     string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name         string `mapstructure:"name" envconfig:"DB_NAME" default:"clinic"`
	SSLMode      string `mapstructure:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns int    `mapstructure:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name" envconfig:"SESSION_COOKIE_NAME" default:"clinic_session"`
	TTL        time.Duration `mapstructure:"ttl" envconfig:"SESSION_TTL" default:"168h"`
	Secure     bool          `mapstructure:"secure" envconfig:"SESSION_SECURE" default:"false"`
}

type AuthConfig struct {
	// IdentitySecret verifies the signed identity tokens the external
	// identity provider posts on sign-in.
	IdentitySecret string `mapstructure:"identity_secret" envconfig:"AUTH_IDENTITY_SECRET"`
	// OwnerOpenID is the external identity auto-promoted to admin.
	OwnerOpenID string `mapstructure:"owner_open_id" envconfig:"AUTH_OWNER_OPEN_ID"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST" default:"100"`
}

type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"SECURITY_ALLOWED_ORIGINS"`
}

type WorkerConfig struct {
	ReminderInterval   time.Duration `mapstructure:"reminder_interval" envconfig:"WORKER_REMINDER_INTERVAL" default:"5m"`
	AuditRetentionDays int           `mapstructure:"audit_retention_days" envconfig:"WORKER_AUDIT_RETENTION_DAYS" default:"365"`
}

// LoadConfig reads config.yml from the working directory or ./config.
// When no file exists it falls back to environment variables only, for
// container deployments that ship no config file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return LoadFromEnv()
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv builds the configuration from environment variables alone.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}
