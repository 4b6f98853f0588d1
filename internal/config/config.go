// File: backend/services/account-security-service/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration of the service.
type Config struct {
	Environment string          `yaml:"environment" env:"APP_ENV" env-default:"development"`
	Server      ServerConfig    `yaml:"server"`
	Database    DatabaseConfig  `yaml:"database"`
	Redis       RedisConfig     `yaml:"redis"`
	Kafka       KafkaConfig     `yaml:"kafka"`
	JWT         JWTConfig       `yaml:"jwt"`
	Security    SecurityConfig  `yaml:"security"`
	MFA         MFAConfig       `yaml:"mfa"`
	Logging     LoggingConfig   `yaml:"logging"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
}

// Production reports whether the service runs in production mode. Outside
// production the server logs in console format and email-change tokens are
// delivered through the log notifier instead of the event bus.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"DB_PASSWORD" env-default:""`
	DBName          string        `yaml:"dbname" env:"DB_NAME" env-default:"account_security"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	MaxConns        int32         `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" env-default:"1h"`
	MigrationsPath  string        `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH" env-default:"migrations"`
	AutoMigrate     bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`
}

type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Addr returns host:port for the redis client.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"account-security.events"`
}

type JWTConfig struct {
	Secret   string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	Issuer   string `yaml:"issuer" env:"JWT_ISSUER" env-default:"gaming-platform"`
	Audience string `yaml:"audience" env:"JWT_AUDIENCE" env-default:"account-security"`
}

type PasswordHashConfig struct {
	Memory      uint32 `yaml:"memory" env:"ARGON2_MEMORY" env-default:"65536"`
	Iterations  uint32 `yaml:"iterations" env:"ARGON2_ITERATIONS" env-default:"3"`
	Parallelism uint8  `yaml:"parallelism" env:"ARGON2_PARALLELISM" env-default:"4"`
	SaltLength  uint32 `yaml:"salt_length" env:"ARGON2_SALT_LENGTH" env-default:"16"`
	KeyLength   uint32 `yaml:"key_length" env:"ARGON2_KEY_LENGTH" env-default:"32"`
}

// RateLimitRule defines a fixed-window rate limit.
type RateLimitRule struct {
	Enabled bool          `yaml:"enabled" env-default:"true"`
	Limit   int           `yaml:"limit" env-default:"10"`
	Window  time.Duration `yaml:"window" env-default:"1m"`
}

type RateLimitConfig struct {
	Enabled   bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"false"`
	Sensitive RateLimitRule `yaml:"sensitive"`
}

type SecurityConfig struct {
	PasswordHash        PasswordHashConfig `yaml:"password_hash"`
	RateLimiting        RateLimitConfig    `yaml:"rate_limiting"`
	EmailChangeTokenTTL time.Duration      `yaml:"email_change_token_ttl" env:"EMAIL_CHANGE_TOKEN_TTL" env-default:"24h"`
}

type MFAConfig struct {
	TOTPIssuerName    string `yaml:"totp_issuer_name" env:"MFA_TOTP_ISSUER" env-default:"GamingPlatform"`
	TOTPEncryptionKey string `yaml:"totp_encryption_key" env:"MFA_TOTP_ENCRYPTION_KEY" env-required:"true"` // hex-encoded 32-byte key
	BackupCodeCount   int    `yaml:"backup_code_count" env:"MFA_BACKUP_CODE_COUNT" env-default:"10"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" env:"TELEMETRY_SERVICE_NAME" env-default:"account-security-service"`
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"TELEMETRY_METRICS_ENABLED" env-default:"true"`
}

// Load reads configuration from the optional YAML file at path and the
// environment. A .env file in the working directory is loaded first when
// present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return cfg, nil
}
