package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment is the default profile; it tolerates a missing session secret.
	EnvDevelopment = "development"
	// EnvProduction requires every secret to be set explicitly.
	EnvProduction = "production"

	// DevSessionSecret is only ever used when APP_ENV is development and SESSION_SECRET is empty.
	DevSessionSecret = "dev-only-insecure-session-key-do-not-deploy"
	// DevAdminRegistrationCode is the development fallback for ADMIN_REGISTRATION_CODE.
	DevAdminRegistrationCode = "dev-only-registration-code"

	// DefaultSessionTTL is the lifetime of a session token and its cookie.
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env                   string
	ServerPort            string
	MySQLDSN              string
	RedisAddr             string
	RedisDB               int
	RedisPass             string
	SessionSecret         string
	SessionTTL            time.Duration
	AdminRegistrationCode string
	RegistrationLockTTL   time.Duration
	LogLevel              string
	LogPretty             bool
	SwaggerHost           string
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load builds Config from the environment. A .env file in the working
// directory is read first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                   getEnv("APP_ENV", EnvDevelopment),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		MySQLDSN:              getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/advising?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		SessionSecret:         os.Getenv("SESSION_SECRET"),
		SessionTTL:            getEnvDuration("SESSION_TTL", DefaultSessionTTL),
		AdminRegistrationCode: os.Getenv("ADMIN_REGISTRATION_CODE"),
		RegistrationLockTTL:   getEnvDuration("REGISTRATION_LOCK_TTL", 10*time.Second),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogPretty:             getEnvBool("LOG_PRETTY", false),
		SwaggerHost:           os.Getenv("SWAGGER_HOST"),
	}

	if err := cfg.applyProfile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyProfile fills development fallbacks and fails closed in production.
func (c *Config) applyProfile() error {
	switch c.Env {
	case EnvDevelopment:
		if c.SessionSecret == "" {
			c.SessionSecret = DevSessionSecret
		}
		if c.AdminRegistrationCode == "" {
			c.AdminRegistrationCode = DevAdminRegistrationCode
		}
	case EnvProduction:
		if c.SessionSecret == "" {
			return errors.New("SESSION_SECRET must be set in production")
		}
		if c.SessionSecret == DevSessionSecret {
			return errors.New("SESSION_SECRET must not be the development key in production")
		}
		if c.AdminRegistrationCode == "" || c.AdminRegistrationCode == DevAdminRegistrationCode {
			return errors.New("ADMIN_REGISTRATION_CODE must be set in production")
		}
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}

	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.RegistrationLockTTL <= 0 {
		return errors.New("REGISTRATION_LOCK_TTL must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
