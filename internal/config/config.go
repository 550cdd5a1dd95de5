package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Shift     ShiftConfig
	RateLimit RateLimitConfig
	Repair    RepairConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// ShiftConfig holds the defaults applied when a daily log is opened at login.
type ShiftConfig struct {
	DefaultHours    float64
	DefaultTimezone string
}

type RateLimitConfig struct {
	Rate string // limiter formatted rate, e.g. "100-M"
}

// RepairConfig drives the scheduled metric repair pass.
type RepairConfig struct {
	Enabled      bool
	Interval     time.Duration
	LookbackDays int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "salesverse"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	// Shift defaults
	shiftHours, err := strconv.ParseFloat(getEnv("SHIFT_DEFAULT_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_DEFAULT_HOURS: %w", err)
	}
	config.Shift = ShiftConfig{
		DefaultHours:    shiftHours,
		DefaultTimezone: getEnv("SHIFT_DEFAULT_TIMEZONE", "America/Toronto"),
	}

	config.RateLimit = RateLimitConfig{
		Rate: getEnv("RATE_LIMIT", "100-M"),
	}

	// Repair job
	repairEnabled, err := strconv.ParseBool(getEnv("REPAIR_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPAIR_ENABLED: %w", err)
	}
	repairInterval, err := time.ParseDuration(getEnv("REPAIR_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPAIR_INTERVAL: %w", err)
	}
	lookback, err := strconv.Atoi(getEnv("REPAIR_LOOKBACK_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPAIR_LOOKBACK_DAYS: %w", err)
	}
	config.Repair = RepairConfig{
		Enabled:      repairEnabled,
		Interval:     repairInterval,
		LookbackDays: lookback,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Shift.DefaultHours < 1 || c.Shift.DefaultHours > 24 {
		return fmt.Errorf("SHIFT_DEFAULT_HOURS must be between 1 and 24")
	}
	if _, err := time.LoadLocation(c.Shift.DefaultTimezone); err != nil {
		return fmt.Errorf("SHIFT_DEFAULT_TIMEZONE is not a valid IANA timezone: %w", err)
	}
	if c.Repair.Enabled && c.Repair.Interval <= 0 {
		return fmt.Errorf("REPAIR_INTERVAL must be positive")
	}
	if c.Repair.LookbackDays < 1 {
		return fmt.Errorf("REPAIR_LOOKBACK_DAYS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
