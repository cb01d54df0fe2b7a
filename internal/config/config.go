package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
	Storage    StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// MigrateOnStart runs pending migrations before serving
	MigrateOnStart bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig drives day bucketing and payroll deductions.
type AttendanceConfig struct {
	Location               *time.Location
	DeductionPerAbsentDay  decimal.Decimal
	DeductionPerWarningDay decimal.Decimal
	CurrencySymbol         string
	// RosterDigestInterval of zero disables the digest job
	RosterDigestInterval time.Duration
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	migrateOnStart, err := strconv.ParseBool(getEnv("DB_MIGRATE_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIGRATE_ON_START: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           dbPort,
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		Name:           getEnv("DB_NAME", "attendance"),
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
		MigrateOnStart: migrateOnStart,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("FRONTEND_URL", "http://localhost:3000"),
	}

	// Attendance configuration
	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}

	absentRate, err := decimal.NewFromString(getEnv("DEDUCTION_PER_ABSENT_DAY", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUCTION_PER_ABSENT_DAY: %w", err)
	}

	warningRate, err := decimal.NewFromString(getEnv("DEDUCTION_PER_WARNING_DAY", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEDUCTION_PER_WARNING_DAY: %w", err)
	}

	digestInterval, err := time.ParseDuration(getEnv("ROSTER_DIGEST_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_DIGEST_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Location:               loc,
		DeductionPerAbsentDay:  absentRate,
		DeductionPerWarningDay: warningRate,
		CurrencySymbol:         getEnv("CURRENCY_SYMBOL", "₹"),
		RosterDigestInterval:   digestInterval,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "/uploads"),
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
	if c.Attendance.DeductionPerAbsentDay.IsNegative() {
		return fmt.Errorf("DEDUCTION_PER_ABSENT_DAY must not be negative")
	}
	if c.Attendance.DeductionPerWarningDay.IsNegative() {
		return fmt.Errorf("DEDUCTION_PER_WARNING_DAY must not be negative")
	}
	if c.Attendance.RosterDigestInterval < 0 {
		return fmt.Errorf("ROSTER_DIGEST_INTERVAL must not be negative")
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
