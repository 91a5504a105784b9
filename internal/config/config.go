package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Excel workbook configuration
	Excel ExcelConfig

	// SharePoint configuration (optional, for remote workbooks)
	SharePoint SharePointConfig

	// Sync behavior
	Sync SyncConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// ExcelConfig holds workbook settings.
//
// Timezone selects the zone used for the date/time strings written to and
// read from the workbook. The sentinel value "system" means the host
// machine's local zone. FallbackTimezone is used when the requested zone
// cannot be resolved.
type ExcelConfig struct {
	FilePath         string
	Timezone         string
	FallbackTimezone string
}

// SharePointConfig holds Azure AD client-credentials settings for workbooks
// hosted on SharePoint. All three credential fields must be set for
// authenticated access; Site is derived from the file URL when empty.
type SharePointConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Site         string
}

// SyncConfig holds reconciliation settings
type SyncConfig struct {
	// Interval between scheduled sync runs; 0 disables the scheduler and
	// leaves sync to the admin endpoint only.
	Interval time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 300*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "timesheet"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Excel: ExcelConfig{
			FilePath:         getEnv("EXCEL_FILE_PATH", "./data/timesheet.xlsx"),
			Timezone:         getEnv("EXCEL_TIMEZONE", "system"),
			FallbackTimezone: getEnv("EXCEL_FALLBACK_TIMEZONE", "Europe/Prague"),
		},
		SharePoint: SharePointConfig{
			TenantID:     getEnv("SHAREPOINT_TENANT_ID", ""),
			ClientID:     getEnv("SHAREPOINT_CLIENT_ID", ""),
			ClientSecret: getEnv("SHAREPOINT_CLIENT_SECRET", ""),
			Site:         getEnv("SHAREPOINT_SITE", ""),
		},
		Sync: SyncConfig{
			Interval: getDurationEnv("SYNC_INTERVAL", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Excel.FilePath == "" {
		return fmt.Errorf("EXCEL_FILE_PATH is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// HasCredentials reports whether authenticated SharePoint access is configured
func (c *SharePointConfig) HasCredentials() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
