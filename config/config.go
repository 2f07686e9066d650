package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Port               string
	GoEnv              string
	LogLevel           string
	LogFormat          string
	Database           DatabaseConfig
	CORSAllowedOrigins []string
	ReportTimezone     string
	SeedOnStartup      bool
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// DatabaseConfig holds the connection settings passed to ConnectDatabase.
// When URL is set it takes precedence over the individual parts.
type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	ConnectTimeout  int // seconds
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SQLitePath      string
}

// DefaultDatabaseConfig returns the settings used when no environment overrides are present
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          DriverPostgres,
		Host:            "localhost",
		Port:            5432,
		Name:            "cookies",
		User:            "postgres",
		SSLMode:         "disable",
		ConnectTimeout:  5,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		SQLitePath:      "cookies.db",
	}
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	defaults := DefaultDatabaseConfig()

	config := &Config{
		Port:      getEnv("PORT", "8080"),
		GoEnv:     getEnv("GO_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DATABASE_DRIVER", defaults.Driver)),
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DATABASE_HOST", defaults.Host),
			Port:            getEnvInt("DATABASE_PORT", defaults.Port),
			Name:            getEnv("DATABASE_NAME", defaults.Name),
			User:            getEnv("DATABASE_USER", defaults.User),
			Password:        getEnv("DATABASE_PASSWORD", ""),
			SSLMode:         getEnv("DATABASE_SSLMODE", defaults.SSLMode),
			ConnectTimeout:  getEnvInt("DATABASE_CONNECT_TIMEOUT", defaults.ConnectTimeout),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", defaults.MaxOpenConns),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", defaults.MaxIdleConns),
			ConnMaxLifetime: defaults.ConnMaxLifetime,
			SQLitePath:      getEnv("SQLITE_PATH", defaults.SQLitePath),
		},
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReportTimezone:     getEnv("REPORT_TIMEZONE", "UTC"),
		SeedOnStartup:      getEnvBool("SEED_ON_STARTUP", false),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			return fmt.Errorf("DATABASE_HOST or DATABASE_URL is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("DATABASE_PORT must be between 1 and 65535, got %d", c.Database.Port)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DATABASE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	if _, err := c.ReportLocation(); err != nil {
		return err
	}
	return nil
}

// ReportLocation returns the time zone used to interpret report dates
func (c *Config) ReportLocation() (*time.Location, error) {
	name := strings.TrimSpace(c.ReportTimezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// ArchiveEnabled reports whether weekly report archiving to S3 is configured
func (c *Config) ArchiveEnabled() bool {
	return c.AWSS3Bucket != ""
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// DSN builds the driver-specific data source name
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return sqliteDSN(d.SQLitePath)
	}
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := u.Query()
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(d.ConnectTimeout))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// sqliteDSN turns a file path (or ":memory:") into a URI with foreign keys enabled
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		if strings.Contains(path, "?") {
			return path + "&_foreign_keys=on"
		}
		return path + "?_foreign_keys=on"
	}
	return "file:" + path + "?_foreign_keys=on"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Ignoring invalid integer for %s: %q", key, value)
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
