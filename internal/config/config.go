package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Driver string

const (
	DriverMongo  Driver = "mongo"  // MongoDB document store (default)
	DriverSQLite Driver = "sqlite" // Embedded SQLite through gorm
)

type (
	Config struct {
		HTTP
		CORS
		Log
		Database
		Audit
		Metrics
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	CORS struct {
		AllowedOrigins []string
	}
	Log struct {
		Level string // debug, info, warn, error
	}
	Database struct {
		Driver         Driver
		Path           string // SQLite file
		LogLevel       string // gorm logger: silent, error, warn, info
		MongoURI       string
		MongoDatabase  string
		ConnectTimeout time.Duration
		QueryTimeout   time.Duration // Per-request store budget
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Metrics struct {
		Enabled bool
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		EnvFileLoaded            bool // a .env file was found in the working directory
	}
)

// Validate reports configuration values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for driver %q", c.Database.Driver)
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q (expected %q or %q)", c.Database.Driver, DriverMongo, DriverSQLite)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.HTTP.Port)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DATABASE_QUERY_TIMEOUT must be positive")
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// splitList turns "a, b,,c" into [a b c]
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NewConfig loads a .env file if one exists and reads the environment on top of the defaults.
// Variables already set in the environment win over the file.
func NewConfig() *Config {
	loaded := godotenv.Load() == nil
	cfg := newConfig(viper.New())
	cfg.Global.EnvFileLoaded = loaded
	return cfg
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 5002)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allowed_origins", "*")

	// Store defaults
	v.SetDefault("database_driver", string(DriverMongo))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("mongo_uri", DefaultMongoURI)
	v.SetDefault("mongo_database", DefaultMongoDatabase)
	v.SetDefault("database_connect_timeout", "10s")
	v.SetDefault("database_query_timeout", "5s")

	// Audit defaults
	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00

	v.SetDefault("metrics_enabled", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: Log{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		Database: Database{
			Driver:         Driver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:           v.GetString("DATABASE_PATH"),
			LogLevel:       strings.ToLower(v.GetString("DATABASE_LOG_LEVEL")),
			MongoURI:       v.GetString("MONGO_URI"),
			MongoDatabase:  v.GetString("MONGO_DATABASE"),
			ConnectTimeout: v.GetDuration("DATABASE_CONNECT_TIMEOUT"),
			QueryTimeout:   v.GetDuration("DATABASE_QUERY_TIMEOUT"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
