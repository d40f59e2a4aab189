package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := newConfig(viper.New())

	assert.Equal(t, int32(5002), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "0.0.0.0:5002", cfg.HTTP.Addr())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, DefaultMongoURI, cfg.Database.MongoURI)
	assert.Equal(t, DefaultMongoDatabase, cfg.Database.MongoDatabase)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 5, cfg.Global.ShutdownTimeoutInSeconds)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_PATH", "/tmp/library.db")
	t.Setenv("DATABASE_QUERY_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := newConfig(viper.New())

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/library.db", cfg.Database.Path)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.QueryTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, "unknown DATABASE_DRIVER"},
		{"mongo without uri", func(c *Config) { c.Database.MongoURI = "" }, "MONGO_URI"},
		{"mongo without database", func(c *Config) { c.Database.MongoDatabase = "" }, "MONGO_DATABASE"},
		{"sqlite without path", func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.Path = ""
		}, "DATABASE_PATH"},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }, "invalid PORT"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "DATABASE_QUERY_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(viper.New())
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig_EnvFile(t *testing.T) {
	if _, ok := os.LookupEnv("MONGO_DATABASE"); ok {
		t.Skip("MONGO_DATABASE is set in the environment and would shadow the .env file")
	}

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("MONGO_DATABASE")
	})

	cfg := NewConfig()
	assert.False(t, cfg.Global.EnvFileLoaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MONGO_DATABASE=libraryFromFile\n"), 0o600))

	cfg = NewConfig()
	assert.True(t, cfg.Global.EnvFileLoaded)
	assert.Equal(t, "libraryFromFile", cfg.Database.MongoDatabase)
}
