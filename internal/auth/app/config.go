package app

import (
	"os"
	"strconv"
	"time"

	"github.com/pengkiwi/pengauth/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for tokens and TOTP provisioning

	AccessTokenSecret  string // Optional: HS256 secret for access tokens (ephemeral if unset)
	RefreshTokenSecret string // Optional: HS256 secret for refresh tokens (ephemeral if unset)
	TempTokenSecret    string // Optional: HS256 secret for temp tokens (ephemeral if unset)

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)
	TempTokenTTL    time.Duration // Optional: temp token lifetime (default: 5m)

	MasterKey    string // Optional: key for encrypting stored secrets (ephemeral if unset)
	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:             getEnvOrDefault("AUTH_ISSUER", "peng.kiwi"),
		AccessTokenSecret:  os.Getenv("AUTH_ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("AUTH_REFRESH_TOKEN_SECRET"),
		TempTokenSecret:    os.Getenv("AUTH_TEMP_TOKEN_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		TempTokenTTL:    getEnvDurationOrDefault("AUTH_TEMP_TOKEN_TTL", jwtx.DefaultTempTokenTTL),

		MasterKey:    os.Getenv("AUTH_MASTER_KEY"),
		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
