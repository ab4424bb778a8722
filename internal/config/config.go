// internal/config/config.go
package config

import (
	"os"
	"strings"
	"time"
)

// Config carries every environment-driven setting. Values come from the
// process environment; a .env file is loaded by godotenv/autoload in main.
type Config struct {
	// Addr is the listen address, ":" + PORT (default 3000).
	Addr string

	// AllowedOrigins is the exact-match origin allow list for the WebSocket
	// handshake. Empty means same-origin only is not enforced ("*").
	AllowedOrigins []string

	// TurnTimeout bounds how long a seat may sit on its turn before the
	// liveness guard skips it. Zero disables the guard.
	TurnTimeout time.Duration

	// RedisAddr enables the action history queue when set.
	RedisAddr string

	// DatabaseURL enables game-results recording when set.
	DatabaseURL string
}

// Load reads the configuration from the environment.
func Load() Config {
	cfg := Config{
		Addr:        ":3000",
		TurnTimeout: 30 * time.Second,
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if raw := os.Getenv("TURN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.TurnTimeout = d
		}
	}

	return cfg
}
