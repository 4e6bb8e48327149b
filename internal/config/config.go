package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// APIConfig is the server configuration. DATABASE_URL and the Discord
// credentials are optional: the game runs fully in memory and anonymously
// without them.
type APIConfig struct {
	Addr                string
	DatabaseURL         string
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	MaxSessions         int
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("CORPCLICKER_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:                addr,
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DiscordClientID:     strings.TrimSpace(os.Getenv("DISCORD_CLIENT_ID")),
		DiscordClientSecret: strings.TrimSpace(os.Getenv("DISCORD_CLIENT_SECRET")),
		DiscordRedirectURI:  strings.TrimSpace(os.Getenv("DISCORD_REDIRECT_URI")),
		RequestTimeout:      envDurationDefault("CORPCLICKER_REQUEST_TIMEOUT", 60*time.Second),
		ShutdownTimeout:     envDurationDefault("CORPCLICKER_SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxSessions:         envIntDefault("CORPCLICKER_MAX_SESSIONS", 1000),
	}
	return cfg, nil
}

// DiscordConfigured reports whether the optional identity exchange can run.
func (c APIConfig) DiscordConfigured() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != ""
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("CCL_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
