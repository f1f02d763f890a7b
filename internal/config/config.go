// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"bybitmcp/internal/bybit"
)

// Config holds everything the server needs at startup. Credentials are
// treated as opaque: they are handed to the exchange client for request
// signing and never logged or echoed anywhere else.
type Config struct {
	APIKey         string
	APISecret      string
	Network        bybit.Network
	TradingEnabled bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	// Best effort: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Network:   bybit.NetworkLive,
	}

	if boolEnv("BYBIT_TESTNET") {
		cfg.Network = bybit.NetworkTestnet
	}
	cfg.TradingEnabled = boolEnv("BYBIT_TRADING_ENABLED")

	if cfg.TradingEnabled && (cfg.APIKey == "" || cfg.APISecret == "") {
		return nil, fmt.Errorf("config: BYBIT_TRADING_ENABLED requires BYBIT_API_KEY and BYBIT_API_SECRET")
	}

	return cfg, nil
}

// HasCredentials reports whether signed endpoints can be called at all.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

func boolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "true" || v == "1"
}
