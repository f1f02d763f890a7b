package config

import (
	"testing"

	"bybitmcp/internal/bybit"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BYBIT_API_KEY", "")
	t.Setenv("BYBIT_API_SECRET", "")
	t.Setenv("BYBIT_TESTNET", "")
	t.Setenv("BYBIT_TRADING_ENABLED", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Network != bybit.NetworkLive {
		t.Errorf("network = %q, want live", cfg.Network)
	}
	if cfg.TradingEnabled {
		t.Error("trading must default to disabled")
	}
	if cfg.HasCredentials() {
		t.Error("no credentials were set")
	}
}

func TestLoadTestnetFlag(t *testing.T) {
	clearEnv(t)

	for _, v := range []string{"true", "1", "TRUE", " true "} {
		t.Setenv("BYBIT_TESTNET", v)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("value %q: %v", v, err)
		}
		if cfg.Network != bybit.NetworkTestnet {
			t.Errorf("value %q: network = %q, want testnet", v, cfg.Network)
		}
	}

	t.Setenv("BYBIT_TESTNET", "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Network != bybit.NetworkLive {
		t.Errorf(`"yes" must not enable testnet`)
	}
}

func TestLoadTradingRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("BYBIT_TRADING_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("trading without credentials must fail")
	}

	t.Setenv("BYBIT_API_KEY", "k")
	t.Setenv("BYBIT_API_SECRET", "s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.TradingEnabled {
		t.Error("trading should be enabled")
	}
	if !cfg.HasCredentials() {
		t.Error("credentials should be present")
	}
}
