package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	DataDir       string `envconfig:"DATA_DIR" default:"./data"`
	WalletKey     string `envconfig:"WALLET_KEY"`                // hex private key; empty = receive-only device
	OfflineLimit  string `envconfig:"OFFLINE_LIMIT" default:"500"` // default per-wallet offline allowance
	SettlementURL string `envconfig:"SETTLEMENT_URL"`            // optional settlement hub
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetDataDir returns the ledger data directory from configuration
func GetDataDir() string {
	return Get().DataDir
}

// GetWalletKey returns this device's wallet private key from configuration
func GetWalletKey() string {
	return Get().WalletKey
}

// GetOfflineLimit returns the default offline allowance limit from configuration
func GetOfflineLimit() string {
	return Get().OfflineLimit
}

// GetSettlementURL returns the settlement hub URL from configuration
func GetSettlementURL() string {
	return Get().SettlementURL
}
