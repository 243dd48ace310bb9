// Package config holds the client configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the version of the client, set at build time.
var Version string

// Default endpoint and path values used when the configuration file leaves
// them out.
const (
	// DefaultLedgerAddress is the websocket RPC endpoint of a local ledger
	// node.
	DefaultLedgerAddress = "ws://127.0.0.1:26657/websocket"

	// DefaultGossipAddress is the gRPC endpoint of a local gossip node.
	DefaultGossipAddress = "127.0.0.1:26658"

	// DefaultWasmDir is the directory the transaction code and validity
	// predicate blobs are distributed in.
	DefaultWasmDir = "wasm"

	// DefaultWalletPath is the location of the wallet file.
	DefaultWalletPath = "wallet.json"
)

// Config is the top-level client configuration.
type Config struct {
	// LedgerAddress is the websocket RPC endpoint of the ledger node.
	LedgerAddress string `yaml:"LedgerAddress"`

	// GossipAddress is the gRPC endpoint of the intent gossip node.
	GossipAddress string `yaml:"GossipAddress"`

	// WasmDir is the directory named code blobs are loaded from.
	WasmDir string `yaml:"WasmDir"`

	// WalletPath is the location of the wallet file.
	WalletPath string `yaml:"WalletPath"`

	// LogLevel is the minimum level of emitted log records.
	LogLevel string `yaml:"LogLevel"`
}

// Default returns a configuration with every field at its default.
func Default() Config {
	return Config{
		LedgerAddress: DefaultLedgerAddress,
		GossipAddress: DefaultGossipAddress,
		WasmDir:       DefaultWasmDir,
		WalletPath:    DefaultWalletPath,
	}
}

// Load reads the configuration from the given YAML file. Missing fields
// keep their defaults, an empty path returns the defaults without touching
// the filesystem.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return cfg, nil
}
