package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// DefaultRPCURL is used when neither the config file nor the environment
// names an endpoint.
const DefaultRPCURL = "http://localhost:8545"

// EnvProviderURL overrides the configured endpoint when set.
const EnvProviderURL = "WEB3_PROVIDER_URL"

// Config holds the application configuration
type Config struct {
	RPC      RPCConfig      `toml:"rpc"`
	Database DatabaseConfig `toml:"database"`
	Proxy    ProxyConfig    `toml:"proxy"`
}

// RPCConfig holds endpoint settings
type RPCConfig struct {
	URL string `toml:"url"`
}

// DatabaseConfig holds database paths
type DatabaseConfig struct {
	HistoryDBPath string `toml:"history_db_path"`
}

// ProxyConfig holds proxy server settings
type ProxyConfig struct {
	Port          string `toml:"port"`
	WebSocketPort string `toml:"websocket_port"`
}

// DefaultConfig returns the default configuration values
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		RPC: RPCConfig{URL: DefaultRPCURL},
		Database: DatabaseConfig{
			HistoryDBPath: filepath.Join(home, ".web3", "data", "history_db"),
		},
		Proxy: ProxyConfig{
			Port:          ":8590",
			WebSocketPort: ":8591",
		},
	}
}

// LoadConfig reads from config.toml and returns Config struct
func LoadConfig(path string) (Config, error) {
	var cfg Config
	file, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}

	err = toml.Unmarshal(file, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given path as TOML.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto the configuration.
func (c *Config) ApplyEnv() {
	if url := os.Getenv(EnvProviderURL); url != "" {
		c.RPC.URL = url
	}
}
