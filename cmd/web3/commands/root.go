package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pavlenkotm/web3/config"
	"github.com/pavlenkotm/web3/eth"
)

// appDir is the per-user directory holding config.toml and data.
const appDir = ".web3"

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
	})
	log.SetLevel(logrus.InfoLevel)
	return log
}

// configPath returns ~/.web3/config.toml.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %v", err)
	}
	return filepath.Join(home, appDir, "config.toml"), nil
}

// loadConfig reads the config file if present, falls back to defaults
// otherwise, and overlays environment variables in both cases.
func loadConfig() config.Config {
	cfg := config.DefaultConfig()
	if path, err := configPath(); err == nil {
		if loaded, err := config.LoadConfig(path); err == nil {
			cfg = loaded
		}
	}
	cfg.ApplyEnv()
	return cfg
}

// newClient connects to the configured endpoint.
func newClient(cfg config.Config) (*eth.Client, error) {
	client, err := eth.NewClient(cfg.RPC.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RPC client: %v", err)
	}
	return client, nil
}
