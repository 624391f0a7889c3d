package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/config"
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the web3 client",
	Long: `Initialize the web3 client configuration.
This command creates the necessary directories and a config.toml under ~/.web3.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd)
	},
}

func init() {
	InitCmd.Flags().String("rpc.url", config.DefaultRPCURL, "JSON-RPC endpoint URL")
	InitCmd.Flags().String("proxy.port", ":8590", "Proxy RPC server port")
	InitCmd.Flags().String("proxy.ws-port", ":8591", "Proxy WebSocket server port")
}

func initCommand(cmd *cobra.Command) error {
	rpcURL, _ := cmd.Flags().GetString("rpc.url")
	proxyPort, _ := cmd.Flags().GetString("proxy.port")
	wsPort, _ := cmd.Flags().GetString("proxy.ws-port")

	log := newLogger()

	// Get user's home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %v", err)
	}

	clientDir := filepath.Join(home, appDir)
	if err := os.MkdirAll(clientDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %v", appDir, err)
	}

	historyDir := filepath.Join(clientDir, "data", "history_db")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", historyDir, err)
	}

	cfg := config.DefaultConfig()
	cfg.RPC.URL = rpcURL
	cfg.Database.HistoryDBPath = historyDir
	cfg.Proxy.Port = proxyPort
	cfg.Proxy.WebSocketPort = wsPort

	path := filepath.Join(clientDir, "config.toml")
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	log.Infof("Created config file at: %s", path)

	fmt.Println("\n=== Configuration Summary ===")
	fmt.Printf("RPC URL: %s\n", cfg.RPC.URL)
	fmt.Printf("History DB: %s\n", cfg.Database.HistoryDBPath)
	fmt.Printf("Proxy Port: %s\n", cfg.Proxy.Port)
	fmt.Printf("Proxy WebSocket Port: %s\n", cfg.Proxy.WebSocketPort)
	fmt.Printf("Config File: %s\n", path)

	log.Info("Initialization completed successfully!")
	return nil
}
