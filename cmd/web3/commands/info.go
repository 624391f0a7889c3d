package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display blockchain information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return infoCommand()
	},
}

func infoCommand() error {
	cfg := loadConfig()
	ctx := context.Background()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if !client.IsConnected(ctx) {
		return fmt.Errorf("not connected to blockchain at %s", cfg.RPC.URL)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch chain id: %v", err)
	}
	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch block number: %v", err)
	}

	fmt.Println("=== Blockchain Info ===")
	fmt.Println("Connected: yes")
	fmt.Printf("Chain ID: %s\n", chainID)
	fmt.Printf("Latest Block: %d\n", blockNumber)
	fmt.Printf("RPC URL: %s\n", cfg.RPC.URL)
	return nil
}
