package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/eth"
)

// BlockCmd represents the block command
var BlockCmd = &cobra.Command{
	Use:   "block [number]",
	Short: "Get block information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid block number: %s", args[0])
		}
		return blockCommand(number)
	},
}

func blockCommand(number uint64) error {
	cfg := loadConfig()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	block, err := client.BlockByNumber(context.Background(), number)
	if err != nil {
		var notFound *eth.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("block %d not found (beyond chain head?)", number)
		}
		return fmt.Errorf("failed to fetch block %d: %v", number, err)
	}

	fmt.Printf("=== Block #%d ===\n", block.Number)
	fmt.Printf("Hash: %s\n", block.Hash.Hex())
	fmt.Printf("Parent Hash: %s\n", block.ParentHash.Hex())
	fmt.Printf("Miner: %s\n", block.Miner.Hex())
	fmt.Printf("Timestamp: %d\n", block.Timestamp)
	fmt.Printf("Transactions: %d\n", block.TxCount)
	fmt.Printf("Gas Used: %d\n", block.GasUsed)
	return nil
}
