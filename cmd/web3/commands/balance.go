package commands

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/wei"
)

// BalanceCmd represents the balance command
var BalanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Get the ETH balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return balanceCommand(args[0])
	},
}

func balanceCommand(address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address: %s", address)
	}

	cfg := loadConfig()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	balance, err := client.Balance(context.Background(), common.HexToAddress(address))
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %v", err)
	}

	fmt.Printf("Balance: %s ETH\n", wei.FormatEther(balance))
	return nil
}
