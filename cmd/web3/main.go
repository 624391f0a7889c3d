package main

import (
	"os"

	"github.com/pavlenkotm/web3/cmd/web3/commands"
	"github.com/spf13/cobra"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "web3",
		Short: "A command-line client for Ethereum-compatible nodes",
		Long: `A command-line client for Ethereum-compatible nodes over JSON-RPC.
It queries chain state, sends signed transactions, waits for confirmations and
performs read-only contract calls.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.InfoCmd)
	rootCmd.AddCommand(commands.BalanceCmd)
	rootCmd.AddCommand(commands.SendCmd)
	rootCmd.AddCommand(commands.BlockCmd)
	rootCmd.AddCommand(commands.CallCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ProxyCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
