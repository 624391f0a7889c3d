package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/contract"
)

// CallCmd represents the call command
var CallCmd = &cobra.Command{
	Use:   "call [contract] [abi-file] [function] [args...]",
	Short: "Call a read-only contract function",
	Long: `Call a read-only contract function via eth_call. The ABI file is a
standard JSON ABI definition; arguments are given as strings and converted
per the declared parameter types. No account or signature is involved.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callCommand(args[0], args[1], args[2], args[3:])
	},
}

func callCommand(address, abiFile, function string, rawArgs []string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid contract address: %s", address)
	}

	abiJSON, err := os.ReadFile(abiFile)
	if err != nil {
		return fmt.Errorf("failed to read ABI file: %v", err)
	}
	contractABI, err := contract.ParseABI(string(abiJSON))
	if err != nil {
		return err
	}

	args, err := contract.ParseArguments(contractABI, function, rawArgs)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	values, err := contract.Call(context.Background(), client, common.HexToAddress(address), contractABI, function, args)
	if err != nil {
		return err
	}

	for i, value := range values {
		fmt.Printf("result[%d]: %v\n", i, value)
	}
	return nil
}
