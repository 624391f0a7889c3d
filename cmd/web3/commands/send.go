package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/confirm"
	"github.com/pavlenkotm/web3/db"
	"github.com/pavlenkotm/web3/txbuilder"
	"github.com/pavlenkotm/web3/wallet"
)

// SendCmd represents the send command
var SendCmd = &cobra.Command{
	Use:   "send [to] [amount]",
	Short: "Send ETH to an address",
	Long: `Send ETH to an address. The amount is given in ether with up to 18
fractional digits. The signing key comes from --private-key or the
PRIVATE_KEY environment variable and is never stored.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand(cmd, args[0], args[1])
	},
}

func init() {
	SendCmd.Flags().String("private-key", "", "Sender private key (defaults to PRIVATE_KEY env)")
	SendCmd.Flags().Uint64("gas-limit", txbuilder.DefaultTransferGas, "Gas limit")
	SendCmd.Flags().Duration("timeout", confirm.DefaultTimeout, "Confirmation timeout")
}

func sendCommand(cmd *cobra.Command, to, amount string) error {
	keyHex, _ := cmd.Flags().GetString("private-key")
	gasLimit, _ := cmd.Flags().GetUint64("gas-limit")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if keyHex == "" {
		keyHex = os.Getenv("PRIVATE_KEY")
	}
	if keyHex == "" {
		return fmt.Errorf("no private key: pass --private-key or set PRIVATE_KEY")
	}
	if !common.IsHexAddress(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}

	log := newLogger()
	cfg := loadConfig()
	ctx := context.Background()

	account, err := wallet.LoadKey(keyHex)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	log.Infof("Sending %s ETH to %s...", amount, to)

	builder := txbuilder.New(client, account, log)
	unsigned, err := builder.BuildTransfer(ctx, common.HexToAddress(to), amount, gasLimit)
	if err != nil {
		return err
	}

	signed, err := account.SignTx(unsigned.Tx, unsigned.ChainID)
	if err != nil {
		return err
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %v", err)
	}

	hash, err := client.SendRawTransaction(ctx, raw)
	if err != nil {
		return err
	}
	log.Infof("Transaction sent: %s", hash.Hex())

	log.Info("Waiting for confirmation...")
	waiter := confirm.NewWaiter(client, log)
	receipt, waitErr := waiter.WaitForReceipt(ctx, hash, timeout)

	entry := db.Entry{
		Hash:     hash.Hex(),
		From:     account.Address().Hex(),
		To:       to,
		ValueWei: unsigned.Tx.Value().String(),
		Nonce:    unsigned.Tx.Nonce(),
		Time:     time.Now().Unix(),
	}
	if receipt != nil {
		entry.Confirmed = true
		entry.Status = receipt.Status
	}
	recordHistory(cfg.Database.HistoryDBPath, entry, log)

	if waitErr != nil {
		return waitErr
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		log.Infof("Transaction confirmed in block %s, gas used %d", receipt.BlockNumber, receipt.GasUsed)
	} else {
		log.Errorf("Transaction failed on-chain (status 0), gas used %d", receipt.GasUsed)
	}
	return nil
}

// recordHistory appends the submission to the local history database.
// History failures are logged, never fatal: the transaction is already on
// its way.
func recordHistory(path string, entry db.Entry, log *logrus.Logger) {
	store, err := db.OpenHistory(path)
	if err != nil {
		log.Warnf("Failed to open history database: %v", err)
		return
	}
	defer store.Close()
	if err := store.Append(entry); err != nil {
		log.Warnf("Failed to record transaction in history: %v", err)
	}
}
