package commands

import (
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/db"
	"github.com/pavlenkotm/web3/wei"
)

// HistoryCmd represents the history command
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List transactions submitted by this client",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyCommand()
	},
}

func historyCommand() error {
	cfg := loadConfig()

	store, err := db.OpenHistory(cfg.Database.HistoryDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No transactions recorded.")
		return nil
	}

	for _, entry := range entries {
		value, ok := new(big.Int).SetString(entry.ValueWei, 10)
		if !ok {
			value = nil
		}
		fmt.Printf("%s  %s -> %s  %s ETH  nonce=%d  %s\n",
			time.Unix(entry.Time, 0).Format("2006-01-02 15:04:05"),
			entry.From, entry.To,
			wei.FormatEther(value),
			entry.Nonce,
			statusLabel(entry),
		)
		fmt.Printf("    %s\n", entry.Hash)
	}
	return nil
}

// statusLabel distinguishes a transaction that was mined and reverted from
// one whose receipt was never seen.
func statusLabel(entry db.Entry) string {
	if !entry.Confirmed {
		return "pending"
	}
	if entry.Status == 1 {
		return "success"
	}
	return "failed"
}
