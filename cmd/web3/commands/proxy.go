package commands

import (
	"github.com/spf13/cobra"

	"github.com/pavlenkotm/web3/proxy"
)

// ProxyCmd represents the proxy command
var ProxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run a pass-through JSON-RPC proxy",
	Long: `Run a local JSON-RPC proxy that forwards requests to the configured
endpoint and pushes new block heads to WebSocket subscribers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return proxyCommand()
	},
}

func proxyCommand() error {
	log := newLogger()
	cfg := loadConfig()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	return proxy.Start(cfg.Proxy.Port, cfg.Proxy.WebSocketPort, client, log)
}
