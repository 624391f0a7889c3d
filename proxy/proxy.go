package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pavlenkotm/web3/eth"
)

// rpcRequest is the JSON-RPC 2.0 envelope accepted on both transports.
type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      interface{}   `json:"id"`
}

type rpcResponse struct {
	Jsonrpc string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *string     `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Start launches the pass-through JSON-RPC proxy: an HTTP server that
// forwards requests to the configured endpoint, and a WebSocket server
// that pushes new block heads to connected clients. Nothing is signed or
// rewritten in transit.
func Start(rpcPort, wsPort string, client *eth.Client, log *logrus.Logger) error {
	gin.SetMode(gin.ReleaseMode) // No debug noise

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	rpcServer := gin.New()
	rpcServer.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("[PROXY] %s - %s %s %d\n",
				param.TimeStamp.Format("2006-01-02 15:04:05"),
				param.Method,
				param.Path,
				param.StatusCode,
			)
		},
	}))
	rpcServer.Use(gin.Recovery())
	rpcServer.POST("/", func(c *gin.Context) {
		handleRPC(c, client, log)
	})

	wsServer := gin.New()
	wsServer.Use(gin.Recovery())
	wsServer.GET("/", func(c *gin.Context) {
		handleWebSocket(c, upgrader, client, log)
	})

	go func() {
		log.Infof("Starting WebSocket head feed on %s", wsPort)
		if err := wsServer.Run(wsPort); err != nil {
			log.Errorf("WebSocket server error: %v", err)
		}
	}()

	log.Infof("Starting RPC proxy on %s", rpcPort)
	return rpcServer.Run(rpcPort)
}

// handleRPC forwards one JSON-RPC request to the upstream node verbatim.
func handleRPC(c *gin.Context, client *eth.Client, log *logrus.Logger) {
	var req rpcRequest
	if err := c.BindJSON(&req); err != nil {
		log.Errorf("Failed to parse JSON-RPC request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"jsonrpc": "2.0",
			"error":   "Invalid JSON-RPC request",
			"id":      nil,
		})
		return
	}

	resp := rpcResponse{Jsonrpc: "2.0", ID: req.ID}

	var result json.RawMessage
	if err := client.Rpc.CallContext(c.Request.Context(), &result, req.Method, req.Params...); err != nil {
		log.Errorf("Upstream RPC error for %s: %v", req.Method, err)
		errMsg := err.Error()
		resp.Error = &errMsg
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Result = result
	c.JSON(http.StatusOK, resp)
}

// handleWebSocket upgrades the connection and streams new block heads.
// Heads are detected by polling the upstream block number; the proxy never
// requires a WebSocket upstream.
func handleWebSocket(c *gin.Context, upgrader websocket.Upgrader, client *eth.Client, log *logrus.Logger) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader goroutine: drop inbound frames, end the feed on disconnect.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	var lastHead uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			head, err := client.BlockNumber(ctx)
			if err != nil {
				log.Warnf("Failed to fetch head for WebSocket feed: %v", err)
				continue
			}
			if head <= lastHead {
				continue
			}
			lastHead = head

			notification := map[string]interface{}{
				"jsonrpc": "2.0",
				"method":  "eth_subscription",
				"params": map[string]interface{}{
					"subscription": "newHeads",
					"result": map[string]interface{}{
						"number": head,
					},
				},
			}
			data, err := json.Marshal(notification)
			if err != nil {
				log.Errorf("Failed to marshal head notification: %v", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
