package eth

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client wraps both rpc.Client and ethclient.Client for one endpoint.
// It is safe for concurrent read queries; callers issuing several
// transactions from the same account must serialize the
// nonce-fetch/build/sign/submit sequence themselves.
type Client struct {
	Rpc *rpc.Client
	Eth *ethclient.Client

	url string
}

// BlockInfo is the subset of block data the client reports.
type BlockInfo struct {
	Number     uint64
	Hash       common.Hash
	ParentHash common.Hash
	Miner      common.Address
	Timestamp  uint64
	GasUsed    uint64
	TxCount    int
}

// NewClient initializes a new Ethereum client with both RPC and ethclient
func NewClient(url string) (*Client, error) {
	rpcClient, err := rpc.Dial(url)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}

	return &Client{
		Rpc: rpcClient,
		Eth: ethclient.NewClient(rpcClient),
		url: url,
	}, nil
}

// URL returns the configured endpoint.
func (c *Client) URL() string { return c.url }

// Close shuts down the underlying connection.
func (c *Client) Close() {
	c.Rpc.Close()
}

// IsConnected probes the endpoint with a lightweight eth_chainId call.
// A refusal returns false, never an error.
func (c *Client) IsConnected(ctx context.Context) bool {
	var id hexutil.Big
	return c.Rpc.CallContext(ctx, &id, "eth_chainId") == nil
}

// ChainID returns the chain id of the connected network.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := c.Eth.ChainID(ctx)
	if err != nil {
		return nil, c.wrapErr(err, "chain id")
	}
	return id, nil
}

// BlockNumber returns the number of the latest block.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.Eth.BlockNumber(ctx)
	if err != nil {
		return 0, c.wrapErr(err, "block number")
	}
	return n, nil
}

// GasPrice returns the node's suggested gas price in wei.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.Eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, c.wrapErr(err, "gas price")
	}
	return price, nil
}

// TransactionCount returns the on-chain transaction count (nonce) of the
// given address at the latest block.
func (c *Client) TransactionCount(ctx context.Context, address common.Address) (uint64, error) {
	nonce, err := c.Eth.NonceAt(ctx, address, nil)
	if err != nil {
		return 0, c.wrapErr(err, "transaction count")
	}
	return nonce, nil
}

// Balance returns the wei balance of the given address at the latest
// block. The value is an unbounded integer; conversion to ether happens
// only at the presentation boundary.
func (c *Client) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := c.Eth.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, c.wrapErr(err, "balance")
	}
	return balance, nil
}

// rpcBlock mirrors the wire fields of eth_getBlockByNumber the client
// reports. Transaction hashes only, no full bodies.
type rpcBlock struct {
	Number     hexutil.Uint64 `json:"number"`
	Hash       common.Hash    `json:"hash"`
	ParentHash common.Hash    `json:"parentHash"`
	Miner      common.Address `json:"miner"`
	Timestamp  hexutil.Uint64 `json:"timestamp"`
	GasUsed    hexutil.Uint64 `json:"gasUsed"`
	Txs        []common.Hash  `json:"transactions"`
}

// BlockByNumber fetches block data for the given number. A number beyond
// the chain head fails with NotFoundError.
func (c *Client) BlockByNumber(ctx context.Context, number uint64) (*BlockInfo, error) {
	var raw json.RawMessage
	err := c.Rpc.CallContext(ctx, &raw, "eth_getBlockByNumber", hexutil.EncodeUint64(number), false)
	if err != nil {
		return nil, c.wrapErr(err, "block")
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &NotFoundError{Resource: "block"}
	}

	var block rpcBlock
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, &ConnectionError{URL: c.url, Err: err}
	}

	return &BlockInfo{
		Number:     uint64(block.Number),
		Hash:       block.Hash,
		ParentHash: block.ParentHash,
		Miner:      block.Miner,
		Timestamp:  uint64(block.Timestamp),
		GasUsed:    uint64(block.GasUsed),
		TxCount:    len(block.Txs),
	}, nil
}

// SendRawTransaction submits a signed, RLP-encoded transaction. A node
// rejection (bad nonce, insufficient funds, gas too low) surfaces as an
// RPCError carrying the node's message verbatim.
func (c *Client) SendRawTransaction(ctx context.Context, rawTx []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.Rpc.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(rawTx)); err != nil {
		return common.Hash{}, c.wrapErr(err, "transaction")
	}
	return hash, nil
}

// TransactionReceipt performs a single non-blocking receipt lookup.
// A transaction that is not yet mined returns (nil, nil); absence is not
// an error.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	receipt, err := c.Eth.TransactionReceipt(ctx, hash)
	if err != nil {
		wrapped := c.wrapErr(err, "receipt")
		if isNotFound(wrapped) {
			return nil, nil
		}
		return nil, wrapped
	}
	return receipt, nil
}

// CallContract executes a non-mutating eth_call against the latest block.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	out, err := c.Eth.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, c.wrapErr(err, "call")
	}
	return out, nil
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
