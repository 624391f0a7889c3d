package eth

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/rpc"
)

// ConnectionError indicates the endpoint could not be reached at all.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach RPC endpoint %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RPCError carries a JSON-RPC error returned by the node. Message is the
// node's message verbatim; callers inspect the type, not the text.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// NotFoundError indicates the queried entity does not exist on the chain,
// e.g. a block number beyond the current head.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// wrapErr maps raw transport and node failures onto the client's error
// types. Node errors keep their code and message, everything else is
// treated as a connection failure.
func (c *Client) wrapErr(err error, resource string) error {
	if err == nil {
		return nil
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &RPCError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}
	if errors.Is(err, ethereum.NotFound) {
		return &NotFoundError{Resource: resource}
	}
	return &ConnectionError{URL: c.url, Err: err}
}
