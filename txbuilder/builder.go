package txbuilder

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"

	"github.com/pavlenkotm/web3/contract"
	"github.com/pavlenkotm/web3/eth"
	"github.com/pavlenkotm/web3/wallet"
	"github.com/pavlenkotm/web3/wei"
)

const (
	// DefaultTransferGas is the intrinsic cost of a plain value transfer.
	DefaultTransferGas = 21000
	// DefaultContractGas is the default gas limit for contract calls.
	DefaultContractGas = 200000
)

// NoAccountLoadedError indicates a build that needs a sender address was
// attempted without a loaded account.
type NoAccountLoadedError struct{}

func (e *NoAccountLoadedError) Error() string {
	return "no account loaded"
}

// UnsignedTx pairs an unsigned transaction with the chain state it was
// assembled against. The chain id travels alongside because a legacy
// transaction only absorbs it at signing time.
type UnsignedTx struct {
	Tx      *types.Transaction
	ChainID *big.Int
	From    common.Address
}

// Builder assembles unsigned transactions from caller intent plus live
// chain state. Every build fetches nonce, gas price and chain id fresh;
// nothing is cached, so concurrent sends from one account must be
// serialized by the caller.
type Builder struct {
	client  *eth.Client
	account *wallet.Account
	log     *logrus.Logger
}

// New creates a Builder bound to a client and an account. The account may
// be nil for callers that only perform read-only contract calls.
func New(client *eth.Client, account *wallet.Account, log *logrus.Logger) *Builder {
	return &Builder{client: client, account: account, log: log}
}

// BuildTransfer assembles an unsigned value transfer of the given decimal
// ether amount. A gasLimit of 0 selects the intrinsic transfer cost.
func (b *Builder) BuildTransfer(ctx context.Context, to common.Address, amount string, gasLimit uint64) (*UnsignedTx, error) {
	if b.account == nil {
		return nil, &NoAccountLoadedError{}
	}

	value, err := wei.ParseEther(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer amount: %w", err)
	}
	if gasLimit == 0 {
		gasLimit = DefaultTransferGas
	}

	return b.assemble(ctx, &to, value, gasLimit, nil)
}

// BuildContractCall assembles an unsigned state-changing contract call.
// The input data is produced by the contract call encoder; chain state
// assembly is identical to a plain transfer. A gasLimit of 0 selects the
// contract call default.
func (b *Builder) BuildContractCall(ctx context.Context, contractAddr common.Address, contractABI abi.ABI, function string, args []interface{}, amount string, gasLimit uint64) (*UnsignedTx, error) {
	if b.account == nil {
		return nil, &NoAccountLoadedError{}
	}

	data, err := contract.EncodeCall(contractABI, function, args)
	if err != nil {
		return nil, err
	}

	if amount == "" {
		amount = "0"
	}
	value, err := wei.ParseEther(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid call value: %w", err)
	}
	if gasLimit == 0 {
		gasLimit = DefaultContractGas
	}

	return b.assemble(ctx, &contractAddr, value, gasLimit, data)
}

// assemble fetches the live chain state and produces the unsigned
// transaction record.
func (b *Builder) assemble(ctx context.Context, to *common.Address, value *big.Int, gasLimit uint64, data []byte) (*UnsignedTx, error) {
	from := b.account.Address()

	nonce, err := b.client.TransactionCount(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce: %w", err)
	}
	gasPrice, err := b.client.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas price: %w", err)
	}
	chainID, err := b.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain id: %w", err)
	}

	b.log.Debugf("Assembled tx: nonce=%d gasPrice=%s chainID=%s", nonce, gasPrice, chainID)

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
	})

	return &UnsignedTx{Tx: tx, ChainID: chainID, From: from}, nil
}
