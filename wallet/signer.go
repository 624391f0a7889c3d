package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// InvalidKeyError indicates a private key that could not be parsed or is
// outside the valid secp256k1 scalar range.
type InvalidKeyError struct {
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid private key: %s", e.Reason)
}

// Account holds one in-memory private key and its derived address.
// The key is never logged and never written to disk.
type Account struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// LoadKey parses a hex-encoded 32-byte private key, with or without a
// leading 0x prefix, and derives its address.
func LoadKey(privateKeyHex string) (*Account, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if keyHex == "" {
		return nil, &InvalidKeyError{Reason: "empty key"}
	}

	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, &InvalidKeyError{Reason: "not valid hex"}
	}
	if len(raw) != 32 {
		return nil, &InvalidKeyError{Reason: fmt.Sprintf("decoded length is %d bytes, want 32", len(raw))}
	}

	// ToECDSA rejects scalars outside [1, N-1].
	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, &InvalidKeyError{Reason: "scalar outside the valid curve range"}
	}

	return &Account{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// NewAccount wraps an already-parsed ECDSA key.
func NewAccount(key *ecdsa.PrivateKey) *Account {
	return &Account{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the account's derived 20-byte address.
func (a *Account) Address() common.Address {
	return a.address
}

// SignTx signs a transaction with the account key under EIP-155 replay
// protection for the given chain id. Signing is deterministic: the same
// key and transaction always produce the same signature.
func (a *Account) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if chainID == nil {
		return nil, fmt.Errorf("chain id is required for signing")
	}
	signer := types.NewEIP155Signer(chainID)
	signed, err := types.SignTx(tx, signer, a.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
