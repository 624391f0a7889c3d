package wallet

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// Well-known development key (ganache account 0).
const (
	testKeyHex  = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"
	testAddress = "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"
)

func TestLoadKey(t *testing.T) {
	account, err := LoadKey(testKeyHex)
	require.NoError(t, err)
	require.Equal(t, testAddress, account.Address().Hex())
}

func TestLoadKeyWithPrefix(t *testing.T) {
	plain, err := LoadKey(testKeyHex)
	require.NoError(t, err)
	prefixed, err := LoadKey("0x" + testKeyHex)
	require.NoError(t, err)
	require.Equal(t, plain.Address(), prefixed.Address())
}

func TestLoadKeyRejects(t *testing.T) {
	curveOrder := "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"

	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "prefix_only", key: "0x"},
		{name: "not_hex", key: strings.Repeat("zz", 32)},
		{name: "too_short", key: "abcd"},
		{name: "too_long", key: strings.Repeat("ab", 33)},
		{name: "zero_scalar", key: strings.Repeat("00", 32)},
		{name: "curve_order", key: curveOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKey(tt.key)
			require.Error(t, err)
			var invalid *InvalidKeyError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestLoadKeyRoundTripsGeneratedKeys(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	account, err := LoadKey(hex.EncodeToString(crypto.FromECDSA(key)))
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), account.Address())
}

func TestSignTxDeterministic(t *testing.T) {
	account, err := LoadKey(testKeyHex)
	require.NoError(t, err)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	chainID := big.NewInt(1)
	unsigned := types.NewTx(&types.LegacyTx{
		Nonce:    5,
		GasPrice: big.NewInt(20000000000),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(10000000000000000),
	})

	first, err := account.SignTx(unsigned, chainID)
	require.NoError(t, err)
	second, err := account.SignTx(unsigned, chainID)
	require.NoError(t, err)

	v1, r1, s1 := first.RawSignatureValues()
	v2, r2, s2 := second.RawSignatureValues()
	require.Zero(t, v1.Cmp(v2))
	require.Zero(t, r1.Cmp(r2))
	require.Zero(t, s1.Cmp(s2))

	// The hash is derivable without network access and stable.
	require.Equal(t, first.Hash(), second.Hash())
}

func TestSignTxRecoversSender(t *testing.T) {
	account, err := LoadKey(testKeyHex)
	require.NoError(t, err)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	chainID := big.NewInt(1)
	unsigned := types.NewTx(&types.LegacyTx{
		Nonce:    0,
		GasPrice: big.NewInt(1000000000),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(1),
	})

	signed, err := account.SignTx(unsigned, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.NewEIP155Signer(chainID), signed)
	require.NoError(t, err)
	require.Equal(t, account.Address(), sender)
}

func TestSignTxRequiresChainID(t *testing.T) {
	account, err := LoadKey(testKeyHex)
	require.NoError(t, err)

	unsigned := types.NewTx(&types.LegacyTx{Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(0)})
	_, err = account.SignTx(unsigned, nil)
	require.Error(t, err)
}
