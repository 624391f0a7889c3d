package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/pavlenkotm/web3/eth"
)

// EncodingError indicates the supplied arguments do not match the ABI
// entry's declared parameters. Param names the offending parameter when
// the mismatch is per-argument.
type EncodingError struct {
	Function string
	Param    string
	Reason   string
}

func (e *EncodingError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("cannot encode call to %s: parameter %s: %s", e.Function, e.Param, e.Reason)
	}
	return fmt.Sprintf("cannot encode call to %s: %s", e.Function, e.Reason)
}

// DecodingError indicates return data that does not match the ABI entry's
// declared return types.
type DecodingError struct {
	Function string
	Reason   string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("cannot decode result of %s: %s", e.Function, e.Reason)
}

// ParseABI parses a JSON ABI definition.
func ParseABI(def string) (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsed, nil
}

// Selector computes the 4-byte function selector: the first four bytes of
// the Keccak-256 hash of the canonical function signature.
func Selector(signature string) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(signature))
	return hash.Sum(nil)[:4]
}

// EncodeCall produces the call data for the given function: the 4-byte
// selector followed by the ABI-encoded argument tuple. Argument count and
// per-argument type compatibility are validated against the ABI entry.
func EncodeCall(contractABI abi.ABI, function string, args []interface{}) ([]byte, error) {
	method, ok := contractABI.Methods[function]
	if !ok {
		return nil, &EncodingError{Function: function, Reason: "function not present in ABI"}
	}
	if len(args) != len(method.Inputs) {
		return nil, &EncodingError{
			Function: function,
			Reason:   fmt.Sprintf("expects %d arguments, got %d", len(method.Inputs), len(args)),
		}
	}

	// Pack arguments one at a time first so a type mismatch names the
	// parameter it belongs to.
	for i, input := range method.Inputs {
		if _, err := (abi.Arguments{input}).Pack(args[i]); err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, &EncodingError{Function: function, Param: name, Reason: err.Error()}
		}
	}

	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, &EncodingError{Function: function, Reason: err.Error()}
	}

	return append(Selector(method.Sig), packed...), nil
}

// DecodeResult unpacks return data per the ABI entry's declared return
// types.
func DecodeResult(contractABI abi.ABI, function string, data []byte) ([]interface{}, error) {
	method, ok := contractABI.Methods[function]
	if !ok {
		return nil, &DecodingError{Function: function, Reason: "function not present in ABI"}
	}
	if len(method.Outputs) > 0 && len(data) == 0 {
		return nil, &DecodingError{Function: function, Reason: "empty return data"}
	}

	values, err := method.Outputs.Unpack(data)
	if err != nil {
		return nil, &DecodingError{Function: function, Reason: err.Error()}
	}
	return values, nil
}

// Call encodes a read-only contract call, issues it as eth_call via the
// client and decodes the result. No account or signature is involved.
func Call(ctx context.Context, client *eth.Client, contractAddr common.Address, contractABI abi.ABI, function string, args []interface{}) ([]interface{}, error) {
	data, err := EncodeCall(contractABI, function, args)
	if err != nil {
		return nil, err
	}

	out, err := client.CallContract(ctx, ethereum.CallMsg{To: &contractAddr, Data: data})
	if err != nil {
		return nil, err
	}

	return DecodeResult(contractABI, function, out)
}
