package contract

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseArguments converts string-form CLI arguments into the Go values the
// ABI encoder expects for the given function's parameter types.
func ParseArguments(contractABI abi.ABI, function string, raw []string) ([]interface{}, error) {
	method, ok := contractABI.Methods[function]
	if !ok {
		return nil, &EncodingError{Function: function, Reason: "function not present in ABI"}
	}
	if len(raw) != len(method.Inputs) {
		return nil, &EncodingError{
			Function: function,
			Reason:   fmt.Sprintf("expects %d arguments, got %d", len(method.Inputs), len(raw)),
		}
	}

	args := make([]interface{}, len(raw))
	for i, input := range method.Inputs {
		value, err := parseArgument(input.Type, raw[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, &EncodingError{Function: function, Param: name, Reason: err.Error()}
		}
		args[i] = value
	}
	return args, nil
}

func parseArgument(t abi.Type, raw string) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("%q is not a hex address", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return sizedInteger(t, n)

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return b, nil

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not 0x-prefixed hex", raw)
		}
		return data, nil

	case abi.FixedBytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not 0x-prefixed hex", raw)
		}
		if len(data) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(data))
		}
		fixed := reflect.New(t.GetType()).Elem()
		reflect.Copy(fixed, reflect.ValueOf(data))
		return fixed.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported parameter type %s", t.String())
	}
}

// sizedInteger narrows a big.Int to the native Go type the encoder expects
// for the widths it maps to native integers; other widths stay *big.Int.
func sizedInteger(t abi.Type, n *big.Int) (interface{}, error) {
	switch t.Size {
	case 8, 16, 32, 64:
	default:
		return n, nil
	}
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s does not fit in uint%d", n, t.Size)
		}
		v := n.Uint64()
		switch t.Size {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		default:
			return v, nil
		}
	}
	if !n.IsInt64() {
		return nil, fmt.Errorf("%s does not fit in int%d", n, t.Size)
	}
	v := n.Int64()
	if t.Size < 64 {
		min := int64(-1) << (t.Size - 1)
		max := int64(1)<<(t.Size-1) - 1
		if v < min || v > max {
			return nil, fmt.Errorf("%s does not fit in int%d", n, t.Size)
		}
	}
	switch t.Size {
	case 8:
		return int8(v), nil
	case 16:
		return int16(v), nil
	case 32:
		return int32(v), nil
	default:
		return v, nil
	}
}
