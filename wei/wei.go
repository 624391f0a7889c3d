package wei

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the number of wei digits in one ether.
const Decimals = 18

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// ParseEther converts a decimal ether amount to wei. The conversion is
// exact: amounts with more than 18 fractional digits are rejected rather
// than truncated, and floating point never enters the computation.
func ParseEther(amount string) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if neg {
		return nil, fmt.Errorf("negative amount %q", amount)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", amount, Decimals)
	}
	if whole == "" {
		whole = "0"
	}

	wholeInt, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}

	// Pad the fraction out to 18 digits so it scales exactly.
	fracInt := big.NewInt(0)
	if frac != "" {
		padded := frac + strings.Repeat("0", Decimals-len(frac))
		fracInt, ok = new(big.Int).SetString(padded, 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q", amount)
		}
	}

	return new(big.Int).Add(new(big.Int).Mul(wholeInt, weiPerEther), fracInt), nil
}

// FormatEther renders a wei value as a decimal ether string using exact
// integer division and remainder, never floating point. Trailing zeros in
// the fraction are trimmed.
func FormatEther(value *big.Int) string {
	if value == nil {
		return "0"
	}
	sign := ""
	v := new(big.Int).Set(value)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}

	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(v, weiPerEther, frac)

	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	fracStr := fmt.Sprintf("%018s", frac.String())
	fracStr = strings.TrimRight(fracStr, "0")
	return sign + whole.String() + "." + fracStr
}
