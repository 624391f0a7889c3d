package wei

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "whole", amount: "1", want: "1000000000000000000"},
		{name: "fraction", amount: "0.01", want: "10000000000000000"},
		{name: "mixed", amount: "2.5", want: "2500000000000000000"},
		{name: "eighteen_digits", amount: "0.000000000000000001", want: "1"},
		{name: "zero", amount: "0", want: "0"},
		{name: "leading_dot", amount: ".5", want: "500000000000000000"},
		{name: "trailing_dot", amount: "3.", want: "3000000000000000000"},
		{name: "large", amount: "100000000", want: "100000000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEther(tt.amount)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseEtherRejects(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{name: "nineteen_digits", amount: "0.0000000000000000001"},
		{name: "excess_precision_not_truncated", amount: "1.1234567890123456789"},
		{name: "empty", amount: ""},
		{name: "dot_only", amount: "."},
		{name: "negative", amount: "-1"},
		{name: "not_a_number", amount: "abc"},
		{name: "hex_fraction", amount: "1.ff"},
		{name: "scientific", amount: "1e18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEther(tt.amount)
			require.Error(t, err)
		})
	}
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		name string
		wei  string
		want string
	}{
		{name: "two_and_a_half", wei: "2500000000000000000", want: "2.5"},
		{name: "whole", wei: "1000000000000000000", want: "1"},
		{name: "one_wei", wei: "1", want: "0.000000000000000001"},
		{name: "zero", wei: "0", want: "0"},
		{name: "trim_trailing_zeros", wei: "10000000000000000", want: "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tt.wei, 10)
			require.True(t, ok)
			require.Equal(t, tt.want, FormatEther(v))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	amounts := []string{"1", "2.5", "0.01", "0.000000000000000001", "123456.789"}
	for _, amount := range amounts {
		parsed, err := ParseEther(amount)
		require.NoError(t, err)
		require.Equal(t, amount, FormatEther(parsed), "ether->wei->ether must round-trip exactly")
	}
}
