package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavlenkotm/web3/db"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name  string
		entry db.Entry
		want  string
	}{
		{name: "no_receipt_is_pending", entry: db.Entry{Confirmed: false, Status: 0}, want: "pending"},
		{name: "mined_success", entry: db.Entry{Confirmed: true, Status: 1}, want: "success"},
		{name: "mined_reverted_is_failed", entry: db.Entry{Confirmed: true, Status: 0}, want: "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, statusLabel(tt.entry))
		})
	}
}
