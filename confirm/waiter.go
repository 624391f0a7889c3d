package confirm

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the fixed delay between receipt polls.
const DefaultInterval = 2 * time.Second

// DefaultTimeout bounds how long a confirmation wait may run.
const DefaultTimeout = 120 * time.Second

// TimeoutError indicates the transaction was not mined before the
// confirmation deadline.
type TimeoutError struct {
	Hash    common.Hash
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed within %s", e.Hash.Hex(), e.Timeout)
}

// CancelledError indicates the caller's context was cancelled while
// waiting. It is distinct from TimeoutError.
type CancelledError struct {
	Hash common.Hash
	Err  error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("confirmation wait for %s cancelled: %v", e.Hash.Hex(), e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// ReceiptGetter is the single client operation the waiter needs. A pending
// transaction returns (nil, nil).
type ReceiptGetter interface {
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Waiter polls for transaction receipts on a fixed interval until mined
// or timed out. The clock is injectable so tests never sleep in wall time.
type Waiter struct {
	client   ReceiptGetter
	interval time.Duration
	log      *logrus.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewWaiter creates a Waiter with the default 2s polling interval.
func NewWaiter(client ReceiptGetter, log *logrus.Logger) *Waiter {
	return &Waiter{
		client:   client,
		interval: DefaultInterval,
		log:      log,
		now:      time.Now,
		after:    time.After,
	}
}

// WithClock replaces the wall clock. Tests inject a fake time source here.
func (w *Waiter) WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) *Waiter {
	w.now = now
	w.after = after
	return w
}

// WithInterval overrides the polling interval. Intervals below 100ms are
// clamped so the loop can never busy-spin.
func (w *Waiter) WithInterval(interval time.Duration) *Waiter {
	if interval < 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}
	w.interval = interval
	return w
}

// WaitForReceipt polls until the transaction is mined or the timeout
// elapses. Expiry fails with TimeoutError; a cancelled context fails with
// CancelledError. Each poll is a fresh lookup, there is no local cache.
func (w *Waiter) WaitForReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := w.now().Add(timeout)

	for {
		receipt, err := w.client.TransactionReceipt(ctx, hash)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &CancelledError{Hash: hash, Err: ctx.Err()}
			}
			return nil, err
		}
		if receipt != nil {
			w.log.Debugf("Receipt found for %s in block %s", hash.Hex(), receipt.BlockNumber)
			return receipt, nil
		}

		remaining := deadline.Sub(w.now())
		if remaining <= 0 {
			return nil, &TimeoutError{Hash: hash, Timeout: timeout}
		}

		sleep := w.interval
		if remaining < sleep {
			sleep = remaining
		}

		select {
		case <-ctx.Done():
			return nil, &CancelledError{Hash: hash, Err: ctx.Err()}
		case <-w.after(sleep):
		}
	}
}
