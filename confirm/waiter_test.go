package confirm

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when the waiter sleeps, so tests never wait in
// wall time.
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	wakeup chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// blockedAfter never fires; used to force the cancellation branch.
func blockedAfter(time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

// scriptedGetter returns nil receipts until the configured poll count is
// reached.
type scriptedGetter struct {
	polls       int
	confirmedAt int
	receipt     *types.Receipt
}

func (g *scriptedGetter) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	g.polls++
	if g.confirmedAt > 0 && g.polls >= g.confirmedAt {
		return g.receipt, nil
	}
	return nil, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testHash() common.Hash {
	return common.HexToHash("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
}

func TestWaitForReceiptFindsReceipt(t *testing.T) {
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		GasUsed:     21000,
		BlockNumber: big.NewInt(100),
		TxHash:      testHash(),
	}
	getter := &scriptedGetter{confirmedAt: 3, receipt: receipt}
	clock := newFakeClock()

	waiter := NewWaiter(getter, testLogger()).WithClock(clock.Now, clock.After)

	got, err := waiter.WaitForReceipt(context.Background(), testHash(), 120*time.Second)
	require.NoError(t, err)
	require.Equal(t, receipt, got)
	require.Equal(t, 3, getter.polls)

	// Two sleeps of the fixed interval before the third poll.
	require.Equal(t, []time.Duration{DefaultInterval, DefaultInterval}, clock.slept)
}

func TestWaitForReceiptTimesOut(t *testing.T) {
	getter := &scriptedGetter{}
	clock := newFakeClock()
	start := clock.Now()

	waiter := NewWaiter(getter, testLogger()).WithClock(clock.Now, clock.After)

	_, err := waiter.WaitForReceipt(context.Background(), testHash(), 1*time.Second)
	require.Error(t, err)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, testHash(), timeout.Hash)

	// The last sleep is clamped to the remaining budget, so the wait ends
	// exactly at the deadline: never immediately, never past it.
	require.Equal(t, start.Add(1*time.Second), clock.Now())
	require.Equal(t, 2, getter.polls)
}

func TestWaitForReceiptNeverBusySpins(t *testing.T) {
	getter := &scriptedGetter{}
	clock := newFakeClock()

	waiter := NewWaiter(getter, testLogger()).
		WithClock(clock.Now, clock.After).
		WithInterval(time.Nanosecond) // clamped to the floor

	_, err := waiter.WaitForReceipt(context.Background(), testHash(), time.Second)
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)

	for _, slept := range clock.slept {
		require.GreaterOrEqual(t, slept, 100*time.Millisecond)
	}
}

func TestWaitForReceiptCancelled(t *testing.T) {
	getter := &scriptedGetter{}
	clock := newFakeClock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	waiter := NewWaiter(getter, testLogger()).WithClock(clock.Now, blockedAfter)

	_, err := waiter.WaitForReceipt(ctx, testHash(), 120*time.Second)
	require.Error(t, err)

	var cancelled *CancelledError
	require.ErrorAs(t, err, &cancelled)

	// Cancellation is distinct from timeout.
	var timeout *TimeoutError
	require.False(t, errors.As(err, &timeout))
}
