package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVisitsEveryIndex(t *testing.T) {
	var seen [100]atomic.Int32
	err := Run(context.Background(), len(seen), 8, func(_ context.Context, i int) error {
		seen[i].Add(1)
		return nil
	})
	require.NoError(t, err)
	for i := range seen {
		assert.EqualValues(t, 1, seen[i].Load(), "index %d", i)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	err := Run(context.Background(), 50, 3, func(_ context.Context, _ int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), 10, 1, func(ctx context.Context, i int) error {
		if i == 2 {
			return boom
		}
		return ctx.Err()
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	err := Run(ctx, 10, 0, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestMapPreservesOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	out, err := Map(context.Background(), in, 2, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, out)

	_, err = Map(context.Background(), in, 2, func(_ context.Context, v int) (int, error) {
		if v == 4 {
			return 0, errors.New("four")
		}
		return v, nil
	})
	assert.EqualError(t, err, "four")
}
