// internal/events/events_test.go
package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDispatcherFansOut(t *testing.T) {
	d := NewDispatcher(zaptest.NewLogger(t))

	var (
		mu       sync.Mutex
		received [][]Event
	)
	for i := 0; i < 3; i++ {
		i := i
		received = append(received, nil)
		d.Subscribe(SinkFunc(func(ctx context.Context, ev Event) error {
			mu.Lock()
			defer mu.Unlock()
			received[i] = append(received[i], ev)
			return nil
		}))
	}

	ev := SwapEvent{
		User:      solana.NewWallet().PublicKey(),
		Mint:      solana.NewWallet().PublicKey(),
		AmountIn:  1_000_000,
		AmountOut: 31_945_788,
		Timestamp: time.Now(),
	}
	d.Emit(context.Background(), ev)
	require.NoError(t, d.Close())

	mu.Lock()
	defer mu.Unlock()
	for _, got := range received {
		require.Len(t, got, 1)
		assert.Equal(t, ev, got[0])
	}
}

func TestDispatcherSwallowsSinkErrors(t *testing.T) {
	d := NewDispatcher(zaptest.NewLogger(t))

	var delivered int
	var mu sync.Mutex
	d.Subscribe(SinkFunc(func(ctx context.Context, ev Event) error {
		return errors.New("sink down")
	}))
	d.Subscribe(SinkFunc(func(ctx context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		delivered++
		return nil
	}))

	d.Emit(context.Background(), CompleteEvent{Mint: solana.NewWallet().PublicKey()})
	require.NoError(t, d.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, delivered)
}

func TestDispatcherNoSinks(t *testing.T) {
	d := NewDispatcher(zaptest.NewLogger(t))
	d.Emit(context.Background(), CompleteEvent{})
	assert.NoError(t, d.Close())
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, "swap", SwapEvent{}.Type())
	assert.Equal(t, "curve_completed", CompleteEvent{}.Type())
}
