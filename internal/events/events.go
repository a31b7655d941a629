// internal/events/events.go

// Package events carries the engine's emitted events and fans them out to
// subscribed sinks. Emission never fails the emitting operation: delivery is
// asynchronous and failures are logged.
package events

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Event is anything the engine emits.
type Event interface {
	Type() string
}

// CompleteEvent marks the Active -> Completed transition of a curve.
type CompleteEvent struct {
	User         solana.PublicKey `json:"user"`
	Mint         solana.PublicKey `json:"mint"`
	BondingCurve solana.PublicKey `json:"bonding_curve"`
	Timestamp    time.Time        `json:"timestamp"`
}

func (e CompleteEvent) Type() string { return "curve_completed" }

// SwapEvent traces every successful swap.
type SwapEvent struct {
	User        solana.PublicKey `json:"user"`
	Mint        solana.PublicKey `json:"mint"`
	Direction   uint8            `json:"direction"`
	AmountIn    uint64           `json:"amount_in"`
	AmountOut   uint64           `json:"amount_out"`
	PlatformFee uint64           `json:"platform_fee"`
	DevFee      uint64           `json:"dev_fee"`
	Timestamp   time.Time        `json:"timestamp"`
}

func (e SwapEvent) Type() string { return "swap" }

// Sink receives events. Implementations must tolerate concurrent delivery.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Deliver(ctx context.Context, event Event) error { return f(ctx, event) }

// Dispatcher fans events out to sinks on background goroutines and drains
// them on Close.
type Dispatcher struct {
	sinks  []Sink
	logger *zap.Logger
	group  *errgroup.Group
}

// NewDispatcher returns a dispatcher with no sinks; events emitted before any
// Subscribe call are dropped.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		logger: logger,
		group:  &errgroup.Group{},
	}
}

// Subscribe registers a sink. Not safe to call concurrently with Emit.
func (d *Dispatcher) Subscribe(s Sink) {
	d.sinks = append(d.sinks, s)
}

// Emit delivers event to every sink asynchronously. Delivery failures are
// logged, never propagated to the emitter.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	for _, s := range d.sinks {
		sink := s
		d.group.Go(func() error {
			if err := sink.Deliver(ctx, event); err != nil {
				d.logger.Warn("event delivery failed",
					zap.String("event_type", event.Type()),
					zap.Error(err))
			}
			return nil
		})
	}
}

// Close waits for in-flight deliveries to finish.
func (d *Dispatcher) Close() error {
	return d.group.Wait()
}
