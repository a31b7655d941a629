// internal/curve/engine.go

// Package curve implements the bonding-curve launchpad state machine:
// a policy Config singleton, per-mint BondingCurve records, constant-product
// pricing with a platform/dev fee split, a monotonic completion latch, and
// the launch / swap / withdraw operations around them.
//
// Operations are deterministic and applied serially; every operation either
// commits all of its record mutations and fund legs or none of them.
package curve

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/internal/events"
	"github.com/moonforge/launchpad/internal/ledger"
)

// Store persists the engine's records: one Config keyed by a fixed seed and
// one BondingCurve per mint.
type Store interface {
	Config() (Config, bool)
	SetConfig(cfg Config)
	Curve(mint solana.PublicKey) (BondingCurve, bool)
	SetCurve(bc BondingCurve)
	Curves() []BondingCurve
}

// Engine ties the store, the ledger and the event dispatcher together and
// exposes the launchpad operations.
type Engine struct {
	store  Store
	ledger *ledger.Ledger
	events *events.Dispatcher
	logger *zap.Logger

	// seedAuthority may create the Config record when none exists yet.
	seedAuthority solana.PublicKey

	now func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to pin the
// swap deadline checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithDispatcher attaches an event dispatcher. Without one, events are only
// logged.
func WithDispatcher(d *events.Dispatcher) Option {
	return func(e *Engine) { e.events = d }
}

// New builds an engine. seedAuthority is the identity allowed to create the
// Config record on first configure.
func New(st Store, led *ledger.Ledger, seedAuthority solana.PublicKey, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:         st,
		ledger:        led,
		logger:        logger,
		seedAuthority: seedAuthority,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ledger exposes the underlying ledger for balance queries and faucet use.
func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

// Config returns the current policy record.
func (e *Engine) Config() (Config, bool) { return e.store.Config() }

// Curve returns the record for mint.
func (e *Engine) Curve(mint solana.PublicKey) (BondingCurve, bool) { return e.store.Curve(mint) }

// Curves lists every launched curve.
func (e *Engine) Curves() []BondingCurve { return e.store.Curves() }

// Configure replaces the Config singleton. The caller must be the current
// authority, or the seed authority when no record exists yet. Zero-valued fee
// fields receive defaults on every call.
func (e *Engine) Configure(ctx context.Context, caller solana.PublicKey, newCfg Config) error {
	expected := e.seedAuthority
	if existing, ok := e.store.Config(); ok {
		expected = existing.Authority
	}
	if !caller.Equals(expected) {
		return ErrIncorrectAuthority
	}

	newCfg.applyDefaults()
	if err := newCfg.validate(); err != nil {
		return err
	}

	e.store.SetConfig(newCfg)
	e.logger.Info("config replaced",
		zap.String("authority", newCfg.Authority.String()),
		zap.String("team_wallet", newCfg.TeamWallet.String()),
		zap.Uint64("curve_limit", newCfg.CurveLimit),
		zap.Uint16("trading_fee_bps", newCfg.TradingFeeBps),
		zap.Uint16("dev_fee_share_bps", newCfg.DevFeeShareBps),
		zap.Bool("dev_fee_enabled", newCfg.DevFeeEnabled))
	return nil
}

// NominateAuthority stages a two-step authority handoff.
func (e *Engine) NominateAuthority(ctx context.Context, caller, newAdmin solana.PublicKey) error {
	cfg, ok := e.store.Config()
	if !ok {
		return ErrIncorrectConfigAccount
	}
	if !caller.Equals(cfg.Authority) {
		return ErrIncorrectAuthority
	}

	cfg.PendingAuthority = newAdmin
	e.store.SetConfig(cfg)
	e.logger.Info("authority nominated",
		zap.String("current", cfg.Authority.String()),
		zap.String("pending", newAdmin.String()))
	return nil
}

// AcceptAuthority promotes the nominee. Only the pending authority may call;
// the pending slot is cleared on success.
func (e *Engine) AcceptAuthority(ctx context.Context, caller solana.PublicKey) error {
	cfg, ok := e.store.Config()
	if !ok {
		return ErrIncorrectConfigAccount
	}
	if cfg.PendingAuthority.IsZero() || !caller.Equals(cfg.PendingAuthority) {
		return ErrIncorrectAuthority
	}

	cfg.Authority = cfg.PendingAuthority
	cfg.PendingAuthority = solana.PublicKey{}
	e.store.SetConfig(cfg)
	e.logger.Info("authority accepted", zap.String("authority", cfg.Authority.String()))
	return nil
}

func (e *Engine) emit(ctx context.Context, ev events.Event) {
	if e.events != nil {
		e.events.Emit(ctx, ev)
	}
}
