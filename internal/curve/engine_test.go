// internal/curve/engine_test.go
package curve_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/moonforge/launchpad/internal/curve"
	"github.com/moonforge/launchpad/internal/ledger"
	"github.com/moonforge/launchpad/internal/store"
)

type testEnv struct {
	engine *curve.Engine
	store  *store.Memory
	ledger *ledger.Ledger

	seed      solana.PublicKey
	authority solana.PublicKey
	team      solana.PublicKey
	dev       solana.PublicKey
}

func newTestEnv(t *testing.T, opts ...curve.Option) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     store.NewMemory(),
		ledger:    ledger.New(),
		seed:      solana.NewWallet().PublicKey(),
		authority: solana.NewWallet().PublicKey(),
		team:      solana.NewWallet().PublicKey(),
		dev:       solana.NewWallet().PublicKey(),
	}
	env.engine = curve.New(env.store, env.ledger, env.seed, zaptest.NewLogger(t), opts...)
	return env
}

// policyConfig is a valid baseline Config: 1% platform fees, 1% platform
// share and 50% dev share of the gross fee, the whole supply on the curve.
func (env *testEnv) policyConfig() curve.Config {
	return curve.Config{
		Authority:           env.authority,
		TeamWallet:          env.team,
		DevWallet:           env.dev,
		InitBondingCurve:    100,
		PlatformBuyFee:      100,
		PlatformSellFee:     100,
		TradingFeeBps:       100,
		DevFeeShareBps:      5000,
		DevFeeEnabled:       true,
		CurveLimit:          100_000_000_000,
		LamportAmountConfig: curve.RangeConfig[uint64](nil, nil),
		TokenSupplyConfig:   curve.RangeConfig[uint64](nil, nil),
		TokenDecimalsConfig: curve.EnumConfig[uint8](6, 9),
	}
}

func (env *testEnv) configure(t *testing.T, cfg curve.Config) {
	t.Helper()
	require.NoError(t, env.engine.Configure(context.Background(), env.seed, cfg))
}

func TestConfigureSeedAuthority(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	stranger := solana.NewWallet().PublicKey()

	err := env.engine.Configure(ctx, stranger, env.policyConfig())
	assert.ErrorIs(t, err, curve.ErrIncorrectAuthority)
	_, ok := env.engine.Config()
	assert.False(t, ok)

	// First configure is open to the seed authority only.
	require.NoError(t, env.engine.Configure(ctx, env.seed, env.policyConfig()))

	// Once the record exists, only the configured authority may replace it.
	err = env.engine.Configure(ctx, env.seed, env.policyConfig())
	assert.ErrorIs(t, err, curve.ErrIncorrectAuthority)
	require.NoError(t, env.engine.Configure(ctx, env.authority, env.policyConfig()))
}

func TestConfigureDefaults(t *testing.T) {
	env := newTestEnv(t)

	cfg := env.policyConfig()
	cfg.TradingFeeBps = 0
	cfg.DevFeeShareBps = 0
	env.configure(t, cfg)

	got, ok := env.engine.Config()
	require.True(t, ok)
	assert.Equal(t, uint16(100), got.TradingFeeBps)
	assert.Equal(t, uint16(5000), got.DevFeeShareBps)
	assert.True(t, got.DevFeeEnabled)

	// A zero dev wallet forces the dev leg off regardless of the flag.
	cfg = env.policyConfig()
	cfg.DevWallet = solana.PublicKey{}
	cfg.DevFeeEnabled = true
	require.NoError(t, env.engine.Configure(context.Background(), env.authority, cfg))

	got, ok = env.engine.Config()
	require.True(t, ok)
	assert.False(t, got.DevFeeEnabled)
}

func TestConfigureValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*curve.Config)
		wantErr error
	}{
		{"buy fee above denominator", func(c *curve.Config) { c.PlatformBuyFee = 10_001 }, curve.ErrValueTooLarge},
		{"sell fee above denominator", func(c *curve.Config) { c.PlatformSellFee = 10_001 }, curve.ErrValueTooLarge},
		{"fee shares above denominator", func(c *curve.Config) {
			c.TradingFeeBps = 6_000
			c.DevFeeShareBps = 5_000
		}, curve.ErrValueTooLarge},
		{"zero curve limit", func(c *curve.Config) { c.CurveLimit = 0 }, curve.ErrValueInvalid},
		{"curve share above 100 percent", func(c *curve.Config) { c.InitBondingCurve = 101 }, curve.ErrValueInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			cfg := env.policyConfig()
			tt.mutate(&cfg)

			err := env.engine.Configure(context.Background(), env.seed, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
			_, ok := env.engine.Config()
			assert.False(t, ok)
		})
	}
}

func TestAuthorityHandoff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	nominee := solana.NewWallet().PublicKey()
	stranger := solana.NewWallet().PublicKey()

	err := env.engine.NominateAuthority(ctx, env.authority, nominee)
	assert.ErrorIs(t, err, curve.ErrIncorrectConfigAccount)

	env.configure(t, env.policyConfig())

	// No handoff in progress.
	err = env.engine.AcceptAuthority(ctx, nominee)
	assert.ErrorIs(t, err, curve.ErrIncorrectAuthority)

	err = env.engine.NominateAuthority(ctx, stranger, nominee)
	assert.ErrorIs(t, err, curve.ErrIncorrectAuthority)

	require.NoError(t, env.engine.NominateAuthority(ctx, env.authority, nominee))

	// Only the nominee may accept; a failed accept leaves the handoff staged.
	err = env.engine.AcceptAuthority(ctx, stranger)
	assert.ErrorIs(t, err, curve.ErrIncorrectAuthority)
	cfg, ok := env.engine.Config()
	require.True(t, ok)
	assert.Equal(t, env.authority, cfg.Authority)
	assert.Equal(t, nominee, cfg.PendingAuthority)

	require.NoError(t, env.engine.AcceptAuthority(ctx, nominee))
	cfg, ok = env.engine.Config()
	require.True(t, ok)
	assert.Equal(t, nominee, cfg.Authority)
	assert.True(t, cfg.PendingAuthority.IsZero())

	// The old authority is fully retired.
	err = env.engine.NominateAuthority(ctx, env.authority, stranger)
	assert.ErrorIs(t, err, curve.ErrIncorrectAuthority)
}
