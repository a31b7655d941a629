// internal/curve/state_test.go
package curve

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedAddresses(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	cfgAddr, err := ConfigAddress()
	require.NoError(t, err)
	curveAddr, err := CurveAddress(mint)
	require.NoError(t, err)
	vaultAddr, err := VaultAddress(mint)
	require.NoError(t, err)

	assert.False(t, cfgAddr.IsZero())
	assert.NotEqual(t, curveAddr, vaultAddr)

	// Derivation is a pure function of the seeds.
	again, err := CurveAddress(mint)
	require.NoError(t, err)
	assert.Equal(t, curveAddr, again)

	other, err := CurveAddress(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.NotEqual(t, curveAddr, other)
}

func TestUpdateReservesLatch(t *testing.T) {
	bc := BondingCurve{CurveLimit: 100}

	assert.False(t, bc.updateReserves(1_000, 99))
	assert.False(t, bc.IsCompleted)

	assert.True(t, bc.updateReserves(900, 100))
	assert.True(t, bc.IsCompleted)

	// The latch never releases, even if reserves later drop below the limit.
	assert.True(t, bc.updateReserves(900, 50))
	assert.True(t, bc.IsCompleted)
}

func TestPrice(t *testing.T) {
	bc := BondingCurve{ReserveToken: 1_000_000_000_000, ReserveLamport: 30_000_000_000}

	// 30 SOL / 1_000_000 whole tokens = 0.00003 SOL per token.
	assert.Equal(t, "0.00003", bc.Price(6).String())

	empty := BondingCurve{}
	assert.True(t, empty.Price(6).IsZero())
}

func TestProgress(t *testing.T) {
	bc := BondingCurve{ReserveLamport: 30_000_000_000, CurveLimit: 100_000_000_000}
	assert.Equal(t, "30", bc.Progress().String())

	bc.ReserveLamport = 120_000_000_000
	assert.Equal(t, "100", bc.Progress().String())

	unlaunched := BondingCurve{}
	assert.True(t, unlaunched.Progress().IsZero())
}
