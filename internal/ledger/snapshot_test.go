// internal/ledger/snapshot_test.go
package ledger

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	l := New()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	alice := solana.NewWallet().PublicKey()
	bob := solana.NewWallet().PublicKey()
	md := Metadata{Name: "Moon Token", Symbol: "MOON", URI: "https://example.com/moon.json"}

	require.NoError(t, l.CreateMint(mint, authority, 6, md))
	require.NoError(t, l.MintTo(mint, authority, alice, 1_000_000))
	require.NoError(t, l.MintTo(mint, authority, bob, 250_000))
	require.NoError(t, l.RevokeMintAuthority(mint, authority))
	l.CreditLamports(alice, 5_000_000_000)
	l.CreditLamports(bob, 123)

	data, err := l.Snapshot()
	require.NoError(t, err)

	restored := New()
	require.NoError(t, restored.Restore(data))

	assert.Equal(t, uint64(5_000_000_000), restored.Lamports(alice))
	assert.Equal(t, uint64(123), restored.Lamports(bob))
	assert.Equal(t, uint64(1_000_000), restored.TokenBalance(mint, alice))
	assert.Equal(t, uint64(250_000), restored.TokenBalance(mint, bob))

	info, err := restored.MintInfo(mint)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), info.Decimals)
	assert.Equal(t, uint64(1_250_000), info.Supply)
	assert.Equal(t, md, info.Metadata)
	assert.False(t, info.HasMintAuthority())
	assert.True(t, info.HasFreezeAuthority())

	// Restore replaces state wholesale, so restoring twice is idempotent.
	require.NoError(t, restored.Restore(data))
	assert.Equal(t, uint64(123), restored.Lamports(bob))
}

func TestSnapshotDeterministic(t *testing.T) {
	l := New()
	authority := solana.NewWallet().PublicKey()
	for i := 0; i < 10; i++ {
		mint := solana.NewWallet().PublicKey()
		require.NoError(t, l.CreateMint(mint, authority, 9, Metadata{Symbol: "X"}))
		require.NoError(t, l.MintTo(mint, authority, solana.NewWallet().PublicKey(), uint64(i+1)))
		l.CreditLamports(solana.NewWallet().PublicKey(), uint64(i))
	}

	first, err := l.Snapshot()
	require.NoError(t, err)
	second, err := l.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRestoreRejectsTruncatedData(t *testing.T) {
	l := New()
	l.CreditLamports(solana.NewWallet().PublicKey(), 42)

	data, err := l.Snapshot()
	require.NoError(t, err)

	assert.Error(t, New().Restore(data[:len(data)-1]))
}
