// internal/curve/state.go
package curve

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// ProgramID anchors every derived address. It matches the deployed launchpad
// program so off-chain and on-chain key derivation agree.
var ProgramID = solana.MustPublicKeyFromBase58("Ks6N2eSijgaQ6Gjpjc78M6deX8LrngprTPt5zxombdK")

const (
	// FeeBasisPoints is the denominator for every fee rate.
	FeeBasisPoints = 10000

	// LamportDecimals is the implicit exponent of native value.
	LamportDecimals = 9
)

var (
	seedConfig       = []byte("config")
	seedBondingCurve = []byte("bonding_curve")
	seedCurveVault   = []byte("curve_vault")
)

// ConfigAddress derives the singleton Config key from its fixed seed.
func ConfigAddress() (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{seedConfig}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive config address: %w", err)
	}
	return addr, nil
}

// CurveAddress derives the BondingCurve key for a mint.
func CurveAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{seedBondingCurve, mint.Bytes()}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive curve address: %w", err)
	}
	return addr, nil
}

// VaultAddress derives the custodian that holds a curve's native value and
// token reserve. Only the engine debits it.
func VaultAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{seedCurveVault, mint.Bytes()}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive vault address: %w", err)
	}
	return addr, nil
}

// Config is the per-deployment policy record. A single instance exists, owned
// by Authority and replaced wholesale through Engine.Configure.
type Config struct {
	Authority        solana.PublicKey
	PendingAuthority solana.PublicKey

	TeamWallet solana.PublicKey
	DevWallet  solana.PublicKey

	// InitBondingCurve is the percentage (0-100) of the minted supply seeded
	// into the curve reserve; the remainder goes to the team wallet at launch.
	InitBondingCurve float64

	// Total fee rates in basis points applied on the gross native-value leg.
	PlatformBuyFee  uint64
	PlatformSellFee uint64

	// Shares of the gross fee, both expressed against FeeBasisPoints.
	TradingFeeBps  uint16
	DevFeeShareBps uint16
	DevFeeEnabled  bool

	// CurveLimit is the native-value threshold that completes a curve.
	CurveLimit uint64

	LamportAmountConfig AmountConfig[uint64]
	TokenSupplyConfig   AmountConfig[uint64]
	TokenDecimalsConfig AmountConfig[uint8]
}

const (
	defaultTradingFeeBps  = 100  // 1%
	defaultDevFeeShareBps = 5000 // 50%
)

// applyDefaults fills zero-valued fee fields and disables the dev leg when no
// dev wallet is set. Runs on every configure call, so a legitimate zero must
// be expressed through a non-zero sentinel upstream.
func (c *Config) applyDefaults() {
	if c.TradingFeeBps == 0 {
		c.TradingFeeBps = defaultTradingFeeBps
	}
	if c.DevFeeShareBps == 0 {
		c.DevFeeShareBps = defaultDevFeeShareBps
	}
	if c.DevWallet.IsZero() {
		c.DevFeeEnabled = false
	}
}

func (c *Config) validate() error {
	if c.PlatformBuyFee > FeeBasisPoints {
		return fmt.Errorf("platform buy fee %d exceeds %d bps: %w", c.PlatformBuyFee, FeeBasisPoints, ErrValueTooLarge)
	}
	if c.PlatformSellFee > FeeBasisPoints {
		return fmt.Errorf("platform sell fee %d exceeds %d bps: %w", c.PlatformSellFee, FeeBasisPoints, ErrValueTooLarge)
	}
	if uint32(c.TradingFeeBps)+uint32(c.DevFeeShareBps) > FeeBasisPoints {
		return fmt.Errorf("trading fee %d + dev share %d exceeds %d bps: %w",
			c.TradingFeeBps, c.DevFeeShareBps, FeeBasisPoints, ErrValueTooLarge)
	}
	if c.CurveLimit == 0 {
		return fmt.Errorf("curve limit must be positive: %w", ErrValueInvalid)
	}
	if c.InitBondingCurve < 0 || c.InitBondingCurve > 100 {
		return fmt.Errorf("init bonding curve %v out of [0,100]: %w", c.InitBondingCurve, ErrValueInvalid)
	}
	return nil
}

// FeeParams extracts the pricing-relevant slice of the config.
func (c *Config) FeeParams() FeeParams {
	return FeeParams{
		PlatformBuyFee:  c.PlatformBuyFee,
		PlatformSellFee: c.PlatformSellFee,
		TradingFeeBps:   c.TradingFeeBps,
		DevFeeShareBps:  c.DevFeeShareBps,
		DevFeeEnabled:   c.DevFeeEnabled,
	}
}

// BondingCurve is the per-token reserve state. Created by Launch, mutated
// only by Swap, drained by Withdraw once completed.
type BondingCurve struct {
	TokenMint solana.PublicKey
	Creator   solana.PublicKey

	// InitLamport is the virtual native reserve at launch. Informational.
	InitLamport uint64

	ReserveLamport uint64
	ReserveToken   uint64

	// CurveLimit is snapshotted from Config at launch and immune to later
	// config edits.
	CurveLimit uint64

	// IsCompleted is a one-way latch.
	IsCompleted bool
}

// updateReserves installs the post-swap reserves and tests the completion
// latch. Returns true on the Active -> Completed transition.
func (bc *BondingCurve) updateReserves(reserveToken, reserveLamport uint64) bool {
	bc.ReserveToken = reserveToken
	bc.ReserveLamport = reserveLamport

	if reserveLamport >= bc.CurveLimit {
		bc.IsCompleted = true
		return true
	}
	return false
}

// Price returns the spot price in native units per whole token, derived from
// the reserve ratio.
func (bc *BondingCurve) Price(tokenDecimals uint8) decimal.Decimal {
	if bc.ReserveToken == 0 {
		return decimal.Zero
	}
	lamports := decimal.NewFromUint64(bc.ReserveLamport).Shift(-LamportDecimals)
	tokens := decimal.NewFromUint64(bc.ReserveToken).Shift(-int32(tokenDecimals))
	return lamports.DivRound(tokens, 18)
}

// Progress returns how far the native reserve has moved toward the
// completion threshold, as a percentage capped at 100.
func (bc *BondingCurve) Progress() decimal.Decimal {
	if bc.CurveLimit == 0 {
		return decimal.Zero
	}
	pct := decimal.NewFromUint64(bc.ReserveLamport).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromUint64(bc.CurveLimit), 6)
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
