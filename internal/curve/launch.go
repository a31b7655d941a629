// internal/curve/launch.go
package curve

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/internal/ledger"
)

// LaunchParams are the caller-supplied launch inputs. Each numeric parameter
// must pass the matching AmountConfig constraint from the Config record.
type LaunchParams struct {
	Creator solana.PublicKey
	Mint    solana.PublicKey

	Decimals               uint8
	TokenSupply            uint64
	VirtualLamportReserves uint64

	Name   string
	Symbol string
	URI    string
}

// Launch mints a new token, seeds its bonding curve with the configured share
// of the supply and a virtual native reserve, and hands the remaining supply
// to the team wallet. Mint and freeze authority are revoked before the curve
// goes live.
func (e *Engine) Launch(ctx context.Context, p LaunchParams) (BondingCurve, error) {
	cfg, ok := e.store.Config()
	if !ok {
		return BondingCurve{}, ErrIncorrectConfigAccount
	}

	if err := cfg.TokenDecimalsConfig.Validate(p.Decimals); err != nil {
		return BondingCurve{}, ValidationError{Field: "decimals", Err: err}
	}
	if err := cfg.TokenSupplyConfig.Validate(p.TokenSupply); err != nil {
		return BondingCurve{}, ValidationError{Field: "token_supply", Err: err}
	}
	if err := cfg.LamportAmountConfig.Validate(p.VirtualLamportReserves); err != nil {
		return BondingCurve{}, ValidationError{Field: "virtual_lamport_reserves", Err: err}
	}

	if _, exists := e.store.Curve(p.Mint); exists {
		return BondingCurve{}, fmt.Errorf("mint %s: %w", p.Mint, ErrCurveAlreadyExists)
	}

	vault, err := VaultAddress(p.Mint)
	if err != nil {
		return BondingCurve{}, err
	}

	md := ledger.Metadata{Name: p.Name, Symbol: p.Symbol, URI: p.URI}
	if err := e.ledger.CreateMint(p.Mint, vault, p.Decimals, md); err != nil {
		return BondingCurve{}, fmt.Errorf("create mint: %w", err)
	}
	if err := e.ledger.MintTo(p.Mint, vault, vault, p.TokenSupply); err != nil {
		return BondingCurve{}, fmt.Errorf("mint supply: %w", err)
	}

	reserveToken, err := curveShare(p.TokenSupply, cfg.InitBondingCurve)
	if err != nil {
		return BondingCurve{}, err
	}

	// The share that does not back the curve goes to the team wallet for
	// distribution.
	if remainder := p.TokenSupply - reserveToken; remainder > 0 {
		leg := ledger.Transfer{Mint: p.Mint, From: vault, To: cfg.TeamWallet, Amount: remainder}
		if err := e.ledger.Apply(leg); err != nil {
			return BondingCurve{}, fmt.Errorf("seed team wallet: %w", err)
		}
	}

	if err := e.ledger.RevokeMintAuthority(p.Mint, vault); err != nil {
		return BondingCurve{}, fmt.Errorf("revoke mint authority: %w", err)
	}
	if err := e.ledger.RevokeFreezeAuthority(p.Mint, vault); err != nil {
		return BondingCurve{}, fmt.Errorf("revoke freeze authority: %w", err)
	}

	info, err := e.ledger.MintInfo(p.Mint)
	if err != nil {
		return BondingCurve{}, err
	}
	if info.HasMintAuthority() {
		return BondingCurve{}, ErrMintAuthorityEnabled
	}
	if info.HasFreezeAuthority() {
		return BondingCurve{}, ErrFreezeAuthorityEnabled
	}

	bc := BondingCurve{
		TokenMint:      p.Mint,
		Creator:        p.Creator,
		InitLamport:    p.VirtualLamportReserves,
		ReserveLamport: p.VirtualLamportReserves,
		ReserveToken:   reserveToken,
		CurveLimit:     cfg.CurveLimit,
		IsCompleted:    false,
	}
	e.store.SetCurve(bc)

	e.logger.Info("curve launched",
		zap.String("mint", p.Mint.String()),
		zap.String("creator", p.Creator.String()),
		zap.String("symbol", p.Symbol),
		zap.Uint64("reserve_token", reserveToken),
		zap.Uint64("reserve_lamport", p.VirtualLamportReserves),
		zap.Uint64("curve_limit", cfg.CurveLimit))
	return bc, nil
}

// curveShare computes floor(supply * percent / 100) in decimal space.
func curveShare(supply uint64, percent float64) (uint64, error) {
	share := decimal.NewFromFloat(percent).
		Mul(decimal.NewFromUint64(supply)).
		Div(decimal.NewFromInt(100)).
		Floor()
	if share.IsNegative() || !share.BigInt().IsUint64() {
		return 0, ErrDecimalOverflow
	}
	return share.BigInt().Uint64(), nil
}
