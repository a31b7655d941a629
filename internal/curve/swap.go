// internal/curve/swap.go
package curve

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/internal/events"
	"github.com/moonforge/launchpad/internal/ledger"
)

// SwapParams describe one buy or sell against a curve.
type SwapParams struct {
	User solana.PublicKey
	Mint solana.PublicKey

	// Amount is native value on buys, tokens on sells.
	Amount    uint64
	Direction Direction

	// MinimumReceive is the slippage floor on the output amount. On a
	// completion-boundary partial fill it is pro-rated with the input.
	MinimumReceive uint64

	// Deadline is a unix timestamp; the swap fails once now exceeds it.
	Deadline int64

	// TeamWallet must match the configured platform fee destination.
	TeamWallet solana.PublicKey

	// DevWallet receives the dev fee leg when set and enabled. Zero skips
	// the leg.
	DevWallet solana.PublicKey
}

// Swap executes one trade against the curve for p.Mint: expiry check,
// completion-boundary capping, pricing, slippage check, reserve update with
// the completion latch, and the atomic multi-leg fund movement. Returns the
// amount the user received.
func (e *Engine) Swap(ctx context.Context, p SwapParams) (uint64, error) {
	cfg, ok := e.store.Config()
	if !ok {
		return 0, ErrIncorrectConfigAccount
	}
	if !p.TeamWallet.Equals(cfg.TeamWallet) {
		return 0, ErrIncorrectTeamWallet
	}

	bc, ok := e.store.Curve(p.Mint)
	if !ok {
		return 0, fmt.Errorf("mint %s: %w", p.Mint, ErrCurveNotFound)
	}
	if bc.IsCompleted {
		return 0, ErrCurveAlreadyCompleted
	}

	if p.Amount == 0 {
		return 0, ErrInvalidAmount
	}
	if now := e.now().Unix(); now > p.Deadline {
		return 0, fmt.Errorf("now %d past deadline %d: %w", now, p.Deadline, ErrTransactionExpired)
	}

	// Buys are capped at the completion boundary: only the native value that
	// fits under the curve limit is swapped, and the slippage floor shrinks
	// with it. The residue never moves.
	amountToSwap := p.Amount
	adjustedMinimum := p.MinimumReceive
	if p.Direction == DirectionBuy {
		remaining := saturatingSub(bc.CurveLimit, bc.ReserveLamport)
		if p.Amount > remaining {
			var err error
			adjustedMinimum, err = prorateMinimum(p.MinimumReceive, remaining, p.Amount)
			if err != nil {
				return 0, err
			}
			amountToSwap = remaining
		}
	}

	quote, err := CalcAmountOut(bc.ReserveToken, bc.ReserveLamport, amountToSwap, p.Direction, cfg.FeeParams())
	if err != nil {
		return 0, err
	}
	totalFee, err := checkedAdd(quote.PlatformFee, quote.DevFee)
	if err != nil {
		return 0, err
	}

	if quote.AmountOut < adjustedMinimum {
		return 0, fmt.Errorf("out %d below minimum %d: %w", quote.AmountOut, adjustedMinimum, ErrReturnAmountTooSmall)
	}

	vault, err := VaultAddress(p.Mint)
	if err != nil {
		return 0, err
	}

	var (
		newReserveToken   uint64
		newReserveLamport uint64
		legs              []ledger.Transfer
	)
	if p.Direction == DirectionSell {
		grossSolOut, err := checkedAdd(quote.AmountOut, totalFee)
		if err != nil {
			return 0, err
		}
		if newReserveToken, err = checkedAdd(bc.ReserveToken, amountToSwap); err != nil {
			return 0, err
		}
		if newReserveLamport, err = checkedSub(bc.ReserveLamport, grossSolOut); err != nil {
			return 0, err
		}

		legs = append(legs,
			ledger.Transfer{Mint: p.Mint, From: p.User, To: vault, Amount: amountToSwap},
			ledger.Transfer{From: vault, To: p.User, Amount: quote.AmountOut},
		)
	} else {
		adjSolIn, err := checkedSub(amountToSwap, totalFee)
		if err != nil {
			return 0, err
		}
		if newReserveToken, err = checkedSub(bc.ReserveToken, quote.AmountOut); err != nil {
			return 0, err
		}
		if newReserveLamport, err = checkedAdd(bc.ReserveLamport, adjSolIn); err != nil {
			return 0, err
		}

		legs = append(legs,
			ledger.Transfer{Mint: p.Mint, From: vault, To: p.User, Amount: quote.AmountOut},
			ledger.Transfer{From: p.User, To: vault, Amount: amountToSwap},
		)
	}

	if quote.PlatformFee > 0 {
		legs = append(legs, ledger.Transfer{From: vault, To: cfg.TeamWallet, Amount: quote.PlatformFee})
	}
	if quote.DevFee > 0 && cfg.DevFeeEnabled && !p.DevWallet.IsZero() {
		legs = append(legs, ledger.Transfer{From: vault, To: p.DevWallet, Amount: quote.DevFee})
	}

	if err := e.ledger.Apply(legs...); err != nil {
		return 0, fmt.Errorf("swap fund movement: %w", err)
	}

	completed := bc.updateReserves(newReserveToken, newReserveLamport)
	e.store.SetCurve(bc)

	e.logger.Debug("swap executed",
		zap.String("user", p.User.String()),
		zap.String("mint", p.Mint.String()),
		zap.String("direction", p.Direction.String()),
		zap.Uint64("amount_in", amountToSwap),
		zap.Uint64("amount_out", quote.AmountOut),
		zap.Uint64("platform_fee", quote.PlatformFee),
		zap.Uint64("dev_fee", quote.DevFee),
		zap.Uint64("reserve_token", newReserveToken),
		zap.Uint64("reserve_lamport", newReserveLamport))

	now := e.now()
	e.emit(ctx, events.SwapEvent{
		User:        p.User,
		Mint:        p.Mint,
		Direction:   uint8(p.Direction),
		AmountIn:    amountToSwap,
		AmountOut:   quote.AmountOut,
		PlatformFee: quote.PlatformFee,
		DevFee:      quote.DevFee,
		Timestamp:   now,
	})

	if completed {
		curveAddr, err := CurveAddress(p.Mint)
		if err != nil {
			return 0, err
		}
		e.logger.Info("curve completed",
			zap.String("mint", p.Mint.String()),
			zap.Uint64("reserve_lamport", newReserveLamport),
			zap.Uint64("curve_limit", bc.CurveLimit))
		e.emit(ctx, events.CompleteEvent{
			User:         p.User,
			Mint:         p.Mint,
			BondingCurve: curveAddr,
			Timestamp:    now,
		})
	}

	return quote.AmountOut, nil
}
