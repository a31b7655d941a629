// internal/curve/withdraw.go
package curve

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/internal/ledger"
)

// Withdraw drains a completed curve's custodian, token and native balances
// both, to the administrator for downstream migration. The curve is terminal
// afterwards: swaps were already refused by the completion latch.
func (e *Engine) Withdraw(ctx context.Context, caller, mint solana.PublicKey) error {
	cfg, ok := e.store.Config()
	if !ok {
		return ErrIncorrectConfigAccount
	}
	if !caller.Equals(cfg.Authority) {
		return ErrIncorrectAuthority
	}

	bc, ok := e.store.Curve(mint)
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, ErrCurveNotFound)
	}
	if !bc.IsCompleted {
		return ErrCurveNotCompleted
	}

	vault, err := VaultAddress(mint)
	if err != nil {
		return err
	}

	tokenBalance := e.ledger.TokenBalance(mint, vault)
	lamportBalance := e.ledger.Lamports(vault)

	var legs []ledger.Transfer
	if tokenBalance > 0 {
		legs = append(legs, ledger.Transfer{Mint: mint, From: vault, To: caller, Amount: tokenBalance})
	}
	if lamportBalance > 0 {
		legs = append(legs, ledger.Transfer{From: vault, To: caller, Amount: lamportBalance})
	}
	if err := e.ledger.Apply(legs...); err != nil {
		return fmt.Errorf("withdraw fund movement: %w", err)
	}

	e.logger.Info("curve withdrawn",
		zap.String("mint", mint.String()),
		zap.String("authority", caller.String()),
		zap.Uint64("tokens", tokenBalance),
		zap.Uint64("lamports", lamportBalance))
	return nil
}
