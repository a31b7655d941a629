// internal/curve/errors.go
package curve

import (
	"errors"
	"fmt"
)

// Stable error identifiers surfaced by the engine. Callers match with
// errors.Is; wrapped variants carry the offending values.
var (
	// Launch parameter validation
	ErrValueTooSmall = errors.New("value too small")
	ErrValueTooLarge = errors.New("value too large")
	ErrValueInvalid  = errors.New("value invalid")

	// Authorization
	ErrIncorrectConfigAccount = errors.New("incorrect config account")
	ErrIncorrectAuthority     = errors.New("incorrect authority")
	ErrIncorrectTeamWallet    = errors.New("incorrect team wallet address")

	// Arithmetic
	ErrOverflowOrUnderflow = errors.New("overflow or underflow occurred")
	ErrDecimalOverflow     = errors.New("decimal overflow")

	// Swap validation
	ErrInvalidAmount        = errors.New("amount is invalid")
	ErrReturnAmountTooSmall = errors.New("return amount is too small compared to the minimum receive amount")
	ErrTransactionExpired   = errors.New("transaction expired")

	// State machine
	ErrCurveNotCompleted      = errors.New("curve is not completed")
	ErrCurveAlreadyCompleted  = errors.New("cannot swap after the curve is completed")
	ErrCurveNotFound          = errors.New("bonding curve not found")
	ErrCurveAlreadyExists     = errors.New("bonding curve already exists")
	ErrMintAuthorityEnabled   = errors.New("mint authority should be revoked")
	ErrFreezeAuthorityEnabled = errors.New("freeze authority should be revoked")
)

// ValidationError annotates one of the sentinel validation errors with the
// parameter name that failed, so launch callers can tell which constraint
// rejected their input.
type ValidationError struct {
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %v", e.Field, e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}
