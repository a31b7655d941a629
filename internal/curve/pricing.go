// internal/curve/pricing.go
package curve

import (
	"math/big"
)

// Direction selects the swap side.
type Direction uint8

const (
	// DirectionBuy trades native value for tokens.
	DirectionBuy Direction = 0
	// DirectionSell trades tokens for native value.
	DirectionSell Direction = 1
)

func (d Direction) String() string {
	if d == DirectionSell {
		return "sell"
	}
	return "buy"
}

// FeeParams carries the fee rates used by the pricing engine.
type FeeParams struct {
	PlatformBuyFee  uint64
	PlatformSellFee uint64
	TradingFeeBps   uint16
	DevFeeShareBps  uint16
	DevFeeEnabled   bool
}

// Quote is the result of a pricing call: the user-received output plus the
// two fee legs, all in native smallest units except AmountOut on buys, which
// is in token units.
type Quote struct {
	AmountOut   uint64
	PlatformFee uint64
	DevFee      uint64
}

var feeBasisPoints = big.NewInt(FeeBasisPoints)

// CalcAmountOut prices a swap against the given reserves using the constant
// product rule. All intermediate arithmetic is wide; any result that does not
// fit back into 64 bits is ErrOverflowOrUnderflow. The only non-fatal edge is
// an empty pool, which quotes zero.
//
// Sell: gross = reserveLamport*amount/(reserveToken+amount), fee off gross.
// Buy: fee off the input, tokenOut = reserveToken*adjIn/(reserveLamport+adjIn).
// Multiply-then-divide order is load-bearing: reordering shifts results by one
// smallest unit.
func CalcAmountOut(reserveToken, reserveLamport, amount uint64, direction Direction, fees FeeParams) (Quote, error) {
	if reserveToken == 0 || reserveLamport == 0 {
		return Quote{}, nil
	}

	amt := new(big.Int).SetUint64(amount)
	rToken := new(big.Int).SetUint64(reserveToken)
	rLamport := new(big.Int).SetUint64(reserveLamport)

	if direction == DirectionSell {
		// dy = (y * dx) / (x + dx)
		gross := new(big.Int).Mul(rLamport, amt)
		gross.Div(gross, new(big.Int).Add(rToken, amt))

		solFee := mulDivBps(gross, fees.PlatformSellFee)
		net := new(big.Int).Sub(gross, solFee)

		platformFee, devFee := splitFee(solFee, fees)
		return quoteFrom(net, platformFee, devFee)
	}

	// dx = (x * dy') / (y + dy'), with the fee taken off the input first.
	solFee := mulDivBps(amt, fees.PlatformBuyFee)
	adjIn := new(big.Int).Sub(amt, solFee)

	tokenOut := new(big.Int).Mul(rToken, adjIn)
	tokenOut.Div(tokenOut, new(big.Int).Add(rLamport, adjIn))

	platformFee, devFee := splitFee(solFee, fees)
	return quoteFrom(tokenOut, platformFee, devFee)
}

// splitFee derives the two fee legs as independent shares of the gross fee.
// They need not partition it: any remainder stays with the curve custodian.
func splitFee(solFee *big.Int, fees FeeParams) (platformFee, devFee *big.Int) {
	platformFee = mulDivBps(solFee, uint64(fees.TradingFeeBps))
	if fees.DevFeeEnabled {
		devFee = mulDivBps(solFee, uint64(fees.DevFeeShareBps))
	} else {
		devFee = new(big.Int)
	}
	return platformFee, devFee
}

func mulDivBps(v *big.Int, bps uint64) *big.Int {
	out := new(big.Int).Mul(v, new(big.Int).SetUint64(bps))
	return out.Div(out, feeBasisPoints)
}

func quoteFrom(out, platformFee, devFee *big.Int) (Quote, error) {
	if out.Sign() < 0 || !out.IsUint64() ||
		!platformFee.IsUint64() || !devFee.IsUint64() {
		return Quote{}, ErrOverflowOrUnderflow
	}
	return Quote{
		AmountOut:   out.Uint64(),
		PlatformFee: platformFee.Uint64(),
		DevFee:      devFee.Uint64(),
	}, nil
}

// checkedAdd and checkedSub guard the 64-bit reserve updates. Overflow is
// fatal, never wrapped.
func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflowOrUnderflow
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflowOrUnderflow
	}
	return a - b, nil
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// prorateMinimum scales the caller's slippage floor when a buy is capped at
// the completion boundary: floor(minimum * remaining / amount), computed in
// wide integer space.
func prorateMinimum(minimum, remaining, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrOverflowOrUnderflow
	}
	adj := new(big.Int).SetUint64(minimum)
	adj.Mul(adj, new(big.Int).SetUint64(remaining))
	adj.Div(adj, new(big.Int).SetUint64(amount))
	if !adj.IsUint64() {
		return 0, ErrDecimalOverflow
	}
	return adj.Uint64(), nil
}
