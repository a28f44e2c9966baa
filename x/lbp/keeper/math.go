package keeper

import (
	"cosmossdk.io/math"

	"github.com/basil-chain/basil/x/lbp/types"
)

// The weighted constant-product invariant Ri^Wi * Ro^Wo = const needs a
// fractional power. It is evaluated as base^whole * base^frac, with the
// fractional part expanded as the binomial series
//
//	base^frac = sum_k C(frac, k) * (base-1)^k
//
// which converges for base in (0, 2). Both trade directions keep the base
// inside that interval: selling shrinks it below 1, and the max-out ratio
// guard keeps the buy-side base well below 2. The series is cut off at a
// fixed precision and a fixed iteration ceiling so results are identical
// on every node.
var (
	powPrecision = math.LegacyNewDecWithPrec(1, 10) // 1e-10
	oneDec       = math.LegacyOneDec()
	twoDec       = math.LegacyNewDec(2)

	// maxPowResult caps every intermediate of the integer power. A quote
	// above it costs more than any representable balance, and squaring a
	// value below it stays within LegacyDec capacity.
	maxPowResult = math.LegacyNewDec(10).Power(36)
)

const maxPowIterations = 300

// CalcOutGivenIn returns the gross output of selling amountIn against the
// weighted invariant:
//
//	out = Ro * (1 - (Ri / (Ri + in))^(Wi / Wo))
//
// The result is truncated, rounding in the pool's favor. Fees are not
// applied here.
func CalcOutGivenIn(reserveIn, reserveOut math.Int, weightIn, weightOut uint64, amountIn math.Int) (math.Int, error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("empty reserve")
	}
	if weightIn == 0 || weightOut == 0 {
		return math.Int{}, types.ErrInvalidWeight.Wrap("zero weight")
	}

	denom := reserveIn.Add(amountIn)
	base := math.LegacyNewDecFromInt(reserveIn).Quo(math.LegacyNewDecFromInt(denom))
	exponent := math.LegacyNewDec(int64(weightIn)).Quo(math.LegacyNewDec(int64(weightOut)))

	power, err := pow(base, exponent)
	if err != nil {
		return math.Int{}, err
	}
	if power.GT(oneDec) {
		// base <= 1 and exponent >= 0 guarantee power <= 1; anything else
		// is solver drift and must not mint output out of thin air.
		power = oneDec
	}
	out := math.LegacyNewDecFromInt(reserveOut).Mul(oneDec.Sub(power))
	return out.TruncateInt(), nil
}

// CalcInGivenOut returns the gross input required to withdraw amountOut:
//
//	in = Ri * ((Ro / (Ro - out))^(Wo / Wi) - 1)
//
// The result is rounded up so the pool is never undercharged. Fees are
// not applied here.
func CalcInGivenOut(reserveIn, reserveOut math.Int, weightIn, weightOut uint64, amountOut math.Int) (math.Int, error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("empty reserve")
	}
	if weightIn == 0 || weightOut == 0 {
		return math.Int{}, types.ErrInvalidWeight.Wrap("zero weight")
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"amount out %s not covered by reserve %s", amountOut, reserveOut,
		)
	}

	denom := reserveOut.Sub(amountOut)
	base := math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(denom))
	exponent := math.LegacyNewDec(int64(weightOut)).Quo(math.LegacyNewDec(int64(weightIn)))

	power, err := pow(base, exponent)
	if err != nil {
		return math.Int{}, err
	}
	in := math.LegacyNewDecFromInt(reserveIn).Mul(power.Sub(oneDec))
	if in.IsNegative() {
		return math.Int{}, types.ErrOverflow.Wrap("negative input amount")
	}
	return in.Ceil().TruncateInt(), nil
}

// pow computes base^exp for a non-negative exponent, splitting it into an
// integer power and a fractional series expansion.
func pow(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if !base.IsPositive() {
		return math.LegacyDec{}, types.ErrOverflow.Wrap("pow base must be positive")
	}
	if base.GTE(twoDec) {
		return math.LegacyDec{}, types.ErrMaxOutRatioExceeded.Wrapf("pow base %s out of range", base)
	}
	if exp.IsNegative() {
		return math.LegacyDec{}, types.ErrInvalidWeight.Wrap("negative exponent")
	}

	whole := exp.TruncateDec()
	frac := exp.Sub(whole)

	result := oneDec
	if !whole.IsZero() {
		var err error
		result, err = intPow(base, uint64(whole.TruncateInt64()))
		if err != nil {
			return math.LegacyDec{}, err
		}
	}
	if frac.IsZero() {
		return result, nil
	}
	partial, err := powApprox(base, frac)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return result.Mul(partial), nil
}

// intPow computes base^n by repeated squaring. Weight ratios admit
// exponents up to MaxWeight-1, so every intermediate is checked against
// maxPowResult and the quote fails with ErrOverflow instead of pushing
// LegacyDec past its capacity.
func intPow(base math.LegacyDec, n uint64) (math.LegacyDec, error) {
	result := oneDec
	sq := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(sq)
			if result.GT(maxPowResult) {
				return math.LegacyDec{}, types.ErrOverflow.Wrap("pow result out of range")
			}
		}
		n >>= 1
		if n > 0 {
			sq = sq.Mul(sq)
			if sq.GT(maxPowResult) {
				return math.LegacyDec{}, types.ErrOverflow.Wrap("pow result out of range")
			}
		}
	}
	return result, nil
}

// powApprox evaluates base^exp for exp in [0, 1) by binomial expansion,
// stopping once the next term drops below powPrecision. The iteration
// ceiling is a hard contract: exhausting it is an error, never a silently
// truncated result.
func powApprox(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if exp.IsZero() {
		return oneDec, nil
	}

	x, xNeg := absDifferenceWithSign(base, oneDec)
	term := oneDec
	sum := oneDec
	negative := false

	for i := int64(1); term.GTE(powPrecision); i++ {
		if i > maxPowIterations {
			return math.LegacyDec{}, types.ErrOverflow.Wrap("pow series did not converge")
		}
		bigK := math.LegacyNewDec(i)
		c, cNeg := absDifferenceWithSign(exp, bigK.Sub(oneDec))
		term = term.Mul(c).Mul(x).Quo(bigK)
		if term.IsZero() {
			break
		}
		if xNeg {
			negative = !negative
		}
		if cNeg {
			negative = !negative
		}
		if negative {
			sum = sum.Sub(term)
		} else {
			sum = sum.Add(term)
		}
	}
	return sum, nil
}

// absDifferenceWithSign returns |a-b| and whether a < b.
func absDifferenceWithSign(a, b math.LegacyDec) (math.LegacyDec, bool) {
	if a.GTE(b) {
		return a.Sub(b), false
	}
	return b.Sub(a), true
}
