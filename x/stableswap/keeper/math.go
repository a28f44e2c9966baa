package keeper

import (
	"cosmossdk.io/math"

	"github.com/basil-chain/basil/x/stableswap/types"
)

// Newton iteration ceilings. Both solvers converge quadratically for any
// reachable pool state, so hitting a ceiling means the state is broken
// and the trade must fail rather than settle on a drifted invariant.
const (
	maxDIterations = 128
	maxYIterations = 64
)

var (
	oneInt = math.OneInt()
	twoInt = math.NewInt(2)
)

// calculateD solves the stableswap invariant
//
//	Ann * S + D = Ann * D + D^(n+1) / (n^n * prod(x))
//
// for D by Newton iteration, where Ann = amp * n^n and S = sum(x).
// D is the total pool value at perfect balance and only grows when
// liquidity is added or fees accrue.
func calculateD(reserves []math.Int, amplification uint64) (math.Int, error) {
	n := int64(len(reserves))
	sum := math.ZeroInt()
	for _, r := range reserves {
		if r.IsNil() || r.IsNegative() {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrap("negative reserve")
		}
		sum = sum.Add(r)
	}
	if sum.IsZero() {
		return math.ZeroInt(), nil
	}

	nInt := math.NewInt(n)
	ann := math.NewIntFromUint64(amplification)
	for i := int64(0); i < n; i++ {
		ann = ann.Mul(nInt)
	}

	d := sum
	for i := 0; i < maxDIterations; i++ {
		// dP = D^(n+1) / (n^n * prod(x))
		dP := d
		for _, r := range reserves {
			if r.IsZero() {
				return math.Int{}, types.ErrInsufficientLiquidity.Wrap("empty reserve")
			}
			dP = dP.Mul(d).Quo(r.Mul(nInt))
		}

		dPrev := d
		numerator := ann.Mul(sum).Add(dP.Mul(nInt)).Mul(d)
		denominator := ann.Sub(oneInt).Mul(d).Add(nInt.Add(oneInt).Mul(dP))
		d = numerator.Quo(denominator)

		if absDiff(d, dPrev).LTE(oneInt) {
			return d, nil
		}
	}
	return math.Int{}, types.ErrInvariantNotConverged.Wrap("D solver")
}

// calculateY solves the invariant for the reserve at targetIndex, given
// that the reserve at changedIndex moves to changedReserve and every
// other reserve stays put. Used in both trade directions.
func calculateY(
	reserves []math.Int,
	amplification uint64,
	changedIndex, targetIndex int,
	changedReserve math.Int,
	d math.Int,
) (math.Int, error) {
	if changedIndex == targetIndex {
		return math.Int{}, types.ErrAssetNotInPool.Wrap("trade assets must differ")
	}
	n := int64(len(reserves))
	nInt := math.NewInt(n)
	ann := math.NewIntFromUint64(amplification)
	for i := int64(0); i < n; i++ {
		ann = ann.Mul(nInt)
	}

	// c = D^(n+1) / (n^n * prod(x') * Ann), s = sum(x') over all but target
	c := d
	s := math.ZeroInt()
	for i := range reserves {
		if i == targetIndex {
			continue
		}
		x := reserves[i]
		if i == changedIndex {
			x = changedReserve
		}
		if x.IsZero() {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrap("empty reserve")
		}
		s = s.Add(x)
		c = c.Mul(d).Quo(x.Mul(nInt))
	}
	c = c.Mul(d).Quo(ann.Mul(nInt))
	b := s.Add(d.Quo(ann))

	// y^2 + (b - D) y = c, solved by Newton: y <- (y^2 + c) / (2y + b - D)
	y := d
	for i := 0; i < maxYIterations; i++ {
		yPrev := y
		y = y.Mul(y).Add(c).Quo(twoInt.Mul(y).Add(b).Sub(d))
		if absDiff(y, yPrev).LTE(oneInt) {
			return y, nil
		}
	}
	return math.Int{}, types.ErrInvariantNotConverged.Wrap("Y solver")
}

// calcOutGivenIn returns the gross output of selling amountIn, before
// the trade fee. The result rounds down by one unit so the invariant
// never loses value to truncation.
func calcOutGivenIn(
	reserves []math.Int,
	amplification uint64,
	indexIn, indexOut int,
	amountIn math.Int,
) (math.Int, error) {
	d, err := calculateD(reserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	newReserveIn := reserves[indexIn].Add(amountIn)
	y, err := calculateY(reserves, amplification, indexIn, indexOut, newReserveIn, d)
	if err != nil {
		return math.Int{}, err
	}
	out := reserves[indexOut].Sub(y).Sub(oneInt)
	if out.IsNegative() {
		out = math.ZeroInt()
	}
	return out, nil
}

// calcInGivenOut returns the gross input required to withdraw amountOut,
// before the trade fee. The result rounds up by one unit.
func calcInGivenOut(
	reserves []math.Int,
	amplification uint64,
	indexIn, indexOut int,
	amountOut math.Int,
) (math.Int, error) {
	if amountOut.GTE(reserves[indexOut]) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"amount out %s not covered by reserve %s", amountOut, reserves[indexOut],
		)
	}
	d, err := calculateD(reserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	newReserveOut := reserves[indexOut].Sub(amountOut)
	y, err := calculateY(reserves, amplification, indexOut, indexIn, newReserveOut, d)
	if err != nil {
		return math.Int{}, err
	}
	in := y.Sub(reserves[indexIn]).Add(oneInt)
	if in.IsNegative() {
		return math.Int{}, types.ErrZeroAmount.Wrap("trade requires no input")
	}
	return in, nil
}

// calcShares prices a deposit in pool shares. Shares grow in proportion
// to the invariant: minting issuance * (D1 - D0) / D0 keeps the value of
// every existing share unchanged. The first deposit bootstraps issuance
// at D1 itself.
func calcShares(
	oldReserves, deposits []math.Int,
	amplification uint64,
	issuance math.Int,
) (math.Int, error) {
	newReserves := make([]math.Int, len(oldReserves))
	for i := range oldReserves {
		newReserves[i] = oldReserves[i].Add(deposits[i])
	}
	d1, err := calculateD(newReserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	if issuance.IsZero() {
		return d1, nil
	}
	d0, err := calculateD(oldReserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	if d0.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has shares but no reserves")
	}
	if d1.LTE(d0) {
		return math.Int{}, types.ErrZeroAmount.Wrap("deposit does not grow the invariant")
	}
	return issuance.Mul(d1.Sub(d0)).Quo(d0), nil
}

func absDiff(a, b math.Int) math.Int {
	if a.GTE(b) {
		return a.Sub(b)
	}
	return b.Sub(a)
}
