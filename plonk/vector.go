package plonk

import "math/big"

// ZeroVec creates a vector of n zeros.
func ZeroVec(n int) []*big.Int {
	v := make([]*big.Int, n)
	for i := range v {
		v[i] = big.NewInt(0)
	}
	return v
}

// CopyVec creates a deep copy of v.
func CopyVec(v []*big.Int) []*big.Int {
	out := make([]*big.Int, len(v))
	for i := range v {
		out[i] = big.NewInt(0).Set(v[i])
	}
	return out
}

// AddVec returns x + y mod q elementwise.
// Panics if the lengths differ.
func AddVec(x, y []*big.Int, q *big.Int) []*big.Int {
	if len(x) != len(y) {
		panic("vector length mismatch")
	}

	out := make([]*big.Int, len(x))
	for i := range x {
		out[i] = big.NewInt(0).Add(x[i], y[i])
		out[i].Mod(out[i], q)
	}
	return out
}

// ScalarMulVec returns c * x mod q elementwise.
func ScalarMulVec(c *big.Int, x []*big.Int, q *big.Int) []*big.Int {
	out := make([]*big.Int, len(x))
	for i := range x {
		out[i] = big.NewInt(0).Mul(c, x[i])
		out[i].Mod(out[i], q)
	}
	return out
}

// VecEqual reports whether x and y are identical.
func VecEqual(x, y []*big.Int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].Cmp(y[i]) != 0 {
			return false
		}
	}
	return true
}

// IsZeroVec reports whether every entry of v is zero.
func IsZeroVec(v []*big.Int) bool {
	for i := range v {
		if v[i].Sign() != 0 {
			return false
		}
	}
	return true
}
