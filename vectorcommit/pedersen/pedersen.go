// Package pedersen implements the vectorcommit capability with Pedersen
// vector commitments over the bn254/grumpkin cycle of curves. The two
// curves' scalar fields are each other's base fields, which is what lets
// the IVC driver alternate folding between them.
//
// Key generation multiplies the curve generator by exponents drawn from
// the supplied sampler; the exponents are discarded, and the binding of
// the scheme assumes nobody retained them.
package pedersen

import (
	"io"
	"math/big"
)

// sampleMod draws a uniform element of [0, modulus) from rng by
// rejection sampling.
func sampleMod(rng io.Reader, modulus *big.Int) (*big.Int, error) {
	byteLen := (modulus.BitLen() + 7) / 8
	excessBits := uint(8*byteLen - modulus.BitLen())
	buf := make([]byte, byteLen)

	res := big.NewInt(0)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		buf[0] &= 0xFF >> excessBits

		res.SetBytes(buf)
		if res.Cmp(modulus) < 0 {
			return res, nil
		}
	}
}
