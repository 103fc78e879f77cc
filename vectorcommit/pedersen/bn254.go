package pedersen

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// BN254Scheme is a Pedersen vector commitment scheme over the bn254 G1
// group. Committed vectors live in the bn254 scalar field.
type BN254Scheme struct{}

// NewBN254 creates a new BN254Scheme.
func NewBN254() *BN254Scheme {
	return &BN254Scheme{}
}

// BN254Modulus returns the bn254 scalar field modulus.
func BN254Modulus() *big.Int {
	return fr.Modulus()
}

// BN254Key is a Pedersen commit key over bn254.
type BN254Key struct {
	// Basis holds one group element per vector entry.
	Basis []bn254.G1Affine
	// Blind is the group element carrying the blinding factor.
	Blind bn254.G1Affine
}

// Length is the exact vector length the key commits to.
func (k BN254Key) Length() int {
	return len(k.Basis)
}

// BN254Commitment is a Pedersen commitment over bn254.
type BN254Commitment struct {
	P bn254.G1Affine
}

// Setup generates a key for vectors of length exactly length,
// drawing the basis exponents from rng.
func (s *BN254Scheme) Setup(rng io.Reader, length int) (vectorcommit.CommitKey, error) {
	_, _, g1, _ := bn254.Generators()

	basis := make([]bn254.G1Affine, length)
	for i := range basis {
		e, err := sampleMod(rng, fr.Modulus())
		if err != nil {
			return nil, err
		}
		basis[i].ScalarMultiplication(&g1, e)
	}

	e, err := sampleMod(rng, fr.Modulus())
	if err != nil {
		return nil, err
	}
	var blind bn254.G1Affine
	blind.ScalarMultiplication(&g1, e)

	return BN254Key{Basis: basis, Blind: blind}, nil
}

// Commit commits to vector under blinding via a multi-scalar
// multiplication over the key basis.
// Fails with ErrLengthMismatch when len(vector) != key.Length().
func (s *BN254Scheme) Commit(key vectorcommit.CommitKey, vector []*big.Int, blinding *big.Int) (vectorcommit.Commitment, error) {
	k, ok := key.(BN254Key)
	if !ok {
		return nil, vectorcommit.ErrSchemeMismatch
	}
	if len(vector) != len(k.Basis) {
		return nil, vectorcommit.ErrLengthMismatch
	}

	points := make([]bn254.G1Affine, len(k.Basis)+1)
	copy(points, k.Basis)
	points[len(k.Basis)] = k.Blind

	scalars := make([]fr.Element, len(vector)+1)
	for i := range vector {
		scalars[i].SetBigInt(vector[i])
	}
	scalars[len(vector)].SetBigInt(blinding)

	var res bn254.G1Affine
	if _, err := res.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return BN254Commitment{P: res}, nil
}

// Add returns the group sum of the two commitments.
func (c BN254Commitment) Add(other vectorcommit.Commitment) vectorcommit.Commitment {
	o, ok := other.(BN254Commitment)
	if !ok {
		panic("commitment belongs to a different scheme")
	}

	var acc bn254.G1Jac
	acc.FromAffine(&c.P)
	acc.AddMixed(&o.P)

	var res bn254.G1Affine
	res.FromJacobian(&acc)
	return BN254Commitment{P: res}
}

// ScalarMul returns the commitment scaled by x.
func (c BN254Commitment) ScalarMul(x *big.Int) vectorcommit.Commitment {
	e := big.NewInt(0).Mod(x, fr.Modulus())

	var res bn254.G1Affine
	res.ScalarMultiplication(&c.P, e)
	return BN254Commitment{P: res}
}

// Equal reports whether the two commitments are identical.
func (c BN254Commitment) Equal(other vectorcommit.Commitment) bool {
	o, ok := other.(BN254Commitment)
	if !ok {
		return false
	}
	return c.P.Equal(&o.P)
}

// Bytes returns the compressed serialization of the commitment point.
func (c BN254Commitment) Bytes() []byte {
	b := c.P.Bytes()
	return b[:]
}
