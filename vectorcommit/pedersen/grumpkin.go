package pedersen

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/grumpkin"
	"github.com/consensys/gnark-crypto/ecc/grumpkin/fr"

	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// GrumpkinScheme is a Pedersen vector commitment scheme over the
// grumpkin G1 group. Committed vectors live in the grumpkin scalar
// field, which is the bn254 base field.
type GrumpkinScheme struct{}

// NewGrumpkin creates a new GrumpkinScheme.
func NewGrumpkin() *GrumpkinScheme {
	return &GrumpkinScheme{}
}

// GrumpkinModulus returns the grumpkin scalar field modulus.
func GrumpkinModulus() *big.Int {
	return fr.Modulus()
}

// GrumpkinKey is a Pedersen commit key over grumpkin.
type GrumpkinKey struct {
	// Basis holds one group element per vector entry.
	Basis []grumpkin.G1Affine
	// Blind is the group element carrying the blinding factor.
	Blind grumpkin.G1Affine
}

// Length is the exact vector length the key commits to.
func (k GrumpkinKey) Length() int {
	return len(k.Basis)
}

// GrumpkinCommitment is a Pedersen commitment over grumpkin.
type GrumpkinCommitment struct {
	P grumpkin.G1Affine
}

// Setup generates a key for vectors of length exactly length,
// drawing the basis exponents from rng.
func (s *GrumpkinScheme) Setup(rng io.Reader, length int) (vectorcommit.CommitKey, error) {
	_, g1 := grumpkin.Generators()

	basis := make([]grumpkin.G1Affine, length)
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
	var blind grumpkin.G1Affine
	blind.ScalarMultiplication(&g1, e)

	return GrumpkinKey{Basis: basis, Blind: blind}, nil
}

// Commit commits to vector under blinding via a multi-scalar
// multiplication over the key basis.
// Fails with ErrLengthMismatch when len(vector) != key.Length().
func (s *GrumpkinScheme) Commit(key vectorcommit.CommitKey, vector []*big.Int, blinding *big.Int) (vectorcommit.Commitment, error) {
	k, ok := key.(GrumpkinKey)
	if !ok {
		return nil, vectorcommit.ErrSchemeMismatch
	}
	if len(vector) != len(k.Basis) {
		return nil, vectorcommit.ErrLengthMismatch
	}

	points := make([]grumpkin.G1Affine, len(k.Basis)+1)
	copy(points, k.Basis)
	points[len(k.Basis)] = k.Blind

	scalars := make([]fr.Element, len(vector)+1)
	for i := range vector {
		scalars[i].SetBigInt(vector[i])
	}
	scalars[len(vector)].SetBigInt(blinding)

	var res grumpkin.G1Affine
	if _, err := res.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return GrumpkinCommitment{P: res}, nil
}

// Add returns the group sum of the two commitments.
func (c GrumpkinCommitment) Add(other vectorcommit.Commitment) vectorcommit.Commitment {
	o, ok := other.(GrumpkinCommitment)
	if !ok {
		panic("commitment belongs to a different scheme")
	}

	var acc grumpkin.G1Jac
	acc.FromAffine(&c.P)
	acc.AddMixed(&o.P)

	var res grumpkin.G1Affine
	res.FromJacobian(&acc)
	return GrumpkinCommitment{P: res}
}

// ScalarMul returns the commitment scaled by x.
func (c GrumpkinCommitment) ScalarMul(x *big.Int) vectorcommit.Commitment {
	e := big.NewInt(0).Mod(x, fr.Modulus())

	var res grumpkin.G1Affine
	res.ScalarMultiplication(&c.P, e)
	return GrumpkinCommitment{P: res}
}

// Equal reports whether the two commitments are identical.
func (c GrumpkinCommitment) Equal(other vectorcommit.Commitment) bool {
	o, ok := other.(GrumpkinCommitment)
	if !ok {
		return false
	}
	return c.P.Equal(&o.P)
}

// Bytes returns the compressed serialization of the commitment point.
func (c GrumpkinCommitment) Bytes() []byte {
	b := c.P.Bytes()
	return b[:]
}
