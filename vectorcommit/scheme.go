// Package vectorcommit defines the additively homomorphic vector commitment
// capability consumed by the folding scheme, together with a transparent
// reference scheme used in tests and examples. Concrete curve-based schemes
// live in the pedersen subpackage.
package vectorcommit

import (
	"errors"
	"io"
	"math/big"
)

// ErrLengthMismatch is returned when a committed vector does not match the
// length its commit key was generated for.
var ErrLengthMismatch = errors.New("vector length does not match commit key")

// ErrSchemeMismatch is returned when a key or commitment from one scheme is
// supplied to another.
var ErrSchemeMismatch = errors.New("key or commitment belongs to a different scheme")

// Commitment is a commitment to a vector of field elements.
//
// Commitments form a group under Add, and ScalarMul preserves the field
// action: Commit(v1, b1).Add(Commit(v2, b2)) opens to (v1+v2, b1+b2), and
// Commit(v, b).ScalarMul(c) opens to (c*v, c*b).
type Commitment interface {
	// Add returns the group sum of the two commitments.
	Add(other Commitment) Commitment
	// ScalarMul returns the commitment scaled by c.
	ScalarMul(c *big.Int) Commitment
	// Equal reports whether the two commitments are identical.
	// Commitments from different schemes are never equal.
	Equal(other Commitment) bool
	// Bytes returns the canonical serialization, which is also the
	// transcript encoding of the commitment.
	Bytes() []byte
}

// CommitKey is a key supporting commitments to vectors of one fixed length.
type CommitKey interface {
	// Length is the exact vector length the key commits to.
	Length() int
}

// Scheme is an additively homomorphic vector commitment scheme over a field.
type Scheme interface {
	// Setup generates a key for vectors of length exactly length,
	// drawing randomness from rng.
	Setup(rng io.Reader, length int) (CommitKey, error)
	// Commit commits to vector under blinding.
	// Fails with ErrLengthMismatch when len(vector) != key.Length().
	Commit(key CommitKey, vector []*big.Int, blinding *big.Int) (Commitment, error)
}

// Config bundles the two commitment schemes of one folding instantiation:
// one for witness columns and one for selectors and the slack vector.
// It is selected once per circuit instantiation and passed by reference
// into every operation.
type Config struct {
	// Modulus is the prime field the committed vectors live in.
	Modulus *big.Int
	// Witness commits to witness columns.
	Witness Scheme
	// Selector commits to selector columns, the slack vector and
	// cross-term vectors.
	Selector Scheme
}
