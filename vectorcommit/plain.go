package vectorcommit

import (
	"encoding/binary"
	"io"
	"math/big"
)

// PlainScheme is a transparent commitment scheme: the commitment is the
// vector itself together with its blinding, reduced modulo the field prime.
// It is perfectly homomorphic and hides nothing. It exists so that the
// folding arithmetic can be exercised over small fields in tests and
// examples, where a curve-based scheme is unavailable or unwanted.
type PlainScheme struct {
	Modulus *big.Int
}

// NewPlainScheme creates a new PlainScheme over the given prime modulus.
func NewPlainScheme(modulus *big.Int) *PlainScheme {
	return &PlainScheme{Modulus: big.NewInt(0).Set(modulus)}
}

type plainKey struct {
	length  int
	modulus *big.Int
}

// Length is the exact vector length the key commits to.
func (k plainKey) Length() int {
	return k.length
}

// PlainCommitment is a PlainScheme commitment.
// Values holds the committed vector followed by its blinding.
type PlainCommitment struct {
	Values  []*big.Int
	Modulus *big.Int
}

// Setup generates a key for vectors of length exactly length.
// PlainScheme keys carry no randomness; rng is unused.
func (s *PlainScheme) Setup(rng io.Reader, length int) (CommitKey, error) {
	return plainKey{length: length, modulus: s.Modulus}, nil
}

// Commit commits to vector under blinding.
// Fails with ErrLengthMismatch when len(vector) != key.Length().
func (s *PlainScheme) Commit(key CommitKey, vector []*big.Int, blinding *big.Int) (Commitment, error) {
	k, ok := key.(plainKey)
	if !ok {
		return nil, ErrSchemeMismatch
	}
	if len(vector) != k.length {
		return nil, ErrLengthMismatch
	}

	values := make([]*big.Int, len(vector)+1)
	for i, v := range vector {
		values[i] = big.NewInt(0).Mod(v, s.Modulus)
	}
	values[len(vector)] = big.NewInt(0).Mod(blinding, s.Modulus)

	return PlainCommitment{Values: values, Modulus: s.Modulus}, nil
}

// Add returns the group sum of the two commitments.
func (c PlainCommitment) Add(other Commitment) Commitment {
	o, ok := other.(PlainCommitment)
	if !ok || len(o.Values) != len(c.Values) {
		panic("plain commitment mismatch")
	}

	values := make([]*big.Int, len(c.Values))
	for i := range values {
		values[i] = big.NewInt(0).Add(c.Values[i], o.Values[i])
		values[i].Mod(values[i], c.Modulus)
	}
	return PlainCommitment{Values: values, Modulus: c.Modulus}
}

// ScalarMul returns the commitment scaled by x.
func (c PlainCommitment) ScalarMul(x *big.Int) Commitment {
	values := make([]*big.Int, len(c.Values))
	for i := range values {
		values[i] = big.NewInt(0).Mul(c.Values[i], x)
		values[i].Mod(values[i], c.Modulus)
	}
	return PlainCommitment{Values: values, Modulus: c.Modulus}
}

// Equal reports whether the two commitments are identical.
func (c PlainCommitment) Equal(other Commitment) bool {
	o, ok := other.(PlainCommitment)
	if !ok || len(o.Values) != len(c.Values) {
		return false
	}
	for i := range c.Values {
		if c.Values[i].Cmp(o.Values[i]) != 0 {
			return false
		}
	}
	return true
}

// Bytes returns the canonical serialization of the commitment.
func (c PlainCommitment) Bytes() []byte {
	var buf []byte
	var lenBuf [8]byte

	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(c.Values)))
	buf = append(buf, lenBuf[:]...)
	for _, v := range c.Values {
		vBytes := v.Bytes()
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(vBytes)))
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, vBytes...)
	}
	return buf
}
