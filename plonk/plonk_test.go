package plonk_test

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/geometryxyz/sangria-impl/csprng"
	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

var modulus = big.NewInt(97)

const gates = 4

func TestMatrixBounds(t *testing.T) {
	cols := [][]*big.Int{
		{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
		{big.NewInt(4), big.NewInt(5), big.NewInt(6)},
	}
	m, err := plonk.NewMatrix(cols)
	assert.NoError(t, err)
	assert.Equal(t, 2, m.Columns())
	assert.Equal(t, 3, m.Rows())

	t.Run("Column", func(t *testing.T) {
		col, err := m.Column(1)
		assert.NoError(t, err)
		assert.Equal(t, cols[1], col)

		_, err = m.Column(2)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
		_, err = m.Column(-1)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("Row", func(t *testing.T) {
		row, err := m.Row(2)
		assert.NoError(t, err)
		assert.Equal(t, []*big.Int{big.NewInt(3), big.NewInt(6)}, row)

		_, err = m.Row(3)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("Entry", func(t *testing.T) {
		e, err := m.Entry(1, 2)
		assert.NoError(t, err)
		assert.Equal(t, big.NewInt(6), e)

		_, err = m.Entry(2, 0)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
		_, err = m.Entry(0, 3)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("CopyOnRead", func(t *testing.T) {
		col, err := m.Column(0)
		assert.NoError(t, err)
		col[0].SetInt64(99)

		again, err := m.Entry(0, 0)
		assert.NoError(t, err)
		assert.Equal(t, big.NewInt(1), again)
	})
}

func TestNewCircuit(t *testing.T) {
	ones := make([]*big.Int, gates)
	for i := range ones {
		ones[i] = big.NewInt(1)
	}
	selectors := [][]*big.Int{
		plonk.ZeroVec(gates),
		plonk.ZeroVec(gates),
		ones,
		ones,
		plonk.ZeroVec(gates),
	}

	t.Run("Valid", func(t *testing.T) {
		c, err := plonk.NewCircuit(selectors, plonk.IdentityPermutation(gates))
		assert.NoError(t, err)
		assert.Equal(t, gates, c.Gates())

		qM, err := c.Selector(plonk.SelectorM)
		assert.NoError(t, err)
		assert.Equal(t, ones, qM)

		_, err = c.Selector(plonk.NumSelectors)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("WrongSelectorCount", func(t *testing.T) {
		_, err := plonk.NewCircuit(selectors[:4], plonk.IdentityPermutation(gates))
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("RaggedSelectors", func(t *testing.T) {
		ragged := [][]*big.Int{
			plonk.ZeroVec(gates),
			plonk.ZeroVec(gates - 1),
			ones,
			ones,
			plonk.ZeroVec(gates),
		}
		_, err := plonk.NewCircuit(ragged, plonk.IdentityPermutation(gates))
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("PermutationNotBijective", func(t *testing.T) {
		perm := plonk.IdentityPermutation(gates)
		perm[0] = perm[1]
		_, err := plonk.NewCircuit(selectors, perm)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("PermutationOutOfRange", func(t *testing.T) {
		perm := plonk.IdentityPermutation(gates)
		perm[0] = plonk.NumWireColumns * gates
		_, err := plonk.NewCircuit(selectors, perm)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)

		perm[0] = -1
		_, err = plonk.NewCircuit(selectors, perm)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("PermutationWrongLength", func(t *testing.T) {
		_, err := plonk.NewCircuit(selectors, plonk.IdentityPermutation(gates-1))
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})
}

func TestCheckPermutation(t *testing.T) {
	ones := make([]*big.Int, gates)
	for i := range ones {
		ones[i] = big.NewInt(1)
	}
	selectors := [][]*big.Int{
		plonk.ZeroVec(gates),
		plonk.ZeroVec(gates),
		ones,
		ones,
		plonk.ZeroVec(gates),
	}

	// Constrain slot (a, 0) to equal slot (b, 0): swap them in the
	// permutation.
	perm := plonk.IdentityPermutation(gates)
	perm[plonk.WireA*gates], perm[plonk.WireB*gates] =
		perm[plonk.WireB*gates], perm[plonk.WireA*gates]
	circuit, err := plonk.NewCircuit(selectors, perm)
	assert.NoError(t, err)

	a := []*big.Int{big.NewInt(7), big.NewInt(2), big.NewInt(3), big.NewInt(4)}
	b := []*big.Int{big.NewInt(7), big.NewInt(5), big.NewInt(6), big.NewInt(8)}
	c := plonk.ZeroVec(gates)

	t.Run("Satisfied", func(t *testing.T) {
		w, err := plonk.NewWitness([][]*big.Int{a, b, c})
		assert.NoError(t, err)

		ok, err := circuit.CheckPermutation(w)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Violated", func(t *testing.T) {
		bBad := plonk.CopyVec(b)
		bBad[0] = big.NewInt(11)
		w, err := plonk.NewWitness([][]*big.Int{a, bBad, c})
		assert.NoError(t, err)

		ok, err := circuit.CheckPermutation(w)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("WrongShape", func(t *testing.T) {
		w, err := plonk.NewWitness([][]*big.Int{a[:gates-1], b[:gates-1], c[:gates-1]})
		assert.NoError(t, err)

		_, err = circuit.CheckPermutation(w)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})
}

// randomRelaxedInstance derives a deterministic relaxed instance
// from seed, committed under the plain scheme.
func randomRelaxedInstance(t *testing.T, scheme vectorcommit.Scheme, key vectorcommit.CommitKey, seed uint64) plonk.RelaxedInstance {
	var keyBytes [32]byte
	binary.BigEndian.PutUint64(keyBytes[:8], seed)
	sampler := csprng.NewKeyedSampler(keyBytes[:])

	sampleVec := func(n int) []*big.Int {
		v := make([]*big.Int, n)
		for i := range v {
			v[i] = sampler.SampleMod(modulus)
		}
		return v
	}

	instCol := sampleVec(1)
	inst, err := plonk.NewInstance([][]*big.Int{instCol})
	assert.NoError(t, err)

	witComs := make([]vectorcommit.Commitment, plonk.NumWireColumns)
	for i := range witComs {
		witComs[i], err = scheme.Commit(key, sampleVec(key.Length()), sampler.SampleMod(modulus))
		assert.NoError(t, err)
	}
	slackCom, err := scheme.Commit(key, sampleVec(key.Length()), sampler.SampleMod(modulus))
	assert.NoError(t, err)

	return plonk.RelaxedInstance{
		Instance:           inst,
		ScalingFactor:      sampler.SampleMod(modulus),
		SlackCommitment:    slackCom,
		WitnessCommitments: witComs,
	}
}

func TestRelaxedInstanceAlgebra(t *testing.T) {
	scheme := vectorcommit.NewPlainScheme(modulus)
	key, err := scheme.Setup(nil, gates)
	assert.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("A + B == B + A", prop.ForAll(
		func(s0, s1 uint64) bool {
			a := randomRelaxedInstance(t, scheme, key, s0)
			b := randomRelaxedInstance(t, scheme, key, s1)
			return a.Add(b, modulus).Equal(b.Add(a, modulus))
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("A*(c0+c1) == A*c0 + A*c1", prop.ForAll(
		func(s0, c0, c1 uint64) bool {
			a := randomRelaxedInstance(t, scheme, key, s0)

			x0 := big.NewInt(0).SetUint64(c0)
			x0.Mod(x0, modulus)
			x1 := big.NewInt(0).SetUint64(c1)
			x1.Mod(x1, modulus)
			sum := big.NewInt(0).Add(x0, x1)
			sum.Mod(sum, modulus)

			lhs := a.ScalarMul(sum, modulus)
			rhs := a.ScalarMul(x0, modulus).Add(a.ScalarMul(x1, modulus), modulus)
			return lhs.Equal(rhs)
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("A*1 == A", prop.ForAll(
		func(s0 uint64) bool {
			a := randomRelaxedInstance(t, scheme, key, s0)
			return a.ScalarMul(big.NewInt(1), modulus).Equal(a)
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestVecOps(t *testing.T) {
	x := []*big.Int{big.NewInt(90), big.NewInt(5)}
	y := []*big.Int{big.NewInt(10), big.NewInt(92)}

	assert.True(t, plonk.VecEqual([]*big.Int{big.NewInt(3), big.NewInt(0)}, plonk.AddVec(x, y, modulus)))
	assert.Equal(t, []*big.Int{big.NewInt(83), big.NewInt(10)}, plonk.ScalarMulVec(big.NewInt(2), x, modulus))
	assert.True(t, plonk.VecEqual(x, plonk.CopyVec(x)))
	assert.False(t, plonk.VecEqual(x, y))
	assert.True(t, plonk.IsZeroVec(plonk.ZeroVec(3)))
	assert.False(t, plonk.IsZeroVec(x))

	assert.Panics(t, func() { plonk.AddVec(x, y[:1], modulus) })
}
