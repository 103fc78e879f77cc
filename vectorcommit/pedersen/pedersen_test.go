package pedersen_test

import (
	"math/big"
	"testing"

	"github.com/geometryxyz/sangria-impl/csprng"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
	"github.com/geometryxyz/sangria-impl/vectorcommit/pedersen"
	"github.com/stretchr/testify/assert"
)

const length = 8

func sampleVec(s *csprng.KeyedSampler, modulus *big.Int, n int) []*big.Int {
	v := make([]*big.Int, n)
	for i := range v {
		v[i] = s.SampleMod(modulus)
	}
	return v
}

func testScheme(t *testing.T, scheme vectorcommit.Scheme, modulus *big.Int) {
	sampler := csprng.NewKeyedSampler([]byte("pedersen-test-key-0123456789abcd"))

	key, err := scheme.Setup(sampler, length)
	assert.NoError(t, err)
	assert.Equal(t, length, key.Length())

	v0 := sampleVec(sampler, modulus, length)
	v1 := sampleVec(sampler, modulus, length)
	b0 := sampler.SampleMod(modulus)
	b1 := sampler.SampleMod(modulus)

	c0, err := scheme.Commit(key, v0, b0)
	assert.NoError(t, err)
	c1, err := scheme.Commit(key, v1, b1)
	assert.NoError(t, err)

	t.Run("Hiding", func(t *testing.T) {
		cOther, err := scheme.Commit(key, v0, b1)
		assert.NoError(t, err)
		assert.False(t, c0.Equal(cOther))
	})

	t.Run("Additive", func(t *testing.T) {
		sum := make([]*big.Int, length)
		for i := range sum {
			sum[i] = big.NewInt(0).Add(v0[i], v1[i])
			sum[i].Mod(sum[i], modulus)
		}
		bSum := big.NewInt(0).Add(b0, b1)
		bSum.Mod(bSum, modulus)

		cSum, err := scheme.Commit(key, sum, bSum)
		assert.NoError(t, err)
		assert.True(t, c0.Add(c1).Equal(cSum))
	})

	t.Run("ScalarMul", func(t *testing.T) {
		x := sampler.SampleMod(modulus)

		scaled := make([]*big.Int, length)
		for i := range scaled {
			scaled[i] = big.NewInt(0).Mul(v0[i], x)
			scaled[i].Mod(scaled[i], modulus)
		}
		bScaled := big.NewInt(0).Mul(b0, x)
		bScaled.Mod(bScaled, modulus)

		cScaled, err := scheme.Commit(key, scaled, bScaled)
		assert.NoError(t, err)
		assert.True(t, c0.ScalarMul(x).Equal(cScaled))
	})

	t.Run("FoldIdentity", func(t *testing.T) {
		// c0 + r*T + r^2*c1 for a random T must open to the folded
		// vector and blinding under the same combination.
		tVec := sampleVec(sampler, modulus, length)
		tBlind := sampler.SampleMod(modulus)
		tCom, err := scheme.Commit(key, tVec, tBlind)
		assert.NoError(t, err)

		r := sampler.SampleMod(modulus)
		rSq := big.NewInt(0).Mul(r, r)
		rSq.Mod(rSq, modulus)

		folded := make([]*big.Int, length)
		for i := range folded {
			folded[i] = big.NewInt(0).Mul(r, tVec[i])
			folded[i].Add(folded[i], v0[i])
			folded[i].Add(folded[i], big.NewInt(0).Mul(rSq, v1[i]))
			folded[i].Mod(folded[i], modulus)
		}
		bFolded := big.NewInt(0).Mul(r, tBlind)
		bFolded.Add(bFolded, b0)
		bFolded.Add(bFolded, big.NewInt(0).Mul(rSq, b1))
		bFolded.Mod(bFolded, modulus)

		cFolded, err := scheme.Commit(key, folded, bFolded)
		assert.NoError(t, err)
		assert.True(t, c0.Add(tCom.ScalarMul(r)).Add(c1.ScalarMul(rSq)).Equal(cFolded))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := scheme.Commit(key, sampleVec(sampler, modulus, length+1), b0)
		assert.ErrorIs(t, err, vectorcommit.ErrLengthMismatch)
	})

	t.Run("BytesInjective", func(t *testing.T) {
		assert.NotEqual(t, c0.Bytes(), c1.Bytes())
	})
}

func TestBN254(t *testing.T) {
	testScheme(t, pedersen.NewBN254(), pedersen.BN254Modulus())
}

func TestGrumpkin(t *testing.T) {
	testScheme(t, pedersen.NewGrumpkin(), pedersen.GrumpkinModulus())
}
