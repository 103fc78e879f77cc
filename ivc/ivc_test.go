package ivc_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geometryxyz/sangria-impl/csprng"
	"github.com/geometryxyz/sangria-impl/ivc"
	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

var modulus = big.NewInt(97)

const gates = 4

// counterCircuit increments its state by one per step, reusing the echo
// trace layout for the incremented value.
type counterCircuit struct {
	*ivc.EchoStepCircuit
}

func (c *counterCircuit) Synthesize(state, stepWitness []*big.Int) ([]*big.Int, plonk.Instance, plonk.Witness, error) {
	next := big.NewInt(0).Add(state[0], big.NewInt(1))
	next.Mod(next, modulus)

	_, instance, witness, err := c.EchoStepCircuit.Synthesize([]*big.Int{next}, nil)
	if err != nil {
		return nil, plonk.Instance{}, plonk.Witness{}, err
	}
	return []*big.Int{next}, instance, witness, nil
}

func setup(t *testing.T) (*ivc.ProverKey, *ivc.VerifierKey, *csprng.KeyedSampler) {
	plainConfig := vectorcommit.Config{
		Modulus:  modulus,
		Witness:  vectorcommit.NewPlainScheme(modulus),
		Selector: vectorcommit.NewPlainScheme(modulus),
	}

	echo, err := ivc.NewEchoStepCircuit(gates, 1, modulus)
	assert.NoError(t, err)
	helperEcho, err := ivc.NewEchoStepCircuit(gates, 1, modulus)
	assert.NoError(t, err)

	cfg := ivc.Config{
		Main: ivc.HalfConfig{
			Step:   &counterCircuit{EchoStepCircuit: echo},
			Commit: plainConfig,
		},
		Helper: ivc.HalfConfig{
			Step:   helperEcho,
			Commit: plainConfig,
		},
	}

	sampler := csprng.NewKeyedSampler([]byte("ivc-test-key-0123456789abcdefghi"))
	pp, err := ivc.Setup(cfg, sampler)
	assert.NoError(t, err)
	pk, vk, err := ivc.Encode(pp, cfg, sampler)
	assert.NoError(t, err)
	return pk, vk, sampler
}

func TestCounterChain(t *testing.T) {
	pk, vk, sampler := setup(t)

	origin := []*big.Int{big.NewInt(3)}
	state := plonk.CopyVec(origin)

	var proof *ivc.Proof
	var err error
	for i := 0; i < 5; i++ {
		state, proof, err = ivc.ProveStep(pk, origin, state, proof, nil, sampler)
		assert.NoError(t, err)
		assert.Equal(t, uint64(i+1), proof.Step)
		assert.Equal(t, big.NewInt(int64(4+i)), state[0])

		assert.NoError(t, ivc.Verify(vk, origin, state, proof))
	}
}

func TestEmptyChain(t *testing.T) {
	_, vk, _ := setup(t)

	origin := []*big.Int{big.NewInt(3)}

	assert.NoError(t, ivc.Verify(vk, origin, origin, nil))

	err := ivc.Verify(vk, origin, []*big.Int{big.NewInt(4)}, nil)
	assert.ErrorIs(t, err, ivc.ErrVerificationFailed)
}

func TestRejectsWrongState(t *testing.T) {
	pk, vk, sampler := setup(t)

	origin := []*big.Int{big.NewInt(0)}
	state, proof, err := ivc.ProveStep(pk, origin, origin, nil, nil, sampler)
	assert.NoError(t, err)
	state, proof, err = ivc.ProveStep(pk, origin, state, proof, nil, sampler)
	assert.NoError(t, err)

	wrong := []*big.Int{big.NewInt(0).Add(state[0], big.NewInt(1))}
	err = ivc.Verify(vk, origin, wrong, proof)
	assert.ErrorIs(t, err, ivc.ErrVerificationFailed)
}

func TestRejectsWrongOrigin(t *testing.T) {
	pk, vk, sampler := setup(t)

	origin := []*big.Int{big.NewInt(0)}
	state, proof, err := ivc.ProveStep(pk, origin, origin, nil, nil, sampler)
	assert.NoError(t, err)

	// A first-step proof pins its running pair to the origin trace.
	err = ivc.Verify(vk, []*big.Int{big.NewInt(9)}, state, proof)
	assert.ErrorIs(t, err, ivc.ErrVerificationFailed)
}

func TestRejectsTamperedProof(t *testing.T) {
	pk, vk, sampler := setup(t)

	origin := []*big.Int{big.NewInt(0)}
	state, proof, err := ivc.ProveStep(pk, origin, origin, nil, nil, sampler)
	assert.NoError(t, err)
	state, proof, err = ivc.ProveStep(pk, origin, state, proof, nil, sampler)
	assert.NoError(t, err)

	t.Run("RunningInstance", func(t *testing.T) {
		tampered := *proof
		tampered.Main.RunningInstance.ScalingFactor =
			big.NewInt(0).Add(proof.Main.RunningInstance.ScalingFactor, big.NewInt(1))

		err := ivc.Verify(vk, origin, state, &tampered)
		assert.ErrorIs(t, err, ivc.ErrVerificationFailed)
	})

	t.Run("LatestNotTrivial", func(t *testing.T) {
		tampered := *proof
		slack := plonk.CopyVec(proof.Main.LatestStepWitness.SlackVector)
		slack[0] = big.NewInt(1)
		tampered.Main.LatestStepWitness.SlackVector = slack

		err := ivc.Verify(vk, origin, state, &tampered)
		assert.ErrorIs(t, err, ivc.ErrVerificationFailed)
	})

	t.Run("CrossTermVector", func(t *testing.T) {
		tampered := *proof
		tVec := plonk.CopyVec(proof.Main.CrossTermVector)
		tVec[0] = big.NewInt(0).Add(tVec[0], big.NewInt(1))
		tVec[0].Mod(tVec[0], modulus)
		tampered.Main.CrossTermVector = tVec

		err := ivc.Verify(vk, origin, state, &tampered)
		assert.ErrorIs(t, err, ivc.ErrVerificationFailed)
	})
}

func TestEchoStepCircuit(t *testing.T) {
	echo, err := ivc.NewEchoStepCircuit(gates, 2, modulus)
	assert.NoError(t, err)
	assert.Equal(t, 2, echo.PublicInputs())
	assert.Equal(t, gates, echo.Circuit().Gates())

	state := []*big.Int{big.NewInt(5), big.NewInt(7)}
	next, instance, witness, err := echo.Synthesize(state, nil)
	assert.NoError(t, err)
	assert.Equal(t, state, next)

	a, err := witness.Column(plonk.WireA)
	assert.NoError(t, err)
	assert.Equal(t, state, a[:2])

	pi, err := instance.Column(0)
	assert.NoError(t, err)
	assert.Equal(t, state, pi)

	ok, err := echo.Circuit().CheckPermutation(witness)
	assert.NoError(t, err)
	assert.True(t, ok)

	t.Run("WrongStateLength", func(t *testing.T) {
		_, _, _, err := echo.Synthesize(state[:1], nil)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})

	t.Run("TooManyPublicInputs", func(t *testing.T) {
		_, err := ivc.NewEchoStepCircuit(2, 3, modulus)
		assert.ErrorIs(t, err, plonk.ErrIndexOutOfBounds)
	})
}
