package ivc

import (
	"fmt"
	"math/big"

	"github.com/geometryxyz/sangria-impl/folding"
	"github.com/geometryxyz/sangria-impl/plonk"
)

// verifyHalf replays one curve's fold: it re-derives the challenge,
// folds the running and latest instances through the folding verifier,
// folds the witnesses under the same challenge, and checks the folded
// pair satisfies the relaxed relation. By folding soundness this
// vouches for both supplied pairs at once.
func verifyHalf(pp *folding.PublicParameters, vk *folding.VerifierKey,
	circuit plonk.Circuit, half *HalfCycleProof) error {
	verifier := folding.NewVerifier(pp, vk)
	foldedInstance, err := verifier.Fold(half.RunningInstance, half.LatestStepInstance, half.CrossTerm)
	if err != nil {
		return err
	}

	challenge := folding.DeriveChallenge(pp, vk,
		half.RunningInstance, half.LatestStepInstance, half.CrossTerm)
	foldedWitness, err := folding.FoldWitnesses(pp.Config.Modulus,
		half.RunningWitness, half.LatestStepWitness,
		half.CrossTermVector, half.CrossTermHiding, challenge)
	if err != nil {
		return err
	}

	ok, err := folding.IsSatisfied(pp, circuit, foldedInstance, foldedWitness)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: folded pair does not satisfy the relaxed relation", ErrVerificationFailed)
	}

	// The latest pair must be a genuine fresh step, not an already
	// relaxed instance smuggled in.
	if half.LatestStepInstance.ScalingFactor.Cmp(big.NewInt(1)) != 0 ||
		!plonk.IsZeroVec(half.LatestStepWitness.SlackVector) ||
		half.LatestStepWitness.SlackHiding.Sign() != 0 {
		return fmt.Errorf("%w: latest step pair is not trivial", ErrVerificationFailed)
	}
	return nil
}

// checkStateBinding checks the latest step trace exposes exactly the
// public inputs a trace ending in state must expose.
func checkStateBinding(step StepCircuit, instance plonk.RelaxedInstance, state []*big.Int) error {
	if step.PublicInputs() == 0 {
		return nil
	}
	expected, err := step.StateToPublicInputs(state)
	if err != nil {
		return err
	}
	got, err := instance.Instance.Column(0)
	if err != nil {
		return err
	}
	if !plonk.VecEqual(expected, got) {
		return fmt.Errorf("%w: public inputs do not bind the claimed state", ErrVerificationFailed)
	}
	return nil
}

// Verify checks an IVC proof against the origin and current states:
// both curves' folds are replayed independently, the latest main trace
// must bind currentState, the latest helper trace must bind the digest
// of the main running instance, and a first-step proof's running pairs
// must equal the trivial pairs derived from the origin state.
//
// A nil proof is the zero-step chain and verifies exactly when
// currentState equals originState.
func Verify(vk *VerifierKey, originState, currentState []*big.Int, proof *Proof) error {
	if proof == nil {
		if !plonk.VecEqual(originState, currentState) {
			return fmt.Errorf("%w: no proof supplied for a state transition", ErrVerificationFailed)
		}
		return nil
	}

	if err := verifyHalf(vk.Main, vk.MainVK, vk.MainStep.Circuit(), &proof.Main); err != nil {
		return err
	}
	if err := verifyHalf(vk.Helper, vk.HelperVK, vk.HelperStep.Circuit(), &proof.Helper); err != nil {
		return err
	}

	if err := checkStateBinding(vk.MainStep, proof.Main.LatestStepInstance, currentState); err != nil {
		return err
	}

	digest := instanceDigest(vk.Helper.TranscriptSeed,
		proof.Main.RunningInstance, vk.Helper.Config.Modulus)
	if err := checkStateBinding(vk.HelperStep, proof.Helper.LatestStepInstance, []*big.Int{digest}); err != nil {
		return err
	}

	if proof.Step == 1 {
		originInstance, originWitness, err := vk.MainStep.OriginTrace(originState)
		if err != nil {
			return err
		}
		trivialInstance, trivialWitness, err := folding.NewTrivialPair(vk.Main, originInstance, originWitness)
		if err != nil {
			return err
		}
		if !proof.Main.RunningInstance.Equal(trivialInstance) || !proof.Main.RunningWitness.Equal(trivialWitness) {
			return fmt.Errorf("%w: base-case running pair does not match the origin state", ErrVerificationFailed)
		}

		helperOriginInstance, helperOriginWitness, err := vk.HelperStep.OriginTrace([]*big.Int{digest})
		if err != nil {
			return err
		}
		helperTrivialInstance, helperTrivialWitness, err := folding.NewTrivialPair(vk.Helper, helperOriginInstance, helperOriginWitness)
		if err != nil {
			return err
		}
		if !proof.Helper.RunningInstance.Equal(helperTrivialInstance) ||
			!proof.Helper.RunningWitness.Equal(helperTrivialWitness) {
			return fmt.Errorf("%w: base-case helper pair does not match the origin state", ErrVerificationFailed)
		}
	}

	return nil
}
