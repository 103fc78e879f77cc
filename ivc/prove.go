package ivc

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/folding"
	"github.com/geometryxyz/sangria-impl/plonk"
)

// advanceHalf produces one curve's next half-cycle proof: it folds the
// previous latest pair into the running pair (or seeds the base-case
// running pair from originTrace), lifts the new latest trace into a
// trivial pair, and precomputes the cross-term bundle of the fold the
// verifier will replay.
func advanceHalf(pk *folding.ProverKey, prev *HalfCycleProof,
	originInstance plonk.Instance, originWitness plonk.Witness,
	latestInstance plonk.Instance, latestWitness plonk.Witness,
	rng folding.FieldSampler) (HalfCycleProof, error) {
	pp := pk.PublicParameters

	var runningInstance plonk.RelaxedInstance
	var runningWitness plonk.RelaxedWitness
	var err error
	if prev == nil {
		runningInstance, runningWitness, err = folding.NewTrivialPair(pp, originInstance, originWitness)
	} else {
		runningInstance, runningWitness, err = folding.FoldPair(pk,
			prev.RunningInstance, prev.RunningWitness,
			prev.LatestStepInstance, prev.LatestStepWitness,
			prev.CrossTermVector, prev.CrossTermHiding, prev.CrossTerm)
	}
	if err != nil {
		return HalfCycleProof{}, err
	}

	latestRelaxedInstance, latestRelaxedWitness, err := folding.NewTrivialPair(pp, latestInstance, latestWitness)
	if err != nil {
		return HalfCycleProof{}, err
	}

	prover := folding.NewProver(pk, rng)
	tVec, tHiding, t, err := prover.CrossTermBundle(
		runningInstance, runningWitness, latestRelaxedInstance, latestRelaxedWitness)
	if err != nil {
		return HalfCycleProof{}, err
	}

	return HalfCycleProof{
		LatestStepInstance: latestRelaxedInstance,
		LatestStepWitness:  latestRelaxedWitness,
		RunningInstance:    runningInstance,
		RunningWitness:     runningWitness,
		CrossTerm:          t,
		CrossTermVector:    tVec,
		CrossTermHiding:    tHiding,
	}, nil
}

// ProveStep extends an IVC proof by one step: it runs the step circuit
// on currentState, folds the previous step into the main running pair,
// and folds the helper-curve trace binding the main fold into the
// helper running pair. The pairs of currentProof are retired; folding
// against them again is invalid.
//
// A nil currentProof starts the chain: currentState must be the origin
// state, and the running pairs are seeded from the origin traces.
func ProveStep(pk *ProverKey, originState, currentState []*big.Int, currentProof *Proof,
	stepWitness []*big.Int, rng folding.FieldSampler) ([]*big.Int, *Proof, error) {
	nextState, latestInstance, latestWitness, err := pk.MainStep.Synthesize(currentState, stepWitness)
	if err != nil {
		return nil, nil, err
	}

	originInstance, originWitness, err := pk.MainStep.OriginTrace(originState)
	if err != nil {
		return nil, nil, err
	}

	var prevMain, prevHelper *HalfCycleProof
	step := uint64(1)
	if currentProof != nil {
		prevMain = &currentProof.Main
		prevHelper = &currentProof.Helper
		step = currentProof.Step + 1
	}

	mainHalf, err := advanceHalf(pk.Main, prevMain,
		originInstance, originWitness, latestInstance, latestWitness, rng)
	if err != nil {
		return nil, nil, err
	}

	// The helper trace binds the digest of the main running instance,
	// attesting the fold that produced it on the other curve.
	digest := instanceDigest(pk.Helper.PublicParameters.TranscriptSeed,
		mainHalf.RunningInstance, pk.Helper.PublicParameters.Config.Modulus)

	_, helperInstance, helperWitness, err := pk.HelperStep.Synthesize([]*big.Int{digest}, nil)
	if err != nil {
		return nil, nil, err
	}
	helperOriginInstance, helperOriginWitness, err := pk.HelperStep.OriginTrace([]*big.Int{digest})
	if err != nil {
		return nil, nil, err
	}

	helperHalf, err := advanceHalf(pk.Helper, prevHelper,
		helperOriginInstance, helperOriginWitness, helperInstance, helperWitness, rng)
	if err != nil {
		return nil, nil, err
	}

	return nextState, &Proof{
		Step:   step,
		Main:   mainHalf,
		Helper: helperHalf,
	}, nil
}
