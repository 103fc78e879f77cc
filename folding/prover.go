package folding

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// Prover folds pairs of relaxed instance-witness pairs into one.
// It holds no session state: every Fold is a pure function of the
// prover key, the supplied pairs and the sampler.
type Prover struct {
	ProverKey *ProverKey

	sampler FieldSampler
}

// NewProver creates a new Prover. The sampler supplies the fresh
// blindings of cross-term commitments.
func NewProver(pk *ProverKey, sampler FieldSampler) *Prover {
	return &Prover{
		ProverKey: pk,
		sampler:   sampler,
	}
}

func (p *Prover) checkShapes(inst plonk.RelaxedInstance, wit plonk.RelaxedWitness) error {
	pp := p.ProverKey.PublicParameters
	if wit.Witness.Rows() != pp.NumberOfGates || wit.Witness.Columns() < plonk.NumWireColumns {
		return ErrSizeMismatch
	}
	if len(inst.WitnessCommitments) != wit.Witness.Columns() {
		return ErrSizeMismatch
	}
	if len(wit.CommitmentHidings) != wit.Witness.Columns() {
		return ErrSizeMismatch
	}
	if len(wit.SlackVector) != pp.SlackLength() {
		return ErrSizeMismatch
	}
	return nil
}

// CrossTermBundle computes the cross-term vector of folding left with
// right and commits to it under a fresh blinding. The commitment is the
// prover message absorbed into the challenge transcript.
func (p *Prover) CrossTermBundle(leftInstance plonk.RelaxedInstance, leftWitness plonk.RelaxedWitness,
	rightInstance plonk.RelaxedInstance, rightWitness plonk.RelaxedWitness) ([]*big.Int, *big.Int, vectorcommit.Commitment, error) {
	pp := p.ProverKey.PublicParameters

	tVec, err := CrossTerm(p.ProverKey, leftInstance, leftWitness, rightInstance, rightWitness)
	if err != nil {
		return nil, nil, nil, err
	}
	tHiding := p.sampler.SampleMod(pp.Config.Modulus)

	t, err := pp.Config.Selector.Commit(pp.SelectorKey, tVec, tHiding)
	if err != nil {
		return nil, nil, nil, err
	}
	return tVec, tHiding, t, nil
}

// Fold folds the two supplied pairs into one, returning the folded pair
// and the cross-term commitment the verifier folds with.
func (p *Prover) Fold(leftInstance plonk.RelaxedInstance, leftWitness plonk.RelaxedWitness,
	rightInstance plonk.RelaxedInstance, rightWitness plonk.RelaxedWitness,
) (plonk.RelaxedInstance, plonk.RelaxedWitness, vectorcommit.Commitment, error) {
	if err := p.checkShapes(leftInstance, leftWitness); err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, nil, err
	}
	if err := p.checkShapes(rightInstance, rightWitness); err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, nil, err
	}

	tVec, tHiding, t, err := p.CrossTermBundle(leftInstance, leftWitness, rightInstance, rightWitness)
	if err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, nil, err
	}

	foldedInstance, foldedWitness, err := FoldPair(p.ProverKey,
		leftInstance, leftWitness, rightInstance, rightWitness, tVec, tHiding, t)
	if err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, nil, err
	}
	return foldedInstance, foldedWitness, t, nil
}

// FoldPair folds two pairs under a precomputed cross-term bundle,
// deriving the challenge from the transcript exactly as the verifier
// does. The IVC driver uses this to make the fold it performs and the
// fold its verifier replays one and the same.
func FoldPair(pk *ProverKey, leftInstance plonk.RelaxedInstance, leftWitness plonk.RelaxedWitness,
	rightInstance plonk.RelaxedInstance, rightWitness plonk.RelaxedWitness,
	crossTermVector []*big.Int, crossTermHiding *big.Int, crossTerm vectorcommit.Commitment,
) (plonk.RelaxedInstance, plonk.RelaxedWitness, error) {
	pp := pk.PublicParameters

	challenge := DeriveChallenge(pp, pk.VerifierKey, leftInstance, rightInstance, crossTerm)
	foldedInstance := FoldInstances(pp.Config.Modulus, leftInstance, rightInstance, crossTerm, challenge)
	foldedWitness, err := FoldWitnesses(pp.Config.Modulus, leftWitness, rightWitness,
		crossTermVector, crossTermHiding, challenge)
	if err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, err
	}
	return foldedInstance, foldedWitness, nil
}
