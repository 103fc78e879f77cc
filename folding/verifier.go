package folding

import (
	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// Verifier folds pairs of relaxed instances without access to any
// witness. It re-derives the challenge itself and never accepts one
// supplied by a prover.
type Verifier struct {
	PublicParameters *PublicParameters
	VerifierKey      *VerifierKey
}

// NewVerifier creates a new Verifier.
func NewVerifier(pp *PublicParameters, vk *VerifierKey) *Verifier {
	return &Verifier{
		PublicParameters: pp,
		VerifierKey:      vk,
	}
}

// Fold re-derives the folding challenge over the same transcript data
// as the prover and recomputes the instance-side folding arithmetic.
func (v *Verifier) Fold(leftInstance, rightInstance plonk.RelaxedInstance,
	proverMessage vectorcommit.Commitment) (plonk.RelaxedInstance, error) {
	if len(leftInstance.WitnessCommitments) != len(rightInstance.WitnessCommitments) {
		return plonk.RelaxedInstance{}, ErrSizeMismatch
	}
	if leftInstance.Instance.Columns() != rightInstance.Instance.Columns() ||
		leftInstance.Instance.Rows() != rightInstance.Instance.Rows() {
		return plonk.RelaxedInstance{}, ErrSizeMismatch
	}

	challenge := DeriveChallenge(v.PublicParameters, v.VerifierKey, leftInstance, rightInstance, proverMessage)
	return FoldInstances(v.PublicParameters.Config.Modulus, leftInstance, rightInstance, proverMessage, challenge), nil
}
