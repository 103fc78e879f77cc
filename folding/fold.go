package folding

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/transcript"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// DeriveChallenge derives the folding challenge from the transcript,
// absorbing the domain separator, the verifier key, the left instance,
// the right instance and the prover message, in that fixed order.
// Prover and verifier must both call this on byte-identical data.
func DeriveChallenge(pp *PublicParameters, vk *VerifierKey,
	leftInstance, rightInstance plonk.RelaxedInstance, proverMessage vectorcommit.Commitment) *big.Int {
	tr := transcript.New(domainSeparator, pp.TranscriptSeed)
	vk.AppendToTranscript(tr)
	leftInstance.AppendToTranscript(tr)
	rightInstance.AppendToTranscript(tr)
	tr.WriteBytes(proverMessage.Bytes())
	return tr.SampleMod(pp.Config.Modulus)
}

// FoldInstances combines two relaxed instances under the given
// challenge r: scaling factors, instance matrices and witness
// commitments fold as left + r*right, while the slack commitment folds
// as E_l + r*T + r^2*E_r, with the cross-term commitment T at the first
// power of the challenge.
func FoldInstances(modulus *big.Int, left, right plonk.RelaxedInstance,
	crossTerm vectorcommit.Commitment, challenge *big.Int) plonk.RelaxedInstance {
	folded := left.Add(right.ScalarMul(challenge, modulus), modulus)

	challengeSq := big.NewInt(0).Mul(challenge, challenge)
	challengeSq.Mod(challengeSq, modulus)
	folded.SlackCommitment = left.SlackCommitment.
		Add(crossTerm.ScalarMul(challenge)).
		Add(right.SlackCommitment.ScalarMul(challengeSq))

	return folded
}

// FoldWitnesses combines two relaxed witnesses under the given
// challenge r: witness columns and their blindings fold as
// left + r*right, while the slack vector and its blinding fold as
// e_l + r*t + r^2*e_r, mirroring FoldInstances.
func FoldWitnesses(modulus *big.Int, left, right plonk.RelaxedWitness,
	crossTermVector []*big.Int, crossTermHiding, challenge *big.Int) (plonk.RelaxedWitness, error) {
	if left.Witness.Columns() != right.Witness.Columns() || left.Witness.Rows() != right.Witness.Rows() {
		return plonk.RelaxedWitness{}, ErrSizeMismatch
	}
	if len(left.SlackVector) != len(right.SlackVector) || len(left.SlackVector) != len(crossTermVector) {
		return plonk.RelaxedWitness{}, ErrSizeMismatch
	}
	if len(left.CommitmentHidings) != len(right.CommitmentHidings) {
		return plonk.RelaxedWitness{}, ErrSizeMismatch
	}

	challengeSq := big.NewInt(0).Mul(challenge, challenge)
	challengeSq.Mod(challengeSq, modulus)

	cols := make([][]*big.Int, left.Witness.Columns())
	for i := range cols {
		lCol, err := left.Witness.Column(i)
		if err != nil {
			return plonk.RelaxedWitness{}, err
		}
		rCol, err := right.Witness.Column(i)
		if err != nil {
			return plonk.RelaxedWitness{}, err
		}
		cols[i] = plonk.AddVec(lCol, plonk.ScalarMulVec(challenge, rCol, modulus), modulus)
	}
	witness, err := plonk.NewWitness(cols)
	if err != nil {
		return plonk.RelaxedWitness{}, err
	}

	hidings := plonk.AddVec(left.CommitmentHidings,
		plonk.ScalarMulVec(challenge, right.CommitmentHidings, modulus), modulus)

	slack := plonk.AddVec(left.SlackVector,
		plonk.ScalarMulVec(challenge, crossTermVector, modulus), modulus)
	slack = plonk.AddVec(slack,
		plonk.ScalarMulVec(challengeSq, right.SlackVector, modulus), modulus)

	slackHiding := big.NewInt(0).Mul(challenge, crossTermHiding)
	slackHiding.Add(slackHiding, left.SlackHiding)
	slackHiding.Add(slackHiding, big.NewInt(0).Mul(challengeSq, right.SlackHiding))
	slackHiding.Mod(slackHiding, modulus)

	return plonk.RelaxedWitness{
		Witness:           witness,
		SlackVector:       slack,
		CommitmentHidings: hidings,
		SlackHiding:       slackHiding,
	}, nil
}
