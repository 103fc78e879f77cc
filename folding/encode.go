package folding

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/transcript"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// VerifierKey is the data the folding verifier needs beyond the public
// parameters: the commitment to the constant selector column.
type VerifierKey struct {
	SelectorCCommitment vectorcommit.Commitment
}

// AppendToTranscript absorbs the verifier key.
func (vk *VerifierKey) AppendToTranscript(tr *transcript.Transcript) {
	tr.WriteBytes(vk.SelectorCCommitment.Bytes())
}

// ProverKey is the data the folding prover needs: the circuit, the
// public parameters, the verifier key it must agree with, and the
// blinding under which the constant selector was committed.
type ProverKey struct {
	Circuit          plonk.Circuit
	PublicParameters *PublicParameters
	VerifierKey      *VerifierKey
	SelectorCHiding  *big.Int
}

// Encode commits to the constant selector column q_C under a fresh
// blinding and produces the prover and verifier keys for the circuit.
// The selector column is zero-padded to the selector/slack key length
// before committing.
// Fails with plonk.ErrIndexOutOfBounds on a circuit with fewer than
// plonk.NumSelectors selector columns, and with ErrSizeMismatch when
// the circuit size does not match the public parameters.
func Encode(pp *PublicParameters, circuit plonk.Circuit, rng FieldSampler) (*ProverKey, *VerifierKey, error) {
	qC, err := circuit.Selector(plonk.SelectorC)
	if err != nil {
		return nil, nil, err
	}
	if circuit.Gates() != pp.NumberOfGates {
		return nil, nil, ErrSizeMismatch
	}

	padded := append(qC, plonk.ZeroVec(pp.SlackLength()-len(qC))...)
	hiding := rng.SampleMod(pp.Config.Modulus)

	com, err := pp.Config.Selector.Commit(pp.SelectorKey, padded, hiding)
	if err != nil {
		return nil, nil, err
	}

	vk := &VerifierKey{SelectorCCommitment: com}
	pk := &ProverKey{
		Circuit:          circuit,
		PublicParameters: pp,
		VerifierKey:      vk,
		SelectorCHiding:  hiding,
	}
	return pk, vk, nil
}
