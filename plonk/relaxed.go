package plonk

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/transcript"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// RelaxedInstance is a committed relaxed PLONK instance: the public
// instance matrix together with the scaling factor, the commitment to
// the slack vector and the commitments to the witness columns.
//
// A trivial (unrelaxed) instance has scaling factor 1 and a commitment
// to the all-zero slack vector under zero blinding.
type RelaxedInstance struct {
	Instance Instance

	ScalingFactor      *big.Int
	SlackCommitment    vectorcommit.Commitment
	WitnessCommitments []vectorcommit.Commitment
}

// RelaxedWitness is a committed relaxed PLONK witness: the witness
// matrix together with the slack vector and the blinding factors of the
// instance-side commitments.
//
// A trivial witness has an all-zero slack vector and zero blindings.
type RelaxedWitness struct {
	Witness Witness

	SlackVector []*big.Int
	// CommitmentHidings holds one blinding per witness column,
	// in column order.
	CommitmentHidings []*big.Int
	// SlackHiding is the blinding of the slack commitment.
	SlackHiding *big.Int
}

// WitnessCommitment returns the i-th witness-column commitment.
// Fails with ErrIndexOutOfBounds when i >= len(WitnessCommitments).
func (ri RelaxedInstance) WitnessCommitment(i int) (vectorcommit.Commitment, error) {
	if i < 0 || i >= len(ri.WitnessCommitments) {
		return nil, ErrIndexOutOfBounds
	}
	return ri.WitnessCommitments[i], nil
}

// ScalarMul returns the instance scaled by c: the scaling factor, the
// instance matrix, the slack commitment and every witness commitment are
// multiplied by c through the schemes' homomorphic structure.
func (ri RelaxedInstance) ScalarMul(c *big.Int, modulus *big.Int) RelaxedInstance {
	cols := make([][]*big.Int, ri.Instance.Columns())
	for i := range cols {
		col, _ := ri.Instance.Column(i)
		cols[i] = ScalarMulVec(c, col, modulus)
	}
	inst, _ := NewInstance(cols)

	witComs := make([]vectorcommit.Commitment, len(ri.WitnessCommitments))
	for i := range witComs {
		witComs[i] = ri.WitnessCommitments[i].ScalarMul(c)
	}

	scale := big.NewInt(0).Mul(ri.ScalingFactor, c)
	scale.Mod(scale, modulus)

	return RelaxedInstance{
		Instance:           inst,
		ScalingFactor:      scale,
		SlackCommitment:    ri.SlackCommitment.ScalarMul(c),
		WitnessCommitments: witComs,
	}
}

// Add returns the sum of the two instances: scaling factors and instance
// matrices add in the field, commitments add pointwise in the group.
// Panics if the shapes differ.
func (ri RelaxedInstance) Add(other RelaxedInstance, modulus *big.Int) RelaxedInstance {
	if len(ri.WitnessCommitments) != len(other.WitnessCommitments) {
		panic("witness commitment count mismatch")
	}

	cols := make([][]*big.Int, ri.Instance.Columns())
	for i := range cols {
		lCol, _ := ri.Instance.Column(i)
		rCol, err := other.Instance.Column(i)
		if err != nil {
			panic("instance shape mismatch")
		}
		cols[i] = AddVec(lCol, rCol, modulus)
	}
	inst, _ := NewInstance(cols)

	witComs := make([]vectorcommit.Commitment, len(ri.WitnessCommitments))
	for i := range witComs {
		witComs[i] = ri.WitnessCommitments[i].Add(other.WitnessCommitments[i])
	}

	scale := big.NewInt(0).Add(ri.ScalingFactor, other.ScalingFactor)
	scale.Mod(scale, modulus)

	return RelaxedInstance{
		Instance:           inst,
		ScalingFactor:      scale,
		SlackCommitment:    ri.SlackCommitment.Add(other.SlackCommitment),
		WitnessCommitments: witComs,
	}
}

// Equal reports whether the two relaxed instances are identical.
func (ri RelaxedInstance) Equal(other RelaxedInstance) bool {
	if !ri.Instance.Matrix.Equal(other.Instance.Matrix) {
		return false
	}
	if ri.ScalingFactor.Cmp(other.ScalingFactor) != 0 {
		return false
	}
	if !ri.SlackCommitment.Equal(other.SlackCommitment) {
		return false
	}
	if len(ri.WitnessCommitments) != len(other.WitnessCommitments) {
		return false
	}
	for i := range ri.WitnessCommitments {
		if !ri.WitnessCommitments[i].Equal(other.WitnessCommitments[i]) {
			return false
		}
	}
	return true
}

// AppendToTranscript absorbs the scaling factor, the instance matrix,
// the slack commitment and every witness commitment, in that order.
func (ri RelaxedInstance) AppendToTranscript(tr *transcript.Transcript) {
	tr.WriteBigInt(ri.ScalingFactor)
	ri.Instance.AppendToTranscript(tr)
	tr.WriteBytes(ri.SlackCommitment.Bytes())
	tr.WriteUint64(uint64(len(ri.WitnessCommitments)))
	for i := range ri.WitnessCommitments {
		tr.WriteBytes(ri.WitnessCommitments[i].Bytes())
	}
}

// SlackVectorCopy returns a copy of the slack vector.
func (rw RelaxedWitness) SlackVectorCopy() []*big.Int {
	return CopyVec(rw.SlackVector)
}

// HidingRandomnesses returns a copy of the witness-column blindings.
func (rw RelaxedWitness) HidingRandomnesses() []*big.Int {
	return CopyVec(rw.CommitmentHidings)
}

// ColumnWithRand returns the i-th witness column together with its
// commitment blinding. The two are returned together because
// re-randomizing one without the other breaks commitment openings.
// Fails with ErrIndexOutOfBounds for invalid i.
func (rw RelaxedWitness) ColumnWithRand(i int) ([]*big.Int, *big.Int, error) {
	if i < 0 || i >= len(rw.CommitmentHidings) {
		return nil, nil, ErrIndexOutOfBounds
	}
	col, err := rw.Witness.Column(i)
	if err != nil {
		return nil, nil, err
	}
	return col, big.NewInt(0).Set(rw.CommitmentHidings[i]), nil
}

// Equal reports whether the two relaxed witnesses are identical.
func (rw RelaxedWitness) Equal(other RelaxedWitness) bool {
	if !rw.Witness.Matrix.Equal(other.Witness.Matrix) {
		return false
	}
	if !VecEqual(rw.SlackVector, other.SlackVector) {
		return false
	}
	if !VecEqual(rw.CommitmentHidings, other.CommitmentHidings) {
		return false
	}
	return rw.SlackHiding.Cmp(other.SlackHiding) == 0
}
