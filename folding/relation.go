package folding

import (
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/geometryxyz/sangria-impl/plonk"
	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// NewTrivialPair lifts a plain instance-witness trace into the trivial
// (unrelaxed) relaxed pair: scaling factor 1, all-zero slack vector and
// zero blindings everywhere, so the pair is recomputable by anyone
// holding the trace. Witness columns are committed in parallel.
func NewTrivialPair(pp *PublicParameters, instance plonk.Instance, witness plonk.Witness,
) (plonk.RelaxedInstance, plonk.RelaxedWitness, error) {
	if witness.Rows() != pp.NumberOfGates || witness.Columns() < plonk.NumWireColumns {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, ErrSizeMismatch
	}
	if pp.NumberOfPublicInputs > 0 &&
		(instance.Columns() != 1 || instance.Rows() != pp.NumberOfPublicInputs) {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, ErrSizeMismatch
	}

	witnessCommitments := make([]vectorcommit.Commitment, witness.Columns())
	var group errgroup.Group
	for j := 0; j < witness.Columns(); j++ {
		group.Go(func() error {
			col, err := witness.Column(j)
			if err != nil {
				return err
			}
			com, err := pp.Config.Witness.Commit(pp.WitnessKey, col, big.NewInt(0))
			if err != nil {
				return err
			}
			witnessCommitments[j] = com
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, err
	}

	slack := plonk.ZeroVec(pp.SlackLength())
	slackCommitment, err := pp.Config.Selector.Commit(pp.SelectorKey, slack, big.NewInt(0))
	if err != nil {
		return plonk.RelaxedInstance{}, plonk.RelaxedWitness{}, err
	}

	relaxedInstance := plonk.RelaxedInstance{
		Instance:           instance,
		ScalingFactor:      big.NewInt(1),
		SlackCommitment:    slackCommitment,
		WitnessCommitments: witnessCommitments,
	}
	relaxedWitness := plonk.RelaxedWitness{
		Witness:           witness,
		SlackVector:       slack,
		CommitmentHidings: plonk.ZeroVec(witness.Columns()),
		SlackHiding:       big.NewInt(0),
	}
	return relaxedInstance, relaxedWitness, nil
}

// IsSatisfied reports whether the relaxed pair satisfies the relaxed
// PLONK relation for the circuit: per gate,
//
//	q_M*a*b + u*(q_L*a + q_R*b + q_O*c) + u^2*q_C + e = 0,
//
// the witness respects the copy-constraint permutation, the first
// public-input rows of the left wire column equal the instance values,
// and every instance-side commitment opens to the corresponding witness
// data. A shape mismatch between circuit, keys and pair is an error,
// not a false.
func IsSatisfied(pp *PublicParameters, circuit plonk.Circuit,
	relaxedInstance plonk.RelaxedInstance, relaxedWitness plonk.RelaxedWitness) (bool, error) {
	q := pp.Config.Modulus
	gates := circuit.Gates()
	witness := relaxedWitness.Witness

	if gates != pp.NumberOfGates || witness.Rows() != gates || witness.Columns() < plonk.NumWireColumns {
		return false, ErrSizeMismatch
	}
	if len(relaxedInstance.WitnessCommitments) != witness.Columns() ||
		len(relaxedWitness.CommitmentHidings) != witness.Columns() {
		return false, ErrSizeMismatch
	}
	if len(relaxedWitness.SlackVector) != pp.SlackLength() {
		return false, ErrSizeMismatch
	}

	// Commitment openings, one goroutine per column.
	opened := make([]bool, witness.Columns()+1)
	var group errgroup.Group
	for j := 0; j < witness.Columns(); j++ {
		group.Go(func() error {
			col, hiding, err := relaxedWitness.ColumnWithRand(j)
			if err != nil {
				return err
			}
			com, err := pp.Config.Witness.Commit(pp.WitnessKey, col, hiding)
			if err != nil {
				return err
			}
			opened[j] = com.Equal(relaxedInstance.WitnessCommitments[j])
			return nil
		})
	}
	group.Go(func() error {
		com, err := pp.Config.Selector.Commit(pp.SelectorKey, relaxedWitness.SlackVector, relaxedWitness.SlackHiding)
		if err != nil {
			return err
		}
		opened[witness.Columns()] = com.Equal(relaxedInstance.SlackCommitment)
		return nil
	})
	if err := group.Wait(); err != nil {
		return false, err
	}
	for _, ok := range opened {
		if !ok {
			return false, nil
		}
	}

	qL, err := circuit.Selector(plonk.SelectorL)
	if err != nil {
		return false, err
	}
	qR, _ := circuit.Selector(plonk.SelectorR)
	qO, _ := circuit.Selector(plonk.SelectorO)
	qM, _ := circuit.Selector(plonk.SelectorM)
	qC, _ := circuit.Selector(plonk.SelectorC)

	a, err := witness.Column(plonk.WireA)
	if err != nil {
		return false, err
	}
	b, _ := witness.Column(plonk.WireB)
	c, _ := witness.Column(plonk.WireC)

	u := relaxedInstance.ScalingFactor
	uSq := big.NewInt(0).Mul(u, u)
	uSq.Mod(uSq, q)

	term := big.NewInt(0)
	for i := 0; i < gates; i++ {
		acc := big.NewInt(0)

		term.Mul(a[i], b[i])
		acc.Add(acc, term.Mul(term, qM[i]))

		linear := big.NewInt(0)
		linear.Add(linear, term.Mul(qL[i], a[i]))
		linear.Add(linear, term.Mul(qR[i], b[i]))
		linear.Add(linear, term.Mul(qO[i], c[i]))
		acc.Add(acc, linear.Mul(linear, u))

		acc.Add(acc, term.Mul(uSq, qC[i]))
		acc.Add(acc, relaxedWitness.SlackVector[i])

		if acc.Mod(acc, q).Sign() != 0 {
			return false, nil
		}
	}

	// Public-input rows bind the left wire column to the instance.
	for i := 0; i < pp.NumberOfPublicInputs; i++ {
		pi, err := relaxedInstance.Instance.Entry(0, i)
		if err != nil {
			return false, err
		}
		if big.NewInt(0).Mod(pi, q).Cmp(big.NewInt(0).Mod(a[i], q)) != 0 {
			return false, nil
		}
	}

	return circuit.CheckPermutation(witness)
}
