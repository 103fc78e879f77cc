package folding

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/plonk"
)

// CrossTerm computes the cross-term vector of folding left with right:
// the coefficient of the first power of the challenge when the relaxed
// gate polynomial is expanded at left + r*right. Per gate,
//
//	t = -( q_M*(a_l*b_r + a_r*b_l)
//	     + u_l*(q_L*a_r + q_R*b_r + q_O*c_r)
//	     + u_r*(q_L*a_l + q_R*b_l + q_O*c_l)
//	     + 2*u_l*u_r*q_C )
//
// The vector has the slack length of the public parameters; entries past
// the gate rows fold linearly and are zero.
func CrossTerm(pk *ProverKey, leftInstance plonk.RelaxedInstance, leftWitness plonk.RelaxedWitness,
	rightInstance plonk.RelaxedInstance, rightWitness plonk.RelaxedWitness) ([]*big.Int, error) {
	pp := pk.PublicParameters
	q := pp.Config.Modulus
	gates := pk.Circuit.Gates()

	qL, err := pk.Circuit.Selector(plonk.SelectorL)
	if err != nil {
		return nil, err
	}
	qR, _ := pk.Circuit.Selector(plonk.SelectorR)
	qO, _ := pk.Circuit.Selector(plonk.SelectorO)
	qM, _ := pk.Circuit.Selector(plonk.SelectorM)
	qC, _ := pk.Circuit.Selector(plonk.SelectorC)

	wires := func(w plonk.Witness) (a, b, c []*big.Int, err error) {
		if a, err = w.Column(plonk.WireA); err != nil {
			return nil, nil, nil, err
		}
		if b, err = w.Column(plonk.WireB); err != nil {
			return nil, nil, nil, err
		}
		if c, err = w.Column(plonk.WireC); err != nil {
			return nil, nil, nil, err
		}
		return a, b, c, nil
	}
	aL, bL, cL, err := wires(leftWitness.Witness)
	if err != nil {
		return nil, err
	}
	aR, bR, cR, err := wires(rightWitness.Witness)
	if err != nil {
		return nil, err
	}
	if len(aL) != gates || len(aR) != gates {
		return nil, ErrSizeMismatch
	}

	uL := leftInstance.ScalingFactor
	uR := rightInstance.ScalingFactor
	uLuR2 := big.NewInt(0).Mul(uL, uR)
	uLuR2.Lsh(uLuR2, 1)
	uLuR2.Mod(uLuR2, q)

	t := plonk.ZeroVec(pp.SlackLength())
	term := big.NewInt(0)
	for i := 0; i < gates; i++ {
		x := big.NewInt(0)

		// q_M*(a_l*b_r + a_r*b_l)
		term.Mul(aL[i], bR[i])
		x.Add(x, term.Mul(term, qM[i]))
		term.Mul(aR[i], bL[i])
		x.Add(x, term.Mul(term, qM[i]))

		// u_l*(q_L*a_r + q_R*b_r + q_O*c_r)
		cross := big.NewInt(0)
		cross.Add(cross, term.Mul(qL[i], aR[i]))
		cross.Add(cross, term.Mul(qR[i], bR[i]))
		cross.Add(cross, term.Mul(qO[i], cR[i]))
		x.Add(x, cross.Mul(cross, uL))

		// u_r*(q_L*a_l + q_R*b_l + q_O*c_l)
		cross = big.NewInt(0)
		cross.Add(cross, term.Mul(qL[i], aL[i]))
		cross.Add(cross, term.Mul(qR[i], bL[i]))
		cross.Add(cross, term.Mul(qO[i], cL[i]))
		x.Add(x, cross.Mul(cross, uR))

		// 2*u_l*u_r*q_C
		x.Add(x, term.Mul(uLuR2, qC[i]))

		t[i].Neg(x)
		t[i].Mod(t[i], q)
	}
	return t, nil
}
