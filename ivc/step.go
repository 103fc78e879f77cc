// Package ivc implements incrementally verifiable computation from the
// folding scheme: two symmetric folding instantiations over a cycle of
// curves, advanced one fold per step, so that a single constant-size
// running pair per curve subsumes all prior steps.
package ivc

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/plonk"
)

// StepCircuit describes one step of the computation over one field.
// Circuit compilation is a caller concern: a StepCircuit synthesizes its
// own trace matrices.
type StepCircuit interface {
	// Circuit returns the PLONK circuit every step trace must satisfy.
	Circuit() plonk.Circuit
	// PublicInputs is the number of public-input rows of a step trace.
	PublicInputs() int
	// Synthesize executes one step from state, returning the next
	// state and the instance-witness trace of the transition.
	Synthesize(state, stepWitness []*big.Int) ([]*big.Int, plonk.Instance, plonk.Witness, error)
	// OriginTrace returns a satisfying trace asserting the given state
	// without executing a step. It seeds the base-case running pair.
	OriginTrace(state []*big.Int) (plonk.Instance, plonk.Witness, error)
	// StateToPublicInputs returns the public-input rows a trace ending
	// in the given state must expose.
	StateToPublicInputs(state []*big.Int) ([]*big.Int, error)
}

// EchoStepCircuit is a step circuit whose state passes through
// unchanged and is exposed as public input. It stands in for the
// cross-curve verification circuit on the helper curve: its public
// inputs bind the digest of the paired curve's running instance, while
// in-circuit verification of the fold itself belongs to a circuit
// front-end, which is outside this core.
type EchoStepCircuit struct {
	circuit      plonk.Circuit
	publicInputs int
	modulus      *big.Int
}

// NewEchoStepCircuit creates a new EchoStepCircuit with the given
// number of gates and public inputs over the given prime field.
func NewEchoStepCircuit(gates, publicInputs int, modulus *big.Int) (*EchoStepCircuit, error) {
	if publicInputs > gates {
		return nil, plonk.ErrIndexOutOfBounds
	}

	ones := make([]*big.Int, gates)
	for i := range ones {
		ones[i] = big.NewInt(1)
	}
	selectors := [][]*big.Int{
		plonk.ZeroVec(gates), // q_L
		plonk.ZeroVec(gates), // q_R
		ones,                 // q_O
		ones,                 // q_M
		plonk.ZeroVec(gates), // q_C
	}
	circuit, err := plonk.NewCircuit(selectors, plonk.IdentityPermutation(gates))
	if err != nil {
		return nil, err
	}

	return &EchoStepCircuit{
		circuit:      circuit,
		publicInputs: publicInputs,
		modulus:      modulus,
	}, nil
}

// Circuit returns the PLONK circuit every step trace must satisfy.
func (c *EchoStepCircuit) Circuit() plonk.Circuit {
	return c.circuit
}

// PublicInputs is the number of public-input rows of a step trace.
func (c *EchoStepCircuit) PublicInputs() int {
	return c.publicInputs
}

// trace builds the satisfying trace exposing state: the left wire
// column carries the state, the right wire column is all ones, and the
// output column cancels the multiplication gate.
func (c *EchoStepCircuit) trace(state []*big.Int) (plonk.Instance, plonk.Witness, error) {
	if len(state) != c.publicInputs {
		return plonk.Instance{}, plonk.Witness{}, plonk.ErrIndexOutOfBounds
	}
	gates := c.circuit.Gates()

	a := plonk.ZeroVec(gates)
	for i, s := range state {
		a[i].Mod(s, c.modulus)
	}
	b := make([]*big.Int, gates)
	cOut := make([]*big.Int, gates)
	for i := 0; i < gates; i++ {
		b[i] = big.NewInt(1)
		cOut[i] = big.NewInt(0).Neg(a[i])
		cOut[i].Mod(cOut[i], c.modulus)
	}

	instance, err := plonk.NewInstance([][]*big.Int{plonk.CopyVec(a[:c.publicInputs])})
	if err != nil {
		return plonk.Instance{}, plonk.Witness{}, err
	}
	witness, err := plonk.NewWitness([][]*big.Int{a, b, cOut})
	if err != nil {
		return plonk.Instance{}, plonk.Witness{}, err
	}
	return instance, witness, nil
}

// Synthesize passes the state through and returns its trace.
func (c *EchoStepCircuit) Synthesize(state, stepWitness []*big.Int) ([]*big.Int, plonk.Instance, plonk.Witness, error) {
	instance, witness, err := c.trace(state)
	if err != nil {
		return nil, plonk.Instance{}, plonk.Witness{}, err
	}
	return plonk.CopyVec(state), instance, witness, nil
}

// OriginTrace returns the trace asserting state.
func (c *EchoStepCircuit) OriginTrace(state []*big.Int) (plonk.Instance, plonk.Witness, error) {
	return c.trace(state)
}

// StateToPublicInputs returns the state reduced into the field.
func (c *EchoStepCircuit) StateToPublicInputs(state []*big.Int) ([]*big.Int, error) {
	if len(state) != c.publicInputs {
		return nil, plonk.ErrIndexOutOfBounds
	}
	out := make([]*big.Int, len(state))
	for i, s := range state {
		out[i] = big.NewInt(0).Mod(s, c.modulus)
	}
	return out, nil
}
