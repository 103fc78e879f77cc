package plonk

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/geometryxyz/sangria-impl/transcript"
)

// Selector column indices of a PLONK circuit.
const (
	SelectorL = 0
	SelectorR = 1
	SelectorO = 2
	SelectorM = 3
	SelectorC = 4

	// NumSelectors is the number of selector columns.
	NumSelectors = 5
)

// Witness column indices of the gate equation.
const (
	WireA = 0
	WireB = 1
	WireC = 2

	// NumWireColumns is the number of wire columns the gate equation reads.
	NumWireColumns = 3
)

// Circuit holds the defining elements of a PLONK circuit: the five
// selector columns q_L, q_R, q_O, q_M, q_C and the copy-constraint
// permutation over all wire slots. A Circuit is immutable once
// constructed and is shared read-only by prover and verifier.
//
// The permutation indexes wire slots columnwise: slot col*gates + row.
type Circuit struct {
	selectors   [][]*big.Int
	permutation []int
	gates       int
}

// NewCircuit creates a new Circuit.
// Fails with ErrIndexOutOfBounds if selectors does not hold exactly
// NumSelectors columns of equal length, or if permutation is not a
// bijection over the NumWireColumns*gates wire slots.
func NewCircuit(selectors [][]*big.Int, permutation []int) (Circuit, error) {
	if len(selectors) != NumSelectors {
		return Circuit{}, ErrIndexOutOfBounds
	}

	gates := len(selectors[0])
	copied := make([][]*big.Int, NumSelectors)
	for i, col := range selectors {
		if len(col) != gates {
			return Circuit{}, ErrIndexOutOfBounds
		}
		copied[i] = CopyVec(col)
	}

	slots := NumWireColumns * gates
	if len(permutation) != slots {
		return Circuit{}, ErrIndexOutOfBounds
	}
	seen := bitset.New(uint(slots))
	for _, s := range permutation {
		if s < 0 || s >= slots {
			return Circuit{}, ErrIndexOutOfBounds
		}
		seen.Set(uint(s))
	}
	if seen.Count() != uint(slots) {
		return Circuit{}, ErrIndexOutOfBounds
	}

	return Circuit{
		selectors:   copied,
		permutation: append([]int(nil), permutation...),
		gates:       gates,
	}, nil
}

// IdentityPermutation creates the identity permutation over the wire
// slots of a circuit with the given number of gates.
func IdentityPermutation(gates int) []int {
	perm := make([]int, NumWireColumns*gates)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// Gates returns the number of gates.
func (c Circuit) Gates() int {
	return c.gates
}

// Selector returns a copy of the i-th selector column.
// Fails with ErrIndexOutOfBounds when i >= NumSelectors.
func (c Circuit) Selector(i int) ([]*big.Int, error) {
	if i < 0 || i >= len(c.selectors) {
		return nil, ErrIndexOutOfBounds
	}
	return CopyVec(c.selectors[i]), nil
}

// Permutation returns a copy of the copy-constraint permutation.
func (c Circuit) Permutation() []int {
	return append([]int(nil), c.permutation...)
}

// CheckPermutation reports whether the witness respects the circuit's
// copy constraints: the value of every wire slot equals the value of the
// slot it is mapped to.
func (c Circuit) CheckPermutation(w Witness) (bool, error) {
	if w.Columns() < NumWireColumns || w.Rows() != c.gates {
		return false, ErrIndexOutOfBounds
	}

	value := func(slot int) (*big.Int, error) {
		return w.Entry(slot/c.gates, slot%c.gates)
	}
	for slot, mapped := range c.permutation {
		lhs, err := value(slot)
		if err != nil {
			return false, err
		}
		rhs, err := value(mapped)
		if err != nil {
			return false, err
		}
		if lhs.Cmp(rhs) != 0 {
			return false, nil
		}
	}
	return true, nil
}

// AppendToTranscript absorbs the circuit dimensions, every selector
// column in index order and the permutation.
func (c Circuit) AppendToTranscript(tr *transcript.Transcript) {
	tr.WriteUint64(uint64(c.gates))
	for i := range c.selectors {
		for j := range c.selectors[i] {
			tr.WriteBigInt(c.selectors[i][j])
		}
	}
	for _, s := range c.permutation {
		tr.WriteUint64(uint64(s))
	}
}
