package plonk

import (
	"math/big"

	"github.com/geometryxyz/sangria-impl/transcript"
)

// Matrix is an ordered sequence of equal-length columns of field elements.
// All accessors are bounds-checked and return copies, so a Matrix is
// immutable once constructed.
type Matrix struct {
	cols [][]*big.Int
	rows int
}

// NewMatrix creates a new Matrix from the given columns.
// Fails with ErrIndexOutOfBounds if the columns do not all have the
// same length.
func NewMatrix(cols [][]*big.Int) (Matrix, error) {
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}

	copied := make([][]*big.Int, len(cols))
	for i, col := range cols {
		if len(col) != rows {
			return Matrix{}, ErrIndexOutOfBounds
		}
		copied[i] = CopyVec(col)
	}

	return Matrix{cols: copied, rows: rows}, nil
}

// Columns returns the number of columns.
func (m Matrix) Columns() int {
	return len(m.cols)
}

// Rows returns the length of each column.
func (m Matrix) Rows() int {
	return m.rows
}

// Column returns a copy of the i-th column.
// Fails with ErrIndexOutOfBounds when i >= Columns().
func (m Matrix) Column(i int) ([]*big.Int, error) {
	if i < 0 || i >= len(m.cols) {
		return nil, ErrIndexOutOfBounds
	}
	return CopyVec(m.cols[i]), nil
}

// Row returns a copy of the i-th row across all columns.
// Fails with ErrIndexOutOfBounds when i >= Rows().
func (m Matrix) Row(i int) ([]*big.Int, error) {
	if i < 0 || i >= m.rows {
		return nil, ErrIndexOutOfBounds
	}

	row := make([]*big.Int, len(m.cols))
	for j := range m.cols {
		row[j] = big.NewInt(0).Set(m.cols[j][i])
	}
	return row, nil
}

// Entry returns a copy of the entry at column i, row j.
// Fails with ErrIndexOutOfBounds when either index is invalid.
func (m Matrix) Entry(i, j int) (*big.Int, error) {
	if i < 0 || i >= len(m.cols) {
		return nil, ErrIndexOutOfBounds
	}
	if j < 0 || j >= m.rows {
		return nil, ErrIndexOutOfBounds
	}
	return big.NewInt(0).Set(m.cols[i][j]), nil
}

// Equal reports whether the two matrices are identical.
func (m Matrix) Equal(other Matrix) bool {
	if len(m.cols) != len(other.cols) || m.rows != other.rows {
		return false
	}
	for i := range m.cols {
		if !VecEqual(m.cols[i], other.cols[i]) {
			return false
		}
	}
	return true
}

// AppendToTranscript absorbs the matrix dimensions followed by every
// entry in column order.
func (m Matrix) AppendToTranscript(tr *transcript.Transcript) {
	tr.WriteUint64(uint64(len(m.cols)))
	tr.WriteUint64(uint64(m.rows))
	for i := range m.cols {
		for j := range m.cols[i] {
			tr.WriteBigInt(m.cols[i][j])
		}
	}
}

// Instance is the public-input matrix of one concrete execution trace.
type Instance struct {
	Matrix
}

// NewInstance creates a new Instance from the given columns.
func NewInstance(cols [][]*big.Int) (Instance, error) {
	m, err := NewMatrix(cols)
	if err != nil {
		return Instance{}, err
	}
	return Instance{Matrix: m}, nil
}

// Witness is the per-gate witness matrix of one concrete execution trace.
// Column indices 0, 1 and 2 are the left-input, right-input and output
// wire columns of the gate equation.
type Witness struct {
	Matrix
}

// NewWitness creates a new Witness from the given columns.
func NewWitness(cols [][]*big.Int) (Witness, error) {
	m, err := NewMatrix(cols)
	if err != nil {
		return Witness{}, err
	}
	return Witness{Matrix: m}, nil
}
