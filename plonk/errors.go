// Package plonk implements the relation model of the folding scheme:
// PLONK circuits, instance and witness matrices, and their relaxed
// counterparts with the homomorphic algebra folding relies on.
package plonk

import "errors"

// ErrIndexOutOfBounds is returned by every accessor when the requested
// index is not a valid column, row or selector position.
var ErrIndexOutOfBounds = errors.New("index is out of bounds")
