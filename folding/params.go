// Package folding implements a non-interactive folding scheme for relaxed
// PLONK: setup, encoding, the folding prover and verifier, and the
// cross-term computation that makes the quadratic gate equation foldable.
// Every operation is a pure function of its explicit inputs; parameters and
// keys are write-once and safely shared across concurrent folds.
package folding

import (
	"errors"
	"io"
	"math/big"

	"github.com/geometryxyz/sangria-impl/vectorcommit"
)

// domainSeparator fixes the protocol version absorbed into every
// challenge transcript. Changing it changes the protocol.
const domainSeparator = "sangria/folding/v1"

// ErrSizeMismatch is returned when a circuit, key or supplied instance
// does not match the sizes the public parameters were generated for.
var ErrSizeMismatch = errors.New("size does not match public parameters")

// FieldSampler draws uniform field elements from a randomness source.
// Both samplers of the csprng package implement it.
type FieldSampler interface {
	io.Reader
	SampleMod(modulus *big.Int) *big.Int
}

// SetupInfo holds the size parameters of the circuits a setup supports.
type SetupInfo struct {
	NumberOfGates        int
	NumberOfPublicInputs int
}

// PublicParameters holds the size parameters, the commitment
// configuration and keys, and the transcript seed of one folding
// instantiation. Write-once at Setup, thereafter read-only.
type PublicParameters struct {
	NumberOfGates        int
	NumberOfPublicInputs int

	Config      vectorcommit.Config
	WitnessKey  vectorcommit.CommitKey
	SelectorKey vectorcommit.CommitKey

	// TranscriptSeed parameterizes the Fiat-Shamir sponge. Fixed at
	// setup; provers and verifiers with different seeds derive
	// different challenges and cannot interoperate.
	TranscriptSeed []byte
}

// SlackLength is the length of the slack and cross-term vectors, equal
// to the selector/slack commit key length. The extra entries past the
// gate rows account for the public-input rows and the slack column
// sharing the selector commitment key.
func (pp *PublicParameters) SlackLength() int {
	return pp.NumberOfGates + pp.NumberOfPublicInputs + 1
}

// Setup derives the commitment keys and transcript seed for circuits of
// the given sizes. Randomized, but deterministic given the same rng.
func Setup(info SetupInfo, cfg vectorcommit.Config, rng io.Reader) (*PublicParameters, error) {
	if info.NumberOfGates <= 0 || info.NumberOfPublicInputs < 0 || info.NumberOfPublicInputs > info.NumberOfGates {
		return nil, ErrSizeMismatch
	}

	witnessKey, err := cfg.Witness.Setup(rng, info.NumberOfGates)
	if err != nil {
		return nil, err
	}
	selectorKey, err := cfg.Selector.Setup(rng, info.NumberOfGates+info.NumberOfPublicInputs+1)
	if err != nil {
		return nil, err
	}

	seed := make([]byte, 32)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, err
	}

	return &PublicParameters{
		NumberOfGates:        info.NumberOfGates,
		NumberOfPublicInputs: info.NumberOfPublicInputs,
		Config:               cfg,
		WitnessKey:           witnessKey,
		SelectorKey:          selectorKey,
		TranscriptSeed:       seed,
	}, nil
}
