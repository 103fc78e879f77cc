package csprng

import (
	"math/big"

	"github.com/tuneinsight/lattigo/v6/utils/sampling"
)

// KeyedSampler samples field elements deterministically from a key.
// Two KeyedSamplers with the same key produce the same stream, which
// makes setup and key generation reproducible in tests and across
// machines sharing a CRS seed.
type KeyedSampler struct {
	prng *sampling.KeyedPRNG
}

// NewKeyedSampler creates a new KeyedSampler with the given key.
//
// Panics when the underlying prng initialization fails.
func NewKeyedSampler(key []byte) *KeyedSampler {
	prng, err := sampling.NewKeyedPRNG(key)
	if err != nil {
		panic(err)
	}
	return &KeyedSampler{prng: prng}
}

// Read implements the [io.Reader] interface.
func (s *KeyedSampler) Read(p []byte) (n int, err error) {
	return s.prng.Read(p)
}

// SampleMod uniformly samples a field element in [0, modulus).
func (s *KeyedSampler) SampleMod(modulus *big.Int) *big.Int {
	return sampleMod(s, modulus)
}
