// Package csprng implements the randomness sources injected into setup,
// encoding and proving. The core protocol never acquires randomness on
// its own; callers pass one of these samplers (or any io.Reader) in.
package csprng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
	"math/big"
)

// StreamSampler samples field elements from a uniform distribution.
// This uses AES-256 in CTR mode as an underlying prng.
type StreamSampler struct {
	prng cipher.Stream
}

// NewStreamSampler creates a new StreamSampler.
//
// Panics when read from crypto/rand or AES initialization fails.
func NewStreamSampler() *StreamSampler {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}

	iv := make([]byte, block.BlockSize())
	if _, err := rand.Read(iv); err != nil {
		panic(err)
	}

	return &StreamSampler{
		prng: cipher.NewCTR(block, iv),
	}
}

// Read implements the [io.Reader] interface.
func (s *StreamSampler) Read(p []byte) (n int, err error) {
	s.prng.XORKeyStream(p, p)
	return len(p), nil
}

// SampleMod uniformly samples a field element in [0, modulus).
func (s *StreamSampler) SampleMod(modulus *big.Int) *big.Int {
	return sampleMod(s, modulus)
}

// sampleMod draws a uniform element of [0, modulus) from rng by
// rejection sampling.
func sampleMod(rng io.Reader, modulus *big.Int) *big.Int {
	byteLen := (modulus.BitLen() + 7) / 8
	excessBits := uint(8*byteLen - modulus.BitLen())
	buf := make([]byte, byteLen)

	res := big.NewInt(0)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			panic(err)
		}
		buf[0] &= 0xFF >> excessBits

		res.SetBytes(buf)
		if res.Cmp(modulus) < 0 {
			return res
		}
	}
}
