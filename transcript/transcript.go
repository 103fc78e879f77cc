// Package transcript implements the Fiat-Shamir transcript used to derive
// folding challenges. The sponge is a blake2b XOF keyed by a protocol domain
// separator and a per-setup seed; writes are absorbed in order and squeezing
// derives uniform field elements by rejection sampling.
package transcript

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// Transcript is a write-then-squeeze Fiat-Shamir sponge.
// The same sequence of writes always yields the same squeezed values,
// and any change to the write order changes them.
type Transcript struct {
	prngWriter blake2b.XOF
	prngReader blake2b.XOF

	// absorbed is set by writes and cleared by the first following squeeze,
	// so that consecutive squeezes advance instead of repeating.
	absorbed bool

	domainSeparator []byte
	seed            []byte
}

// Appender is a value with a canonical transcript encoding.
type Appender interface {
	// AppendToTranscript absorbs the value into tr in a fixed field order.
	AppendToTranscript(tr *Transcript)
}

// New creates a new Transcript.
// The seed is part of the protocol parameters: two transcripts agree only if
// they share both the domain separator and the seed.
//
// Panics when blake2b initialization fails.
func New(domainSeparator string, seed []byte) *Transcript {
	tr := &Transcript{
		domainSeparator: []byte(domainSeparator),
		seed:            append([]byte(nil), seed...),
	}
	tr.Reset()
	return tr
}

// Reset resets the Transcript to its initial state.
func (t *Transcript) Reset() {
	prng, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}

	t.prngWriter = prng
	t.writeRaw(t.domainSeparator)
	t.writeRaw(t.seed)
	t.prngReader = t.prngWriter.Clone()
}

func (t *Transcript) writeRaw(p []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(p)))
	if _, err := t.prngWriter.Write(lenBuf[:]); err != nil {
		panic(err)
	}
	if _, err := t.prngWriter.Write(p); err != nil {
		panic(err)
	}
	t.absorbed = true
}

// WriteBytes absorbs a length-prefixed byte string.
func (t *Transcript) WriteBytes(p []byte) {
	t.writeRaw(p)
}

// WriteUint64 absorbs an unsigned integer.
func (t *Transcript) WriteUint64(x uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], x)
	t.writeRaw(buf[:])
}

// WriteBigInt absorbs a big.Int.
// The encoding is length-prefixed, so distinct write sequences never collide.
func (t *Transcript) WriteBigInt(x *big.Int) {
	t.writeRaw(x.Bytes())
}

// SampleMod squeezes one uniform element of [0, modulus).
// All writes made so far are finalized into the sampler state;
// further writes start a new absorption phase.
func (t *Transcript) SampleMod(modulus *big.Int) *big.Int {
	if t.absorbed {
		t.prngReader = t.prngWriter.Clone()
		t.absorbed = false
	}

	byteLen := (modulus.BitLen() + 7) / 8
	excessBits := uint(8*byteLen - modulus.BitLen())
	buf := make([]byte, byteLen)

	res := big.NewInt(0)
	for {
		if _, err := t.prngReader.Read(buf); err != nil {
			panic(err)
		}
		buf[0] &= 0xFF >> excessBits

		res.SetBytes(buf)
		if res.Cmp(modulus) < 0 {
			return res
		}
	}
}
