package bloom

import (
	"math"

	"github.com/flynnfc/bloomlab/internal/hashing"
)

// StandardFilter is a classical Bloom filter over a flat bit array. Each
// operation derives k probe positions from one 32-bit and one 64-bit hash via
// double hashing (Kirsch-Mitzenmacher), so a single pair of digests serves
// every probe.
type StandardFilter struct {
	sizeBits   uint64
	byteLength uint64
	numHashes  uint32
	seed1      uint32
	seed2      uint64
	bits       []byte
}

// NewStandard returns a zeroed filter with sizeBits addressable bits and
// numHashes probes per key. seed1 feeds the 32-bit base hash, seed2 the
// 64-bit stride hash. Fails with ErrInvalidSize or ErrInvalidHashCount on
// degenerate parameters.
func NewStandard(sizeBits uint64, numHashes uint32, seed1 uint32, seed2 uint64) (*StandardFilter, error) {
	if sizeBits < 1 || sizeBits > math.MaxUint64-7 {
		return nil, ErrInvalidSize
	}
	if numHashes == 0 {
		return nil, ErrInvalidHashCount
	}

	byteLength := (sizeBits + 7) / 8
	return &StandardFilter{
		sizeBits:   sizeBits,
		byteLength: byteLength,
		numHashes:  numHashes,
		seed1:      seed1,
		seed2:      seed2,
		bits:       make([]byte, byteLength),
	}, nil
}

// probes derives the base position and stride for key. A zero stride would
// collapse all k probes onto one bit, so it is clamped to 1.
func (f *StandardFilter) probes(key []byte) (h1 uint64, h2 uint64) {
	h1 = uint64(hashing.Murmur32(key, f.seed1))
	h2 = hashing.XXHash64(key, f.seed2) % f.sizeBits
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

// Insert adds key to the filter. No-op on a released or zero-valued filter.
func (f *StandardFilter) Insert(key []byte) {
	if f == nil || f.bits == nil {
		return
	}
	h1, h2 := f.probes(key)
	for i := uint64(0); i < uint64(f.numHashes); i++ {
		bit := (h1 + i*h2) % f.sizeBits
		f.bits[bit>>3] |= 1 << (bit & 7)
	}
}

// Contains reports whether key may have been inserted. False on a released
// or zero-valued filter.
func (f *StandardFilter) Contains(key []byte) bool {
	if f == nil || f.bits == nil {
		return false
	}
	h1, h2 := f.probes(key)
	for i := uint64(0); i < uint64(f.numHashes); i++ {
		bit := (h1 + i*h2) % f.sizeBits
		if f.bits[bit>>3]&(1<<(bit&7)) == 0 {
			return false
		}
	}
	return true
}

// SizeBits returns the addressable bit count.
func (f *StandardFilter) SizeBits() uint64 { return f.sizeBits }

// SizeBytes returns the backing buffer length.
func (f *StandardFilter) SizeBytes() uint64 { return f.byteLength }

// NumHashes returns the probe count per operation.
func (f *StandardFilter) NumHashes() uint32 { return f.numHashes }

// Release drops the bit array and resets the filter to an inert state.
// Idempotent.
func (f *StandardFilter) Release() {
	if f == nil {
		return
	}
	*f = StandardFilter{}
}
