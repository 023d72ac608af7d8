package simulation

import (
	bloomv3 "github.com/bits-and-blooms/bloom/v3"

	"github.com/flynnfc/bloomlab/bloom"
)

// ReferenceFilter adapts the bits-and-blooms Bloom filter to the local Filter
// interface so the benchmark can situate both in-house variants against a
// widely used production implementation.
type ReferenceFilter struct {
	inner *bloomv3.BloomFilter
}

var _ bloom.Filter = (*ReferenceFilter)(nil)

// NewReference returns a reference filter with sizeBits capacity and
// numHashes hash functions.
func NewReference(sizeBits uint, numHashes uint) *ReferenceFilter {
	return &ReferenceFilter{inner: bloomv3.New(sizeBits, numHashes)}
}

func (r *ReferenceFilter) Insert(key []byte) {
	if r == nil || r.inner == nil {
		return
	}
	r.inner.Add(key)
}

func (r *ReferenceFilter) Contains(key []byte) bool {
	if r == nil || r.inner == nil {
		return false
	}
	return r.inner.Test(key)
}

func (r *ReferenceFilter) SizeBits() uint64 {
	if r == nil || r.inner == nil {
		return 0
	}
	return uint64(r.inner.Cap())
}

func (r *ReferenceFilter) SizeBytes() uint64 { return (r.SizeBits() + 7) / 8 }

func (r *ReferenceFilter) NumHashes() uint32 {
	if r == nil || r.inner == nil {
		return 0
	}
	return uint32(r.inner.K())
}

func (r *ReferenceFilter) Release() {
	if r == nil {
		return
	}
	r.inner = nil
}
