package bloom

import (
	"math"
	"math/bits"

	"github.com/flynnfc/bloomlab/internal/hashing"
)

// BlockedFilter is a cache-conscious Bloom filter variant. Each key maps to
// exactly one 64-bit word, chosen by the top bits of its hash, and all k bit
// probes land inside that word. An insert or query therefore touches a single
// machine word, at the cost of a slightly higher false-positive rate than the
// standard filter at the same bit budget.
type BlockedFilter struct {
	sizeBits  uint64
	numHashes uint32
	seed      uint64
	wordCount uint64
	wordMask  uint64
	blockBits uint
	words     []uint64
}

// NewBlocked returns a zeroed blocked filter. The requested sizeBits is
// rounded up so the word count is a power of two (minimum one word); the
// effective capacity reported by SizeBits is wordCount*64 and may exceed the
// request, sometimes by nearly 2x. Callers needing an exact bound must
// request accordingly.
func NewBlocked(sizeBits uint64, numHashes uint32, seed uint64) (*BlockedFilter, error) {
	if sizeBits < 1 || sizeBits > math.MaxUint64-63 {
		return nil, ErrInvalidSize
	}
	if numHashes == 0 {
		return nil, ErrInvalidHashCount
	}

	requestedWords := (sizeBits + 63) / 64
	wordCount := nextPow2(requestedWords)
	return &BlockedFilter{
		sizeBits:  wordCount * 64,
		numHashes: numHashes,
		seed:      seed,
		wordCount: wordCount,
		wordMask:  wordCount - 1,
		blockBits: uint(bits.TrailingZeros64(wordCount)),
		words:     make([]uint64, wordCount),
	}, nil
}

func nextPow2(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len64(v-1)
}

// blockIndex selects the word for a digest from its top blockBits bits.
func (f *BlockedFilter) blockIndex(digest uint64) uint64 {
	if f.blockBits == 0 {
		return 0
	}
	return (digest >> (64 - f.blockBits)) & f.wordMask
}

// Insert adds key to the filter with a single read-modify-write of one word.
// No-op on a released or zero-valued filter.
func (f *BlockedFilter) Insert(key []byte) {
	if f == nil || f.words == nil {
		return
	}
	digest := hashing.XXHash64(key, f.seed)
	block := f.blockIndex(digest)
	mix := hashing.NewSplitMix64(digest)
	word := f.words[block]
	for i := uint32(0); i < f.numHashes; i++ {
		word |= 1 << (mix.Next() & 63)
	}
	f.words[block] = word
}

// Contains reports whether key may have been inserted, reading exactly one
// word. False on a released or zero-valued filter.
func (f *BlockedFilter) Contains(key []byte) bool {
	if f == nil || f.words == nil {
		return false
	}
	digest := hashing.XXHash64(key, f.seed)
	word := f.words[f.blockIndex(digest)]
	mix := hashing.NewSplitMix64(digest)
	for i := uint32(0); i < f.numHashes; i++ {
		if word&(1<<(mix.Next()&63)) == 0 {
			return false
		}
	}
	return true
}

// SizeBits returns the effective capacity after power-of-two rounding.
func (f *BlockedFilter) SizeBits() uint64 { return f.sizeBits }

// SizeBytes returns the backing word array size in bytes.
func (f *BlockedFilter) SizeBytes() uint64 { return f.wordCount * 8 }

// NumHashes returns the probe count per operation.
func (f *BlockedFilter) NumHashes() uint32 { return f.numHashes }

// WordCount returns the number of 64-bit words backing the filter.
func (f *BlockedFilter) WordCount() uint64 { return f.wordCount }

// Release drops the word array and resets the filter to an inert state.
// Idempotent.
func (f *BlockedFilter) Release() {
	if f == nil {
		return
	}
	*f = BlockedFilter{}
}
