// Package bloom implements two probabilistic set-membership filters: a
// classical bit-array Bloom filter driven by double hashing, and a blocked
// variant that confines every probe for a key to a single 64-bit word for
// cache locality. Both admit false positives but never false negatives.
//
// Filters are fixed-shape after construction and carry no internal
// synchronization; callers needing concurrent access must serialize
// externally.
package bloom

import "errors"

var (
	// ErrInvalidSize is returned when a requested filter size is zero or
	// would overflow the backing-storage arithmetic.
	ErrInvalidSize = errors.New("bloom: filter size must be at least 1 bit")

	// ErrInvalidHashCount is returned when the requested number of hash
	// probes is zero.
	ErrInvalidHashCount = errors.New("bloom: hash count must be at least 1")
)

// Filter is the common surface of all filter variants, sized so one generic
// benchmark loop can drive any of them interchangeably.
type Filter interface {
	// Insert adds key to the set. Inserting into a released or zero-valued
	// filter is a no-op.
	Insert(key []byte)

	// Contains reports whether key may be in the set. A true result may be
	// a false positive; a false result is definitive. Querying a released
	// or zero-valued filter returns false.
	Contains(key []byte) bool

	// SizeBits is the effective filter capacity in bits. For the blocked
	// variant this reflects power-of-two rounding and may exceed the size
	// requested at construction.
	SizeBits() uint64

	// SizeBytes is the backing storage size in bytes.
	SizeBytes() uint64

	// NumHashes is the number of bit positions probed per operation.
	NumHashes() uint32

	// Release frees the backing storage and leaves the filter inert.
	// Safe to call more than once.
	Release()
}
