package hashing

import "encoding/binary"

const (
	murmurC1 uint32 = 0xcc9e2d51
	murmurC2 uint32 = 0x1b873593
)

// Murmur32 computes a seeded 32-bit Murmur3 hash of data. It is deterministic
// for a given (data, seed) pair; any byte slice, including nil, is valid input.
func Murmur32(data []byte, seed uint32) uint32 {
	h1 := seed
	n := len(data)

	i := 0
	for ; i+4 <= n; i += 4 {
		k1 := binary.LittleEndian.Uint32(data[i:])
		k1 *= murmurC1
		k1 = (k1 << 15) | (k1 >> 17)
		k1 *= murmurC2

		h1 ^= k1
		h1 = (h1 << 13) | (h1 >> 19)
		h1 = h1*5 + 0xe6546b64
	}

	var k1 uint32
	tail := data[i:]
	switch n & 3 {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= murmurC1
		k1 = (k1 << 15) | (k1 >> 17)
		k1 *= murmurC2
		h1 ^= k1
	}

	h1 ^= uint32(n)
	h1 ^= h1 >> 16
	h1 *= 0x85ebca6b
	h1 ^= h1 >> 13
	h1 *= 0xc2b2ae35
	h1 ^= h1 >> 16

	return h1
}
