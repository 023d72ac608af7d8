package hashing

import "encoding/binary"

const (
	prime1 uint64 = 11400714785074694791
	prime2 uint64 = 14029467366897019727
	prime3 uint64 = 1609587929392839161
	prime4 uint64 = 9650029242287828579
	prime5 uint64 = 2870177450012600261
)

func rotl64(x uint64, r uint) uint64 {
	return (x << r) | (x >> (64 - r))
}

func round(acc, lane uint64) uint64 {
	acc += lane * prime2
	acc = rotl64(acc, 31)
	acc *= prime1
	return acc
}

func mergeRound(h, acc uint64) uint64 {
	h ^= round(0, acc)
	return h*prime1 + prime4
}

// XXHash64 computes a seeded 64-bit xxHash digest of data. Deterministic for
// a given (data, seed) pair; any byte slice, including nil, is valid input.
func XXHash64(data []byte, seed uint64) uint64 {
	n := len(data)
	var h64 uint64
	i := 0

	if n >= 32 {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1

		for ; i+32 <= n; i += 32 {
			v1 = round(v1, binary.LittleEndian.Uint64(data[i:]))
			v2 = round(v2, binary.LittleEndian.Uint64(data[i+8:]))
			v3 = round(v3, binary.LittleEndian.Uint64(data[i+16:]))
			v4 = round(v4, binary.LittleEndian.Uint64(data[i+24:]))
		}

		h64 = rotl64(v1, 1) + rotl64(v2, 7) + rotl64(v3, 12) + rotl64(v4, 18)
		h64 = mergeRound(h64, v1)
		h64 = mergeRound(h64, v2)
		h64 = mergeRound(h64, v3)
		h64 = mergeRound(h64, v4)
	} else {
		h64 = seed + prime5
	}

	h64 += uint64(n)

	for ; i+8 <= n; i += 8 {
		k1 := round(0, binary.LittleEndian.Uint64(data[i:]))
		h64 ^= k1
		h64 = rotl64(h64, 27)*prime1 + prime4
	}

	if i+4 <= n {
		k1 := uint64(binary.LittleEndian.Uint32(data[i:]))
		k1 *= prime1
		k1 = rotl64(k1, 23)
		k1 *= prime2
		h64 ^= k1
		h64 = h64*prime1 + prime4
		i += 4
	}

	for ; i < n; i++ {
		k1 := uint64(data[i])
		k1 *= prime5
		k1 = rotl64(k1, 11)
		k1 *= prime1
		h64 ^= k1
		h64 = rotl64(h64, 11)*prime1 + prime4
	}

	h64 ^= h64 >> 33
	h64 *= prime2
	h64 ^= h64 >> 29
	h64 *= prime3
	h64 ^= h64 >> 32

	return h64
}
