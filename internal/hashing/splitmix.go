package hashing

const (
	splitmixGamma uint64 = 0x9E3779B97F4A7C15
	splitmixMul1  uint64 = 0xBF58476D1CE4E5B9
	splitmixMul2  uint64 = 0x94D049BB133111EB
)

// SplitMix64 is a tiny deterministic bit expander. Seeded from a key's hash
// digest, successive Next calls yield a reproducible pseudo-random sequence
// without rehashing the key.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 returns an expander seeded with state.
func NewSplitMix64(state uint64) SplitMix64 {
	return SplitMix64{state: state}
}

// Next advances the state and returns the next value in the sequence.
func (s *SplitMix64) Next() uint64 {
	s.state += splitmixGamma
	x := s.state
	x = (x ^ (x >> 30)) * splitmixMul1
	x = (x ^ (x >> 27)) * splitmixMul2
	x ^= x >> 31
	return x
}
