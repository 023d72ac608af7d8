package simulation

import (
	"fmt"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
)

// Dataset is a set of synthetic keys split into a training partition, which
// is inserted into the filters, and a disjoint held-out partition used to
// measure false positives.
type Dataset struct {
	Train [][]byte
	Test  [][]byte
}

// Size returns the total number of keys across both partitions.
func (d *Dataset) Size() int {
	return len(d.Train) + len(d.Test)
}

// GenerateUUIDDataset builds n random UUID-string keys and splits them
// trainPercent/100-trainPercent. UUIDs give unique, uniformly distributed
// keys without any shared structure the hashes could exploit.
func GenerateUUIDDataset(n int, trainPercent int) *Dataset {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte(uuid.NewString())
	}
	return split(keys, trainPercent)
}

// GenerateSequentialDataset builds n deterministic prefix_i keys. Sequential
// keys stress the hash mixing: near-identical inputs must still spread across
// the filter.
func GenerateSequentialDataset(n int, trainPercent int, prefix string) *Dataset {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("%s_%d", prefix, i))
	}
	return split(keys, trainPercent)
}

func split(keys [][]byte, trainPercent int) *Dataset {
	if trainPercent < 0 {
		trainPercent = 0
	}
	if trainPercent > 100 {
		trainPercent = 100
	}
	cut := len(keys) * trainPercent / 100
	return &Dataset{Train: keys[:cut], Test: keys[cut:]}
}

// SampleKeys draws up to limit distinct keys without replacement, using a
// bitset to track consumed indices. Deterministic for a given rng seed.
func SampleKeys(keys [][]byte, limit int, rng *rand.Rand) [][]byte {
	if limit >= len(keys) {
		return keys
	}
	chosen := bitset.New(uint(len(keys)))
	sample := make([][]byte, 0, limit)
	for len(sample) < limit {
		i := uint(rng.Intn(len(keys)))
		if chosen.Test(i) {
			continue
		}
		chosen.Set(i)
		sample = append(sample, keys[i])
	}
	return sample
}
