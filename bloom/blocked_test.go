package bloom

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func TestNewBlockedRejectsDegenerateParams(t *testing.T) {
	if _, err := NewBlocked(0, 7, 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size 0: got err %v, want ErrInvalidSize", err)
	}
	if _, err := NewBlocked(1000, 0, 0); !errors.Is(err, ErrInvalidHashCount) {
		t.Errorf("hash count 0: got err %v, want ErrInvalidHashCount", err)
	}
}

func TestBlockedRoundsUpToPowerOfTwoWords(t *testing.T) {
	cases := []struct {
		requestBits uint64
		wantWords   uint64
		wantBits    uint64
	}{
		{1, 1, 64},
		{64, 1, 64},
		{65, 2, 128},
		{100, 2, 128},
		{129, 4, 256},
		{1000, 16, 1024},
	}
	for _, tc := range cases {
		f, err := NewBlocked(tc.requestBits, 3, 0)
		if err != nil {
			t.Fatalf("NewBlocked(%d): %v", tc.requestBits, err)
		}
		if f.WordCount() != tc.wantWords {
			t.Errorf("request %d bits: WordCount = %d, want %d", tc.requestBits, f.WordCount(), tc.wantWords)
		}
		if f.SizeBits() != tc.wantBits {
			t.Errorf("request %d bits: SizeBits = %d, want %d", tc.requestBits, f.SizeBits(), tc.wantBits)
		}
		if f.SizeBytes() != tc.wantWords*8 {
			t.Errorf("request %d bits: SizeBytes = %d, want %d", tc.requestBits, f.SizeBytes(), tc.wantWords*8)
		}
	}
}

func TestBlockedNoFalseNegatives(t *testing.T) {
	f, err := NewBlocked(1<<18, 7, 0x5eed)
	if err != nil {
		t.Fatalf("NewBlocked: %v", err)
	}

	rng := rand.New(rand.NewSource(43))
	keys := make([][]byte, 10000)
	for i := range keys {
		key := make([]byte, 8+rng.Intn(24))
		rng.Read(key)
		keys[i] = key
		f.Insert(key)
	}

	missing := 0
	for _, key := range keys {
		if !f.Contains(key) {
			missing++
		}
	}
	if missing != 0 {
		t.Errorf("%d of %d inserted keys reported absent", missing, len(keys))
	}
}

func TestBlockedSingleWordLocality(t *testing.T) {
	for i := 0; i < 1000; i++ {
		f, err := NewBlocked(1<<16, 8, 0)
		if err != nil {
			t.Fatalf("NewBlocked: %v", err)
		}
		f.Insert([]byte(fmt.Sprintf("locality-%d", i)))

		touched := 0
		for _, w := range f.words {
			if w != 0 {
				touched++
			}
		}
		if touched != 1 {
			t.Fatalf("key %d touched %d words, want exactly 1", i, touched)
		}
	}
}

func TestBlockedDeterministicContent(t *testing.T) {
	mk := func() *BlockedFilter {
		f, err := NewBlocked(1<<12, 5, 99)
		if err != nil {
			t.Fatalf("NewBlocked: %v", err)
		}
		for i := 0; i < 500; i++ {
			f.Insert([]byte(fmt.Sprintf("item-%d", i)))
		}
		return f
	}

	a, b := mk(), mk()
	for i := range a.words {
		if a.words[i] != b.words[i] {
			t.Fatalf("word arrays diverge at word %d: %#x vs %#x", i, a.words[i], b.words[i])
		}
	}
}

func TestBlockedMonotonicWords(t *testing.T) {
	f, err := NewBlocked(2048, 3, 0)
	if err != nil {
		t.Fatalf("NewBlocked: %v", err)
	}
	f.Insert([]byte("first"))
	snapshot := append([]uint64(nil), f.words...)
	wordCount := f.WordCount()

	for i := 0; i < 200; i++ {
		f.Insert([]byte(fmt.Sprintf("more-%d", i)))
	}

	if f.WordCount() != wordCount {
		t.Errorf("word count changed from %d to %d", wordCount, f.WordCount())
	}
	for i, old := range snapshot {
		if f.words[i]&old != old {
			t.Fatalf("word %d lost set bits: had %#x, now %#x", i, old, f.words[i])
		}
	}
}

func TestBlockedReleasedAndZeroValueAreInert(t *testing.T) {
	var zero BlockedFilter
	zero.Insert([]byte("x"))
	if zero.Contains([]byte("x")) {
		t.Error("zero-valued filter claims membership")
	}
	zero.Release()
	zero.Release()

	f, err := NewBlocked(128, 2, 0)
	if err != nil {
		t.Fatalf("NewBlocked: %v", err)
	}
	f.Insert([]byte("x"))
	f.Release()
	if f.Contains([]byte("x")) {
		t.Error("released filter claims membership")
	}
	f.Insert([]byte("y")) // must not panic
	f.Release()

	var nilFilter *BlockedFilter
	nilFilter.Insert([]byte("x"))
	if nilFilter.Contains([]byte("x")) {
		t.Error("nil filter claims membership")
	}
	nilFilter.Release()
}

func TestBlockedSingleWordFilter(t *testing.T) {
	// word_count == 1 means block_bits == 0 and every key lands in word 0.
	f, err := NewBlocked(64, 4, 0)
	if err != nil {
		t.Fatalf("NewBlocked: %v", err)
	}
	for i := 0; i < 16; i++ {
		f.Insert([]byte(fmt.Sprintf("one-word-%d", i)))
	}
	for i := 0; i < 16; i++ {
		if !f.Contains([]byte(fmt.Sprintf("one-word-%d", i))) {
			t.Fatalf("key %d absent from single-word filter", i)
		}
	}
}

func BenchmarkBlockedInsert(b *testing.B) {
	f, _ := NewBlocked(1<<23, 7, 0)
	key := []byte("benchmark_key")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Insert(key)
	}
}

func BenchmarkBlockedContains(b *testing.B) {
	f, _ := NewBlocked(1<<23, 7, 0)
	key := []byte("benchmark_key")
	f.Insert(key)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Contains(key)
	}
}
