package sim

import (
	"hash/maphash"

	"github.com/san-kum/dancesim/internal/dance"
)

// fingerprints indexes recorded states by hash. A hit is confirmed with an
// exact comparison against the recorded state.
type fingerprints[T comparable] struct {
	seed    maphash.Seed
	buckets map[uint64][]int
}

func newFingerprints[T comparable]() *fingerprints[T] {
	return &fingerprints[T]{
		seed:    maphash.MakeSeed(),
		buckets: make(map[uint64][]int),
	}
}

func (f *fingerprints[T]) sum(x dance.State[T]) uint64 {
	var h maphash.Hash
	h.SetSeed(f.seed)
	for _, tok := range x {
		maphash.WriteComparable(&h, tok)
	}
	return h.Sum64()
}

func (f *fingerprints[T]) add(x dance.State[T], round int) {
	k := f.sum(x)
	f.buckets[k] = append(f.buckets[k], round)
}

// lookup returns the round at which x was recorded.
func (f *fingerprints[T]) lookup(x dance.State[T], history []dance.State[T]) (int, bool) {
	for _, round := range f.buckets[f.sum(x)] {
		if history[round].Equal(x) {
			return round, true
		}
	}
	return 0, false
}
