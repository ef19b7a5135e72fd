package bloomfilter

import (
	"math"
	"math/bits"

	"fnvbloom/fnv"
)

// Filter is a Bloom filter over string keys backed by 32-bit bucket words.
//
// A Filter is not synchronized. Concurrent Test calls are safe as long as
// nothing calls Add; use Locked when writers and readers overlap.
type Filter struct {
	numBits   uint64
	numHashes int
	buckets   []uint32
	hashes    HashSource
}

// New returns an empty filter. numBits is rounded up to the next multiple
// of 32; numHashes is the number of probes per key.
func New(numBits, numHashes int, opts ...Option) (*Filter, error) {
	if numBits <= 0 {
		return nil, ErrBadNumBits
	}
	if numHashes <= 0 {
		return nil, ErrBadNumHashes
	}
	m := roundBits(uint64(numBits))
	if m > MaxBits {
		return nil, ErrNumBitsOverflow
	}

	f := &Filter{
		numBits:   m,
		numHashes: numHashes,
		buckets:   make([]uint32, m/WordBits),
		hashes:    fnv.Source{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.hashes == nil {
		return nil, ErrBadHashSource
	}
	return f, nil
}

// NumBits returns the effective capacity m.
func (f *Filter) NumBits() int {
	return int(f.numBits)
}

// NumHashes returns k.
func (f *Filter) NumHashes() int {
	return f.numHashes
}

// ProbeWidth returns the minimal byte width able to hold any probe position.
func (f *Filter) ProbeWidth() int {
	return probeWidth(f.numBits)
}

// Add inserts key. Adding a key twice leaves the filter unchanged.
func (f *Filter) Add(key string) {
	m := int64(f.numBits)
	x, step := f.start(key)
	for i := 0; i < f.numHashes; i++ {
		l := position(x, m)
		f.buckets[l/WordBits] |= 1 << (l % WordBits)
		x = (x + step) % m
	}
}

// Test reports whether key may have been added. A false result is
// definitive.
func (f *Filter) Test(key string) bool {
	m := int64(f.numBits)
	x, step := f.start(key)
	for i := 0; i < f.numHashes; i++ {
		l := position(x, m)
		if f.buckets[l/WordBits]&(1<<(l%WordBits)) == 0 {
			return false
		}
		x = (x + step) % m
	}
	return true
}

// Locations appends the k probe positions of key to dst and returns the
// extended slice. Every position is in [0, NumBits()).
func (f *Filter) Locations(key string, dst []uint32) []uint32 {
	m := int64(f.numBits)
	x, step := f.start(key)
	for i := 0; i < f.numHashes; i++ {
		dst = append(dst, uint32(position(x, m)))
		x = (x + step) % m
	}
	return dst
}

// start returns the first probe accumulator and the step. The accumulator
// keeps the sign of the hash; only stored positions are normalized, which
// existing exported filters depend on.
func (f *Filter) start(key string) (x, step int64) {
	a := f.hashes.Hash(key)
	b := f.hashes.Rehash(a)
	return int64(a) % int64(f.numBits), int64(b)
}

func position(x, m int64) uint64 {
	if x < 0 {
		return uint64(x + m)
	}
	return uint64(x)
}

// Equal reports whether both filters have the same parameters and bits.
// Hash sources are not compared.
func (f *Filter) Equal(other *Filter) bool {
	if other == nil || f.numBits != other.numBits || f.numHashes != other.numHashes {
		return false
	}
	for i, w := range f.buckets {
		if other.buckets[i] != w {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (f *Filter) Count() int {
	n := 0
	for _, w := range f.buckets {
		n += bits.OnesCount32(w)
	}
	return n
}

// FillRatio returns the fraction of set bits.
func (f *Filter) FillRatio() float64 {
	return float64(f.Count()) / float64(f.numBits)
}

// ApproxSize estimates the number of distinct keys added:
//
//	n ≈ -m/k * ln(1 - X/m)
//
// where X is the number of set bits. A saturated filter reports math.MaxInt.
func (f *Filter) ApproxSize() int {
	x := float64(f.Count())
	m := float64(f.numBits)
	if x >= m {
		return math.MaxInt
	}
	n := -m / float64(f.numHashes) * math.Log(1-x/m)
	return int(math.Round(n))
}
