package bloomfilter

import (
	"math"
	"math/bits"

	"github.com/bits-and-blooms/bloom/v3"
)

// roundBits returns n rounded up to a multiple of WordBits.
func roundBits(n uint64) uint64 {
	return (n + WordBits - 1) / WordBits * WordBits
}

// probeWidth returns the byte width, 1, 2 or 4, needed to hold [0, m).
func probeWidth(m uint64) int {
	need := (bits.Len64(m-1) + 7) / 8
	switch {
	case need <= 1:
		return 1
	case need == 2:
		return 2
	default:
		return 4
	}
}

// EstimateParameters returns numBits and numHashes for n expected keys at
// false positive rate p.
func EstimateParameters(n int, p float64) (numBits, numHashes int, err error) {
	if n <= 0 {
		return 0, 0, ErrBadKeyCount
	}
	if !(p > 0 && p < 1) {
		return 0, 0, ErrBadFPRate
	}
	m, k := bloom.EstimateParameters(uint(n), p)
	if uint64(m) > MaxBits {
		return 0, 0, ErrNumBitsOverflow
	}
	return int(m), int(k), nil
}

// NewWithEstimates sizes a filter for n expected keys at false positive
// rate p.
func NewWithEstimates(n int, p float64, opts ...Option) (*Filter, error) {
	m, k, err := EstimateParameters(n, p)
	if err != nil {
		return nil, err
	}
	return New(m, k, opts...)
}

// FalsePositiveRate returns the theoretical false positive rate
// (1 - e^(-kn/m))^k after n distinct insertions, with m rounded the way New
// rounds it.
func FalsePositiveRate(numBits, numHashes, n int) float64 {
	if numBits <= 0 || numHashes <= 0 {
		return 1
	}
	m := float64(roundBits(uint64(numBits)))
	k := float64(numHashes)
	return math.Pow(1-math.Exp(-k*float64(n)/m), k)
}
