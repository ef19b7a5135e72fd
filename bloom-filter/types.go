package bloomfilter

import "errors"

const (
	// WordBits is the width of one bucket word.
	WordBits = 32

	// MaxBits is the largest supported capacity. Probe positions are
	// stored as uint32.
	MaxBits uint64 = 1 << 32
)

var (
	ErrBadNumBits      = errors.New("bloomfilter: numBits must be positive")
	ErrBadNumHashes    = errors.New("bloomfilter: numHashes must be positive")
	ErrNumBitsOverflow = errors.New("bloomfilter: numBits overflows supported range")
	ErrBadBufferSize   = errors.New("bloomfilter: buffer size does not match numBits")
	ErrBadHashSource   = errors.New("bloomfilter: nil hash source")
	ErrBadFPRate       = errors.New("bloomfilter: false positive rate must be in (0, 1)")
	ErrBadKeyCount     = errors.New("bloomfilter: expected key count must be positive")
)

// HashSource maps a key to a base hash and derives the probe step from it.
// Implementations must be deterministic across processes and platforms.
type HashSource interface {
	Hash(v string) int32
	Rehash(a int32) int32
}

// Option configures a Filter at construction.
type Option func(*Filter)

// WithHashSource replaces the default FNV hash source. Filters only agree
// on Test results when built with the same source.
func WithHashSource(h HashSource) Option {
	return func(f *Filter) {
		f.hashes = h
	}
}
