// Package fnv provides the seedless 32-bit hash pair used to derive Bloom
// filter probe positions.
//
// Hash is a multiply-then-add variant of FNV-1 over the bytes of a string.
// Rehash runs the same pass over the little-endian bytes of a previous hash
// to produce the probe step. Both are fixed forever: filters exported by one
// process are tested by another, so any change here invalidates every
// persisted filter.
package fnv

const (
	OffsetBasis uint32 = 2166136261
	Prime       uint32 = 16777619
)

// Hash returns the base hash of v. Input is consumed byte by byte, so
// non-ASCII strings hash their UTF-8 encoding.
func Hash(v string) int32 {
	acc := OffsetBasis
	for i := 0; i < len(v); i++ {
		acc = acc*Prime + uint32(v[i])
	}
	return int32(acc)
}

// Rehash derives the probe step from a base hash.
func Rehash(a int32) int32 {
	u := uint32(a)
	acc := OffsetBasis
	for shift := 0; shift < 32; shift += 8 {
		acc = acc*Prime + (u >> shift & 0xff)
	}
	return int32(acc)
}

// Source exposes Hash and Rehash as a hash source value.
type Source struct{}

func (Source) Hash(v string) int32   { return Hash(v) }
func (Source) Rehash(a int32) int32 { return Rehash(a) }
