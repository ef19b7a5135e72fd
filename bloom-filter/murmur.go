package bloomfilter

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Murmur3Source is a HashSource built on 32-bit MurmurHash3. Filters using
// it are not interchangeable with FNV filters.
type Murmur3Source struct {
	Seed uint32
}

func (s Murmur3Source) Hash(v string) int32 {
	return int32(murmur3.Sum32WithSeed([]byte(v), s.Seed))
}

func (s Murmur3Source) Rehash(a int32) int32 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(a))
	return int32(murmur3.Sum32WithSeed(buf[:], s.Seed+1))
}
