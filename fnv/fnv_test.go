package fnv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashGolden(t *testing.T) {
	cases := []struct {
		in     string
		hash   int32
		rehash int32
	}{
		{"", -2128831035, 514010310},
		{"a", 84696448, -1714018909},
		{"apple", 81354409, -1613981243},
		{"banana", -933822654, -1249336020},
		{"hello", -367297971, 1864918041},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			a := Hash(c.in)
			require.Equal(t, c.hash, a)
			require.Equal(t, c.rehash, Rehash(a))
		})
	}
}

func TestHashEmptyIsOffsetBasis(t *testing.T) {
	basis := OffsetBasis
	require.Equal(t, int32(basis), Hash(""))
	require.Equal(t, int32(-2128831035), Hash(""))
}

func TestHashIsByteLevel(t *testing.T) {
	// "é" is two UTF-8 bytes; hashing must see both.
	s := "é"
	acc := OffsetBasis
	acc = acc*Prime + 0xc3
	acc = acc*Prime + 0xa9
	require.Equal(t, int32(acc), Hash(s))
}

func TestHashDeterministic(t *testing.T) {
	keys := []string{"", "x", "the quick brown fox", "\x00\xff\x7f"}
	for _, k := range keys {
		a1, a2 := Hash(k), Hash(k)
		require.Equal(t, a1, a2)
		require.Equal(t, Rehash(a1), Rehash(a2))
	}
}

func TestSourceMatchesFuncs(t *testing.T) {
	var s Source
	require.Equal(t, Hash("apple"), s.Hash("apple"))
	require.Equal(t, Rehash(-1), s.Rehash(-1))
}

func BenchmarkHash(b *testing.B) {
	key := "0123456789abcdef0123456789abcdef"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Rehash(Hash(key))
	}
}
