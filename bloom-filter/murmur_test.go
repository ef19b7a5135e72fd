package bloomfilter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMurmur3Source(t *testing.T) {
	s := Murmur3Source{Seed: 42}
	require.Equal(t, s.Hash("apple"), s.Hash("apple"))
	require.Equal(t, s.Rehash(s.Hash("apple")), s.Rehash(s.Hash("apple")))
	require.NotEqual(t, s.Hash("apple"), Murmur3Source{Seed: 43}.Hash("apple"))
}

func TestMurmur3Filter(t *testing.T) {
	f, err := New(10000, 3, WithHashSource(Murmur3Source{Seed: 7}))
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		f.Add(fmt.Sprintf("member-%d", i))
	}
	for i := 0; i < 500; i++ {
		require.True(t, f.Test(fmt.Sprintf("member-%d", i)))
	}

	fp := 0
	for i := 0; i < 10000; i++ {
		if f.Test(fmt.Sprintf("absent-%d", i)) {
			fp++
		}
	}
	// Theory is ~0.27%; leave room for sampling noise.
	assert.Less(t, float64(fp)/10000, 0.02)
}

func TestHashSourcesDisagree(t *testing.T) {
	a, err := New(320, 4)
	require.NoError(t, err)
	b, err := New(320, 4, WithHashSource(Murmur3Source{}))
	require.NoError(t, err)
	require.NotEqual(t, a.Locations("apple", nil), b.Locations("apple", nil))
}
