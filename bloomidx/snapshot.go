package main

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	bloomfilter "fnvbloom/bloom-filter"
)

const (
	hashFNV     = "fnv"
	hashMurmur3 = "murmur3"
)

var errByteOrder = errors.New("snapshot byte order differs from this host")

// Snapshot is the on-disk form of a filter. Filter holds the raw bucket
// bytes, which are only meaningful together with the parameters stored
// alongside them.
type Snapshot struct {
	NumBits   int       `json:"num_bits"`
	NumHashes int       `json:"num_hashes"`
	Hash      string    `json:"hash"`
	Seed      uint32    `json:"seed,omitempty"`
	ByteOrder string    `json:"byte_order"`
	KeyCount  int       `json:"key_count"`
	CreatedAt time.Time `json:"created_at"`
	Filter    []byte    `json:"filter"`
}

func hashSource(name string, seed uint32) (bloomfilter.HashSource, error) {
	switch name {
	case hashFNV, "":
		return nil, nil
	case hashMurmur3:
		return bloomfilter.Murmur3Source{Seed: seed}, nil
	default:
		return nil, fmt.Errorf("unknown hash %q", name)
	}
}

func filterOptions(name string, seed uint32) ([]bloomfilter.Option, error) {
	src, err := hashSource(name, seed)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}
	return []bloomfilter.Option{bloomfilter.WithHashSource(src)}, nil
}

func nativeByteOrder() string {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return "little"
	}
	return "big"
}

func newSnapshot(f *bloomfilter.Filter, hash string, seed uint32, keys int) *Snapshot {
	if hash == "" {
		hash = hashFNV
	}
	return &Snapshot{
		NumBits:   f.NumBits(),
		NumHashes: f.NumHashes(),
		Hash:      hash,
		Seed:      seed,
		ByteOrder: nativeByteOrder(),
		KeyCount:  keys,
		CreatedAt: time.Now().UTC(),
		Filter:    f.Bytes(),
	}
}

// Restore rebuilds the filter recorded in s.
func (s *Snapshot) Restore() (*bloomfilter.Filter, error) {
	if s.ByteOrder != nativeByteOrder() {
		return nil, fmt.Errorf("%w: %s", errByteOrder, s.ByteOrder)
	}
	opts, err := filterOptions(s.Hash, s.Seed)
	if err != nil {
		return nil, err
	}
	return bloomfilter.FromBytes(s.NumBits, s.NumHashes, s.Filter, opts...)
}

func (s *Snapshot) SaveToFile(filename string) error {
	jsonData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return os.WriteFile(filename, jsonData, 0644)
}

func LoadSnapshotFromFile(filename string) (*Snapshot, error) {
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &s, nil
}
