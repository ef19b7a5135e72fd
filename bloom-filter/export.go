package bloomfilter

import (
	"encoding/binary"
	"io"
)

// Bytes returns the bucket words in the host's native byte order. The
// result has NumBits()/8 bytes and carries no parameters; a reader needs
// numBits, numHashes and the hash source out of band.
func (f *Filter) Bytes() []byte {
	out := make([]byte, 0, len(f.buckets)*4)
	for _, w := range f.buckets {
		out = binary.NativeEndian.AppendUint32(out, w)
	}
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler. It never fails.
func (f *Filter) MarshalBinary() ([]byte, error) {
	return f.Bytes(), nil
}

// WriteTo writes the same bytes as Bytes.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// FromBytes rebuilds a filter from the output of Bytes. numBits and
// numHashes must match the exporting filter.
func FromBytes(numBits, numHashes int, data []byte, opts ...Option) (*Filter, error) {
	f, err := New(numBits, numHashes, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(f.buckets)*4 {
		return nil, ErrBadBufferSize
	}
	for i := range f.buckets {
		f.buckets[i] = binary.NativeEndian.Uint32(data[i*4:])
	}
	return f, nil
}
