// Package buf contains the byte-level helpers shared by the BILL encoder and
// decoder: unsigned varints and bounds-checked slicing.
package buf

import (
	"encoding/binary"
	"errors"
	"io"
)

// MaxVarintLen is the longest varint encoding of a uint64.
const MaxVarintLen = binary.MaxVarintLen64

// ErrVarintOverflow indicates a varint longer than MaxVarintLen bytes or one
// whose value does not fit in 64 bits.
var ErrVarintOverflow = errors.New("buf: varint overflows a 64-bit integer")

// AppendUvarint appends the little-endian base-128 encoding of v to dst.
// Every byte except the last carries the continuation bit 0x80; zero encodes
// as the single byte 0x00.
func AppendUvarint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// UvarintLen returns the number of bytes AppendUvarint emits for v.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// Uvarint decodes a varint from the start of b and returns the value and the
// number of bytes consumed. n == 0 means b was too short; n < 0 means the
// value overflowed (−n bytes were examined).
func Uvarint(b []byte) (uint64, int) {
	return binary.Uvarint(b)
}

// ReadUvarint reads one varint from r. A clean io.EOF before the first byte
// is returned as io.EOF; EOF inside the varint is io.ErrUnexpectedEOF.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < MaxVarintLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return v, err
		}
		if b < 0x80 {
			if i == MaxVarintLen-1 && b > 1 {
				return v, ErrVarintOverflow
			}
			return v | uint64(b)<<shift, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
	return v, ErrVarintOverflow
}
