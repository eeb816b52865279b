package buf

import "math"

// AddOverflowSafe returns a+b, or ok == false when the sum does not fit in
// an int. Offsets read from untrusted blobs go through it before indexing.
func AddOverflowSafe(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

// Slice returns b[off:off+n], or ok == false when that window is not
// entirely inside b.
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether Slice(b, off, n) would succeed.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// U16LE decodes the 16-bit little-endian length of a long range field.
// A short b yields 0.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}
