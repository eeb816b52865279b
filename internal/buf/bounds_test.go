package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	tests := []struct {
		a, b int
		want int
		ok   bool
	}{
		{10, 5, 15, true},
		{10, -15, -5, true},
		{math.MaxInt, 0, math.MaxInt, true},
		{math.MaxInt, 1, 0, false},
		{math.MinInt, -1, 0, false},
		{math.MaxInt - 2, 2, math.MaxInt, true},
	}
	for _, tt := range tests {
		got, ok := AddOverflowSafe(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%d + %d", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%d + %d", tt.a, tt.b)
	}
}

func TestSlice(t *testing.T) {
	// size prefix, inline name "alert", range byte
	blob := []byte{0x85, 0x00, 0x45, 0x00, 'a', 'l', 'e', 'r', 't', 0x05}

	name, ok := Slice(blob, 4, 5)
	require.True(t, ok)
	assert.Equal(t, "alert", string(name))

	tail, ok := Slice(blob, len(blob), 0)
	require.True(t, ok)
	assert.Empty(t, tail)

	for _, tc := range []struct{ off, n int }{
		{9, 2},
		{-1, 1},
		{1, -1},
		{len(blob) + 1, 0},
		{1, math.MaxInt},
	} {
		_, ok := Slice(blob, tc.off, tc.n)
		assert.False(t, ok, "Slice(blob, %d, %d)", tc.off, tc.n)
		assert.False(t, Has(blob, tc.off, tc.n), "Has(blob, %d, %d)", tc.off, tc.n)
	}
	assert.True(t, Has(blob, 0, len(blob)))
}
