package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0b001011010001001, formatBits(High, 0))
	assert.Equal(t, 0b101010000010010, formatBits(Medium, 0))
	assert.Equal(t, 0b111011111000100, formatBits(Low, 0))
}

func TestVersionBits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0x07C94, versionBits(7))
	assert.Equal(t, 0x28C69, versionBits(40))
}

func TestReedSolomon(t *testing.T) {
	t.Parallel()
	// Version 1-M "HELLO WORLD" data codewords.
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	ecc := rsRemainder(data, rsDivisor(10))
	assert.Equal(t, []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}, ecc)
}

func TestGFMultiply(t *testing.T) {
	t.Parallel()
	assert.Equal(t, byte(0), gfMultiply(0, 0x53))
	assert.Equal(t, byte(0x53), gfMultiply(1, 0x53))
	assert.Equal(t, byte(0x1D), gfMultiply(0x80, 0x02), "overflow reduces by 0x11D")
}

func TestTables(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 208, numRawDataModules(1))
	assert.Equal(t, 29648, numRawDataModules(40))

	assert.Equal(t, 9, numDataCodewords(1, High))
	assert.Equal(t, 19, numDataCodewords(1, Low))
	assert.Equal(t, 1276, numDataCodewords(40, High))
	assert.Equal(t, 2956, numDataCodewords(40, Low))

	assert.Nil(t, alignmentPositions(1))
	assert.Equal(t, []int{6, 18}, alignmentPositions(2))
	assert.Equal(t, []int{6, 22, 38}, alignmentPositions(7))
	assert.Equal(t, []int{6, 34, 60, 86, 112, 138}, alignmentPositions(32))
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, alignmentPositions(40))
}

func TestSegment(t *testing.T) {
	t.Parallel()

	t.Run("ascii has no ECI", func(t *testing.T) {
		t.Parallel()
		seg := newSegment("hello")
		assert.Equal(t, noECI, seg.eci)
		assert.Equal(t, []byte("hello"), seg.data)
		assert.Equal(t, 4+8+40, seg.bitLength(1))
	})

	t.Run("latin-1 is transcoded", func(t *testing.T) {
		t.Parallel()
		seg := newSegment("café")
		assert.Equal(t, eciLatin1, seg.eci)
		assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, seg.data)
		assert.Equal(t, 12+4+8+32, seg.bitLength(1))
	})

	t.Run("everything else is UTF-8", func(t *testing.T) {
		t.Parallel()
		seg := newSegment("日本")
		assert.Equal(t, eciUTF8, seg.eci)
		assert.Equal(t, []byte("日本"), seg.data)
	})

	t.Run("codewords are padded", func(t *testing.T) {
		t.Parallel()
		cw := newSegment("A").codewords(1, High)
		require.Len(t, cw, 9)
		// 0100 00000001 01000001 0000 -> 0x40 0x14 0x10, then pad bytes.
		assert.Equal(t, []byte{0x40, 0x14, 0x10, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11}, cw)
	})
}

func TestInterleaveLength(t *testing.T) {
	t.Parallel()
	for _, level := range []Level{Low, Medium, Quartile, High} {
		for v := minVersion; v <= maxVersion; v++ {
			data := make([]byte, numDataCodewords(v, level))
			out := interleave(data, v, level)
			require.Len(t, out, numRawDataModules(v)/8, "version %d level %s", v, level)
		}
	}
}

func TestFunctionPatterns(t *testing.T) {
	t.Parallel()
	m, err := Encode("https://example.com", High)
	require.NoError(t, err)
	size := m.Size()

	// Finder pattern corners and their separators.
	for _, c := range [][2]int{{0, 0}, {size - 7, 0}, {0, size - 7}} {
		assert.True(t, m.Dark(c[0], c[1]))
		assert.True(t, m.Dark(c[0]+3, c[1]+3), "finder center")
		assert.False(t, m.Dark(c[0]+1, c[1]+1), "finder ring")
	}
	assert.False(t, m.Dark(7, 7), "separator")

	// Timing patterns alternate between the finders.
	for i := 8; i < size-8; i++ {
		assert.Equal(t, i%2 == 0, m.Dark(i, 6), "horizontal timing at %d", i)
		assert.Equal(t, i%2 == 0, m.Dark(6, i), "vertical timing at %d", i)
	}

	assert.True(t, m.Dark(8, size-8), "dark module")
}
