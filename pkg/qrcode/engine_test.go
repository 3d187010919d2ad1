package qrcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

func TestEngineByName(t *testing.T) {
	t.Parallel()

	for _, name := range qrcode.Engines() {
		e, err := qrcode.EngineByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, e.Name())
	}

	e, err := qrcode.EngineByName("")
	require.NoError(t, err)
	assert.Equal(t, qrcode.EngineNative, e.Name(), "empty name selects the native engine")

	_, err = qrcode.EngineByName("zint")
	assert.ErrorIs(t, err, qrcode.ErrUnknownEngine)

	assert.Equal(t, []string{qrcode.EngineNative, qrcode.EngineRSC, qrcode.EngineSkip2}, qrcode.Engines())
}

func TestEngines(t *testing.T) {
	t.Parallel()

	for _, name := range qrcode.Engines() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			engine, err := qrcode.EngineByName(name)
			require.NoError(t, err)

			t.Run("round trip", func(t *testing.T) {
				m, err := engine.Encode("https://example.com/engines", qrcode.High)
				require.NoError(t, err)
				assert.Equal(t, m.Size(), 17+4*m.Version())
				assert.Equal(t, "https://example.com/engines", decode(t, m))
			})

			t.Run("empty payload", func(t *testing.T) {
				_, err := engine.Encode("", qrcode.High)
				assert.ErrorIs(t, err, qrcode.ErrInvalidPayload)
			})

			t.Run("oversized payload", func(t *testing.T) {
				_, err := engine.Encode(strings.Repeat("x", 5000), qrcode.High)
				assert.ErrorIs(t, err, qrcode.ErrCapacityExceeded)
			})

			t.Run("unknown level", func(t *testing.T) {
				_, err := engine.Encode("x", qrcode.Level(5))
				assert.ErrorIs(t, err, qrcode.ErrEncodingFault)
			})
		})
	}
}

func TestNewMatrix(t *testing.T) {
	t.Parallel()

	square := func(n int) [][]bool {
		b := make([][]bool, n)
		for i := range b {
			b[i] = make([]bool, n)
		}
		return b
	}

	t.Run("accepts every version size", func(t *testing.T) {
		t.Parallel()
		for v := 1; v <= 40; v++ {
			m, err := qrcode.NewMatrix(square(17+4*v), qrcode.Medium)
			require.NoError(t, err)
			assert.Equal(t, v, m.Version())
			assert.Equal(t, -1, m.Mask())
		}
	})

	t.Run("rejects invalid sizes", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, 20, 22, 181} {
			_, err := qrcode.NewMatrix(square(n), qrcode.High)
			assert.ErrorIs(t, err, qrcode.ErrInvalidMatrix, "size %d", n)
		}
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		t.Parallel()
		b := square(21)
		b[5] = b[5][:20]
		_, err := qrcode.NewMatrix(b, qrcode.High)
		assert.ErrorIs(t, err, qrcode.ErrInvalidMatrix)
	})

	t.Run("copies its input", func(t *testing.T) {
		t.Parallel()
		b := square(21)
		b[3][4] = true
		m, err := qrcode.NewMatrix(b, qrcode.High)
		require.NoError(t, err)
		b[3][4] = false
		assert.True(t, m.Dark(4, 3))

		out := m.Bitmap()
		out[3][4] = false
		assert.True(t, m.Dark(4, 3), "Bitmap returns a copy")
		assert.False(t, m.Dark(-1, 0))
		assert.False(t, m.Dark(0, 21))
	})
}
