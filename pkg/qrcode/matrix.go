package qrcode

import (
	"fmt"
	"slices"
)

// Matrix is an immutable QR symbol without its quiet zone.
type Matrix struct {
	version int
	size    int
	level   Level
	mask    int
	modules []bool
}

// NewMatrix builds a Matrix from a bitmap indexed as bitmap[y][x]. The bitmap
// must be square with a side length of a valid version. The applied mask is
// unknown for externally built symbols and reported as -1.
func NewMatrix(bitmap [][]bool, level Level) (*Matrix, error) {
	size := len(bitmap)
	version := versionForSize(size)
	if version == 0 {
		return nil, fmt.Errorf("%w: side length %d", ErrInvalidMatrix, size)
	}
	if !level.valid() {
		return nil, ErrInvalidLevel
	}
	modules := make([]bool, 0, size*size)
	for y, row := range bitmap {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d modules, want %d", ErrInvalidMatrix, y, len(row), size)
		}
		modules = append(modules, row...)
	}
	return &Matrix{
		version: version,
		size:    size,
		level:   level,
		mask:    -1,
		modules: modules,
	}, nil
}

func (s *symbol) matrix(level Level, mask int) *Matrix {
	return &Matrix{
		version: s.version,
		size:    s.size,
		level:   level,
		mask:    mask,
		modules: slices.Clone(s.modules),
	}
}

// Size is the side length in modules.
func (m *Matrix) Size() int { return m.size }

// Version is the symbol version, 1 through 40.
func (m *Matrix) Version() int { return m.version }

func (m *Matrix) Level() Level { return m.level }

// Mask is the applied data mask, or -1 when unknown.
func (m *Matrix) Mask() int { return m.mask }

// Dark reports whether the module at column x, row y is dark. Coordinates
// outside the symbol are light, as the quiet zone is.
func (m *Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.modules[y*m.size+x]
}

// Bitmap returns a copy of the modules indexed as bitmap[y][x].
func (m *Matrix) Bitmap() [][]bool {
	out := make([][]bool, m.size)
	for y := range out {
		out[y] = slices.Clone(m.modules[y*m.size : (y+1)*m.size])
	}
	return out
}

// Equal reports whether both matrices have the same modules.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.size == other.size && slices.Equal(m.modules, other.modules)
}
