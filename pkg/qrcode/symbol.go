package qrcode

// symbol is the mutable working grid used while a Matrix is built.
// Coordinates are (x, y) with x the column and y the row.
type symbol struct {
	version  int
	size     int
	modules  []bool
	function []bool
}

func newSymbol(version int) *symbol {
	size := sizeForVersion(version)
	return &symbol{
		version:  version,
		size:     size,
		modules:  make([]bool, size*size),
		function: make([]bool, size*size),
	}
}

func (s *symbol) dark(x, y int) bool {
	return s.modules[y*s.size+x]
}

func (s *symbol) isFunction(x, y int) bool {
	return s.function[y*s.size+x]
}

func (s *symbol) setFunction(x, y int, dark bool) {
	s.modules[y*s.size+x] = dark
	s.function[y*s.size+x] = true
}

// drawFunctionPatterns draws everything that is not data: timing patterns,
// finder patterns with separators, alignment patterns, the version blocks and
// a placeholder for the format information.
func (s *symbol) drawFunctionPatterns(level Level) {
	for i := 0; i < s.size; i++ {
		s.setFunction(6, i, i%2 == 0)
		s.setFunction(i, 6, i%2 == 0)
	}

	s.drawFinderPattern(3, 3)
	s.drawFinderPattern(s.size-4, 3)
	s.drawFinderPattern(3, s.size-4)

	pos := alignmentPositions(s.version)
	last := len(pos) - 1
	for i := range pos {
		for j := range pos {
			// The three corners are taken by finder patterns.
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			s.drawAlignmentPattern(pos[i], pos[j])
		}
	}

	s.drawFormatBits(level, 0)
	s.drawVersion()
}

// drawFinderPattern draws a 7x7 finder pattern centered at (x, y) together
// with its light separator, clipped to the symbol.
func (s *symbol) drawFinderPattern(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= s.size || yy < 0 || yy >= s.size {
				continue
			}
			dist := max(abs(dx), abs(dy))
			s.setFunction(xx, yy, dist != 2 && dist != 4)
		}
	}
}

func (s *symbol) drawAlignmentPattern(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			s.setFunction(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// formatBits returns the 15-bit format information for level and mask:
// a BCH(15,5) code XORed with 0x5412.
func formatBits(level Level, mask int) int {
	data := level.formatBits()<<3 | mask
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	return (data<<10 | rem) ^ 0x5412
}

// drawFormatBits writes both copies of the format information and the dark module.
func (s *symbol) drawFormatBits(level Level, mask int) {
	bits := formatBits(level, mask)

	for i := 0; i <= 5; i++ {
		s.setFunction(8, i, bit(bits, i))
	}
	s.setFunction(8, 7, bit(bits, 6))
	s.setFunction(8, 8, bit(bits, 7))
	s.setFunction(7, 8, bit(bits, 8))
	for i := 9; i < 15; i++ {
		s.setFunction(14-i, 8, bit(bits, i))
	}

	for i := 0; i < 8; i++ {
		s.setFunction(s.size-1-i, 8, bit(bits, i))
	}
	for i := 8; i < 15; i++ {
		s.setFunction(8, s.size-15+i, bit(bits, i))
	}
	s.setFunction(8, s.size-8, true)
}

// versionBits returns the 18-bit version information: a BCH(18,6) code.
func versionBits(version int) int {
	rem := version
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	return version<<12 | rem
}

// drawVersion writes both 6x3 version blocks. Only versions 7 and up carry them.
func (s *symbol) drawVersion() {
	if s.version < 7 {
		return
	}
	bits := versionBits(s.version)
	for i := 0; i < 18; i++ {
		b := bit(bits, i)
		a, c := s.size-11+i%3, i/3
		s.setFunction(a, c, b)
		s.setFunction(c, a, b)
	}
}

// drawCodewords places the interleaved codewords in the two-column zig-zag
// order starting from the bottom-right corner, skipping function modules and
// the vertical timing column. Remainder modules stay light.
func (s *symbol) drawCodewords(data []byte) {
	i, total := 0, len(data)*8
	for right := s.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < s.size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				y := vert
				if upward {
					y = s.size - 1 - vert
				}
				if s.isFunction(x, y) || i >= total {
					continue
				}
				s.modules[y*s.size+x] = (data[i>>3]>>(7-uint(i&7)))&1 == 1
				i++
			}
		}
	}
}

func bit(x, i int) bool {
	return (x>>uint(i))&1 != 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
