package qrcode

import "math"

const numMasks = 8

// Penalty weights of the four scoring rules.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// maskInverts reports whether mask flips the data module at (x, y).
func maskInverts(mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	default:
		return false
	}
}

// applyMask XORs mask over every data module. Applying the same mask twice
// restores the original grid.
func (s *symbol) applyMask(mask int) {
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			if !s.isFunction(x, y) && maskInverts(mask, x, y) {
				s.modules[y*s.size+x] = !s.modules[y*s.size+x]
			}
		}
	}
}

// applyBestMask tries all masks with their format bits, keeps the one with
// the lowest penalty (lowest index on ties) and returns it.
func (s *symbol) applyBestMask(level Level) int {
	best, minPenalty := 0, math.MaxInt
	for mask := 0; mask < numMasks; mask++ {
		s.applyMask(mask)
		s.drawFormatBits(level, mask)
		if p := s.penalty(); p < minPenalty {
			best, minPenalty = mask, p
		}
		s.applyMask(mask)
	}
	s.applyMask(best)
	s.drawFormatBits(level, best)
	return best
}

// penalty scores the grid: long same-colour runs, 2x2 same-colour blocks,
// finder-like 1:1:3:1:1 patterns and dark/light imbalance.
func (s *symbol) penalty() int {
	result := 0

	for y := 0; y < s.size; y++ {
		result += s.linePenalty(func(i int) bool { return s.dark(i, y) })
	}
	for x := 0; x < s.size; x++ {
		result += s.linePenalty(func(i int) bool { return s.dark(x, i) })
	}

	for y := 0; y < s.size-1; y++ {
		for x := 0; x < s.size-1; x++ {
			c := s.dark(x, y)
			if c == s.dark(x+1, y) && c == s.dark(x, y+1) && c == s.dark(x+1, y+1) {
				result += penaltyN2
			}
		}
	}

	darkCount := 0
	for _, m := range s.modules {
		if m {
			darkCount++
		}
	}
	total := s.size * s.size
	// Smallest k such that the dark ratio lies within (45-5k)% .. (55+5k)%.
	k := (abs(darkCount*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}

// linePenalty scores one row or column read through at.
func (s *symbol) linePenalty(at func(i int) bool) int {
	result := 0
	runColor := false
	runLen := 0
	var history runHistory
	for i := 0; i < s.size; i++ {
		if at(i) == runColor {
			runLen++
			if runLen == 5 {
				result += penaltyN1
			} else if runLen > 5 {
				result++
			}
			continue
		}
		history.add(runLen, s.size)
		if !runColor {
			result += history.countFinderPatterns() * penaltyN3
		}
		runColor = at(i)
		runLen = 1
	}
	return result + history.terminate(runColor, runLen, s.size)*penaltyN3
}

// runHistory keeps the last seven run lengths of a line, newest first. The
// light border around the symbol counts as part of the first and last runs.
type runHistory [7]int

func (h *runHistory) add(runLen, size int) {
	if h[0] == 0 {
		runLen += size
	}
	copy(h[1:], h[:len(h)-1])
	h[0] = runLen
}

func (h *runHistory) countFinderPatterns() int {
	n := h[1]
	core := n > 0 && h[2] == n && h[3] == n*3 && h[4] == n && h[5] == n
	count := 0
	if core && h[0] >= n*4 && h[6] >= n {
		count++
	}
	if core && h[6] >= n*4 && h[0] >= n {
		count++
	}
	return count
}

func (h *runHistory) terminate(runColor bool, runLen, size int) int {
	if runColor {
		h.add(runLen, size)
		runLen = 0
	}
	runLen += size
	h.add(runLen, size)
	return h.countFinderPatterns()
}
