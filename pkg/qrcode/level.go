package qrcode

import (
	"fmt"
	"strings"
)

// Level is the error correction level of a symbol. Higher levels recover more
// damaged modules at the cost of data capacity.
type Level uint8

const (
	Low      Level = iota // ~7% of codewords recoverable
	Medium                // ~15%
	Quartile              // ~25%
	High                  // ~30%
)

func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

func (l Level) valid() bool {
	return l <= High
}

// formatBits returns the two-bit indicator used in the format information.
// The indicator order differs from the ordinal order of the levels.
func (l Level) formatBits() int {
	switch l {
	case Low:
		return 1
	case Medium:
		return 0
	case Quartile:
		return 3
	default:
		return 2
	}
}

// ParseLevel accepts the single-letter form ("H") or the full name ("high"),
// case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
