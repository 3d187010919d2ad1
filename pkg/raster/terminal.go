package raster

import (
	"strings"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

// Terminal renders m as half-block text with margin light modules around it.
// Each output line covers two module rows. With invert set, dark modules are
// printed as spaces, which reads better on terminals with a light foreground.
func Terminal(m *qrcode.Matrix, margin int, invert bool) string {
	if m == nil {
		return ""
	}
	margin = max(margin, 0)
	total := m.Size() + 2*margin

	dark := func(x, y int) bool {
		return m.Dark(x-margin, y-margin) != invert
	}

	var b strings.Builder
	for y := 0; y < total; y += 2 {
		for x := 0; x < total; x++ {
			top := dark(x, y)
			bottom := dark(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
