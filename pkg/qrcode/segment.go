package qrcode

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	modeByte = 0x4
	modeECI  = 0x7

	noECI     = -1
	eciLatin1 = 3
	eciUTF8   = 26
)

// segment is a single byte-mode segment, optionally preceded by an ECI
// designator naming the character set of data.
type segment struct {
	eci  int
	data []byte
}

// newSegment picks the most compact byte representation of payload that a
// standard decoder interprets correctly.
func newSegment(payload string) segment {
	if isASCII(payload) {
		return segment{eci: noECI, data: []byte(payload)}
	}
	if latin, ok := toLatin1(payload); ok {
		return segment{eci: eciLatin1, data: latin}
	}
	return segment{eci: eciUTF8, data: []byte(payload)}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func toLatin1(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}

// bitLength is the number of bits the segment occupies in a symbol of version.
func (s segment) bitLength(version int) int {
	n := 4 + charCountBits(version) + 8*len(s.data)
	if s.eci != noECI {
		n += 4 + 8
	}
	return n
}

// fits reports whether the segment can be carried by a symbol of version at level.
func (s segment) fits(version int, level Level) bool {
	ccBits := charCountBits(version)
	if len(s.data) >= 1<<uint(ccBits) {
		return false
	}
	return s.bitLength(version) <= numDataCodewords(version, level)*8
}

// codewords returns the padded data codewords of the segment for version and level.
func (s segment) codewords(version int, level Level) []byte {
	var bb bitBuffer
	if s.eci != noECI {
		bb.appendBits(modeECI, 4)
		bb.appendBits(uint32(s.eci), 8)
	}
	bb.appendBits(modeByte, 4)
	bb.appendBits(uint32(len(s.data)), charCountBits(version))
	for _, b := range s.data {
		bb.appendBits(uint32(b), 8)
	}

	capacity := numDataCodewords(version, level) * 8
	bb.appendBits(0, min(4, capacity-bb.len()))
	bb.appendBits(0, (8-bb.len()%8)%8)
	for pad := uint32(0xEC); bb.len() < capacity; pad ^= 0xEC ^ 0x11 {
		bb.appendBits(pad, 8)
	}
	return bb.bytes()
}
