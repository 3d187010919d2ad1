package qrcode

// bitBuffer is an append-only sequence of bits, most significant bit first.
type bitBuffer struct {
	bits []bool
}

func (b *bitBuffer) appendBits(val uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		b.bits = append(b.bits, (val>>uint(i))&1 == 1)
	}
}

func (b *bitBuffer) len() int {
	return len(b.bits)
}

// bytes packs the bits into bytes. A trailing partial byte is padded with zeros.
func (b *bitBuffer) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i>>3] |= 1 << (7 - uint(i&7))
		}
	}
	return out
}
