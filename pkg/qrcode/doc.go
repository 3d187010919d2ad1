// Package qrcode encodes text into QR Model 2 symbols.
//
// The package turns a payload string into an immutable Matrix of dark and light
// modules. It implements the whole symbol construction natively – version
// selection, byte-mode segment encoding, Reed–Solomon error correction, block
// interleaving, module placement and mask selection – and additionally exposes
// the same contract on top of two upstream libraries so callers can switch the
// encoding backend without touching the rest of the pipeline.
//
// # Architecture
//
// Encode is the single entry point of the native encoder:
//
//   • The payload is converted into one byte-mode segment. ASCII text is
//     emitted as-is, text representable in ISO-8859-1 is transcoded and tagged
//     with ECI 3, everything else is emitted as UTF-8 tagged with ECI 26.
//   • The smallest version (1..40) whose data capacity at the requested Level
//     fits the segment is chosen.
//   • Data codewords are split into blocks, each block gets its Reed–Solomon
//     codewords over GF(256), and the blocks are interleaved.
//   • Function patterns are drawn, the codewords are placed in the zig-zag
//     order and the mask with the lowest penalty score is applied.
//
// Engine wraps an encoder behind a name. Native uses Encode, Skip2 delegates to
// github.com/skip2/go-qrcode and RSC delegates to rsc.io/qr. Library engines
// strip the quiet zone the upstream code adds so every engine returns the bare
// symbol.
//
// # Usage
//
//	import "github.com/dmitrymomot/qrgen/pkg/qrcode"
//
//	m, err := qrcode.Encode("https://example.com", qrcode.High)
//	if err != nil {
//		// handle error
//	}
//	fmt.Println(m.Version(), m.Size()) // 3 29
//
//	engine, err := qrcode.EngineByName("skip2")
//	if err != nil {
//		// handle error
//	}
//	m, err = engine.Encode("https://example.com", qrcode.High)
//
// # Error Handling
//
// The functions return well-defined sentinel errors:
//
//   • ErrInvalidPayload   – the payload was empty.
//   • ErrCapacityExceeded – the payload does not fit in a version 40 symbol
//     at the requested level.
//   • ErrEncodingFault    – any other failure while building the symbol
//     (joined with the underlying cause, e.g. ErrInvalidLevel).
//   • ErrInvalidMatrix    – a bitmap handed to NewMatrix is not a valid symbol.
//   • ErrUnknownEngine    – EngineByName got a name it does not know.
//
// Wrap your error handling with errors.Is for robust comparisons.
package qrcode
