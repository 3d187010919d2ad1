package qrcode

import "errors"

// Error variables for QR code encoding
var (
	// ErrInvalidPayload is returned when the payload is empty.
	ErrInvalidPayload = errors.New("payload cannot be empty")
	// ErrCapacityExceeded is returned when the payload does not fit in the largest symbol.
	ErrCapacityExceeded = errors.New("payload exceeds symbol capacity")
	// ErrEncodingFault is returned when the symbol could not be built for any other reason.
	ErrEncodingFault = errors.New("failed to encode QR code")

	ErrInvalidLevel  = errors.New("invalid error correction level")
	ErrInvalidMatrix = errors.New("invalid symbol matrix")
	ErrUnknownEngine = errors.New("unknown encoding engine")
)
