package pipeline

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
	"github.com/dmitrymomot/qrgen/pkg/raster"
)

// User-facing failure messages.
const (
	MessageTooLong    = "Text is too long, unable to generate QR code."
	MessageUnexpected = "An unexpected error has occurred, sorry."
)

// ErrorKind classifies a failed generation.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindCapacityExceeded
	KindGeneric
)

func (k ErrorKind) String() string {
	switch k {
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindGeneric:
		return "generic"
	default:
		return "none"
	}
}

// Result is the outcome of the most recent pipeline operation. Exactly one of
// the image or the error fields is meaningful, selected by State.
type Result struct {
	state   State
	image   *raster.Image
	kind    ErrorKind
	message string
	cause   error
}

func emptyResult() Result {
	return Result{state: StateEmpty}
}

func readyResult(img *raster.Image) Result {
	return Result{state: StateReady, image: img}
}

// errorResult classifies err into a capacity or generic failure.
func errorResult(err error) Result {
	if errors.Is(err, qrcode.ErrCapacityExceeded) {
		return Result{state: StateError, kind: KindCapacityExceeded, message: MessageTooLong, cause: err}
	}
	return Result{state: StateError, kind: KindGeneric, message: genericMessage(err), cause: err}
}

// genericMessage flattens the error text onto one line. Joined errors are
// separated by ": ".
func genericMessage(err error) string {
	if err == nil {
		return MessageUnexpected
	}
	lines := strings.FieldsFunc(err.Error(), func(r rune) bool { return r == '\n' || r == '\r' })
	parts := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	if len(parts) == 0 {
		return MessageUnexpected
	}
	return strings.Join(parts, ": ")
}

func (r Result) State() State { return r.state }

// Image returns the rendered symbol, or nil unless the state is StateReady.
func (r Result) Image() *raster.Image { return r.image }

func (r Result) Kind() ErrorKind { return r.kind }

// Message returns the user-facing error message, or "" unless the state is StateError.
func (r Result) Message() string { return r.message }

// Err returns the underlying failure, or nil unless the state is StateError.
func (r Result) Err() error { return r.cause }

func (r Result) same(other Result) bool {
	return r.state == other.state &&
		r.image == other.image &&
		r.kind == other.kind &&
		r.message == other.message
}
