package raster

import "errors"

var (
	ErrNilMatrix     = errors.New("matrix is nil")
	ErrInvalidScale  = errors.New("scale must be at least 1 pixel per module")
	ErrInvalidMargin = errors.New("margin cannot be negative")
	ErrInvalidColor  = errors.New("invalid color")
	ErrEncodePNG     = errors.New("failed to encode PNG")
)
