package export

import "errors"

var (
	// Security and validation errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidPath   = errors.New("invalid path") // Prevents path traversal attacks

	// I/O operation errors - wrapped with context for debugging
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrTooManyCollisions       = errors.New("no free file name")
)
