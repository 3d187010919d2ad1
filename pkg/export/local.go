package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// maxCollisions bounds the numbered variants tried for one name.
const maxCollisions = 1000

// File describes a file written to the download directory.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	AbsolutePath string
	RelativePath string
}

// LocalStorage writes downloads into a single directory.
// All operations are confined to baseDir to prevent path traversal attacks.
type LocalStorage struct {
	baseDir string // Absolute path - all files stored within this directory
}

// NewLocalStorage creates a download directory storage.
// baseDir is resolved to an absolute path and created if it doesn't exist.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return &LocalStorage{baseDir: absBaseDir}, nil
}

// Dir returns the absolute download directory.
func (s *LocalStorage) Dir() string { return s.baseDir }

// Download stores data under name. It satisfies the pipeline downloader.
func (s *LocalStorage) Download(ctx context.Context, name string, data []byte) error {
	_, err := s.Save(ctx, name, data)
	return err
}

// Save writes data under the sanitized name, picking the first free
// numbered variant when the name is taken. Partial files are removed on
// write errors.
func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	filename := SanitizeFilename(name)

	for n := 0; n < maxCollisions; n++ {
		candidate := numbered(filename, n)
		absPath, err := s.resolvePath(candidate)
		if err != nil {
			return nil, err
		}

		// O_EXCL: an existing download is never overwritten.
		dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
		}

		written, err := dst.Write(data)
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(absPath)
			return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
		}

		relPath, err := filepath.Rel(s.baseDir, absPath)
		if err != nil {
			relPath = candidate
		}

		return &File{
			Filename:     candidate,
			Size:         int64(written),
			MIMEType:     http.DetectContentType(data),
			Extension:    strings.ToLower(filepath.Ext(candidate)),
			AbsolutePath: absPath,
			RelativePath: relPath,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrTooManyCollisions, filename)
}

// numbered returns name for n == 0 and "stem (n).ext" otherwise.
func numbered(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// resolvePath validates and resolves a path within the base directory.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	// Path must stay within baseDir (prevents ../ attacks)
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}

// SanitizeFilename reduces name to a bare file name: directory components
// and NUL bytes are removed, and names that would refer to a directory
// become "unnamed".
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
