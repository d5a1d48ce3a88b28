package file

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// ErrInvalidUTF8 is returned when a source document is not valid UTF-8
var ErrInvalidUTF8 = errors.New("document is not valid UTF-8")

// Store reads documents and writes artifacts through an afero filesystem
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store backed by fs
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// ReadDocument returns the whole document at path as text
func (s *Store) ReadDocument(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

// WriteArtifact atomically replaces the artifact at path
func (s *Store) WriteArtifact(path string, data []byte) error {
	return WriteFileAtomic(s.fs, path, data, 0o644)
}
