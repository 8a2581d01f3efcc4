// Package drive provides the filesystem collaborator for drive-letter
// file operations: open, close, attribute writes, and delete-by-name
// over 8.3 filenames.
package drive

import (
	"errors"

	"cpm-rm/internal/fcb"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrNoDrive  = errors.New("drive not mounted")
	ErrReadOnly = errors.New("drive is read-only")
)

// File is the transient per-file control structure handed out by Open.
// It is owned by the caller for the duration of one filename's
// processing and discarded after Close.
type File struct {
	Name  string
	Size  int64
	Attrs fcb.Attributes
}

// FS is the filesystem interface for a single drive. All names are
// normalized to 8.3 form before lookup.
type FS interface {
	// Open looks up a file and returns its control structure.
	// Returns ErrNotFound if the file does not exist.
	Open(name string) (*File, error)

	// Close releases an opened control structure.
	Close(f *File) error

	// SetAttributes persists the attribute flags for a file.
	SetAttributes(name string, attrs fcb.Attributes) error

	// Delete removes a file by name.
	Delete(name string) error

	// List returns the 8.3 names of all files on the drive.
	List() ([]string, error)

	// Exists reports whether a file is present.
	Exists(name string) bool
}
