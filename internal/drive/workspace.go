package drive

import (
	"fmt"

	"cpm-rm/internal/fcb"
)

// Workspace maps drive letters A-P to mounted filesystems and resolves
// drive-qualified names against them.
type Workspace struct {
	drives       map[byte]FS
	defaultDrive byte
}

// NewWorkspace creates an empty workspace with the given default drive.
func NewWorkspace(defaultDrive byte) (*Workspace, error) {
	if defaultDrive < 'A' || defaultDrive > 'P' {
		return nil, fmt.Errorf("%w: %c", fcb.ErrBadDrive, defaultDrive)
	}
	return &Workspace{
		drives:       make(map[byte]FS),
		defaultDrive: defaultDrive,
	}, nil
}

// Mount attaches a filesystem to a drive letter, replacing any
// previous mount.
func (w *Workspace) Mount(letter byte, fs FS) error {
	if letter < 'A' || letter > 'P' {
		return fmt.Errorf("%w: %c", fcb.ErrBadDrive, letter)
	}
	w.drives[letter] = fs
	return nil
}

// Resolve splits an optionally drive-qualified argument and returns
// the mounted filesystem, the resolved drive letter, and the
// normalized 8.3 name.
func (w *Workspace) Resolve(arg string) (FS, byte, string, error) {
	letter, name, err := fcb.SplitDrive(arg)
	if err != nil {
		return nil, 0, "", err
	}
	if letter == 0 {
		letter = w.defaultDrive
	}
	fs, ok := w.drives[letter]
	if !ok {
		return nil, 0, "", fmt.Errorf("%w: %c:", ErrNoDrive, letter)
	}
	return fs, letter, name, nil
}

// DefaultDrive returns the workspace's default drive letter.
func (w *Workspace) DefaultDrive() byte {
	return w.defaultDrive
}
