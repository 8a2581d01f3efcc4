package safety

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrProtectedPath = errors.New("protected path")
	ErrOutsideRoot   = errors.New("outside drive root")
	ErrTraversal     = errors.New("path traversal detected")
	ErrSymlinkEscape = errors.New("symlink escape detected")
)

// Validator enforces the safety contract for every host-path mutation
// performed on behalf of a drive. Each drive gets its own validator
// rooted at the drive's host directory.
type Validator struct {
	Root           string
	ProtectedPaths []string
}

// NewValidator creates a validator rooted at the drive's host directory.
func NewValidator(root string, extraProtected []string) *Validator {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	// Resolve the root itself so files inside a symlinked root are not
	// misread as escapes.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &Validator{
		Root:           filepath.Clean(abs),
		ProtectedPaths: defaultProtected(extraProtected),
	}
}

// ValidateTarget is the single-source-of-truth for delete and
// attribute-write authorization. Returns a typed error on violation.
func (v *Validator) ValidateTarget(path string) error {
	p, err := NormalizePath(path)
	if err != nil {
		return err
	}

	if IsProtectedPath(p, v.ProtectedPaths) {
		return ErrProtectedPath
	}

	if !withinRoot(p, v.Root) {
		return ErrOutsideRoot
	}

	if DetectTraversal(path) {
		return ErrTraversal
	}

	escaped, err := detectSymlinkEscape(p, v.Root)
	if err != nil {
		// Unresolvable paths fall through to the actual operation,
		// which fails on its own if the path does not exist.
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if escaped {
		return ErrSymlinkEscape
	}

	return nil
}

// NormalizePath converts a path to absolute, cleaned form.
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrInvalidPath
	}
	return filepath.Clean(abs), nil
}

// DetectTraversal blocks any ".." segment in raw input.
func DetectTraversal(raw string) bool {
	parts := strings.Split(filepath.ToSlash(raw), "/")
	for _, p := range parts {
		if p == ".." {
			return true
		}
	}
	return false
}

// detectSymlinkEscape resolves symlinks and checks whether the
// resolved path leaves the drive root.
func detectSymlinkEscape(cleanAbs, root string) (bool, error) {
	resolved, err := filepath.EvalSymlinks(cleanAbs)
	if err != nil {
		return false, err
	}
	resolvedAbs, err := filepath.Abs(resolved)
	if err != nil {
		return false, err
	}
	return !withinRoot(filepath.Clean(resolvedAbs), root), nil
}

// IsProtectedPath checks the path against system-critical prefixes.
func IsProtectedPath(path string, protected []string) bool {
	p := filepath.Clean(path)

	if p == string(os.PathSeparator) {
		return true
	}

	for _, prot := range protected {
		prot = filepath.Clean(prot)
		if p == prot || hasPathPrefix(p, prot) {
			return true
		}
	}
	return false
}

func withinRoot(path, root string) bool {
	return hasPathPrefix(filepath.Clean(path), root)
}

func hasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)

	if prefix == string(os.PathSeparator) {
		return path == "/"
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(os.PathSeparator))
}

// defaultProtected returns the base set of protected paths plus extras.
// A drive rooted inside one of these is misconfigured, not a loophole.
func defaultProtected(extra []string) []string {
	base := []string{
		"/etc",
		"/bin",
		"/usr",
		"/boot",
		"/lib",
		"/lib64",
		"/sbin",
	}
	return append(base, extra...)
}
