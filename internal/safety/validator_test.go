package safety

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProtectedPathBlocking verifies system paths are always blocked
func TestProtectedPathBlocking(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"root slash", "/", true},
		{"etc", "/etc", true},
		{"etc subdir", "/etc/ssh", true},
		{"bin file", "/bin/sh", true},
		{"usr local", "/usr/local", true},
		{"boot", "/boot", true},
		{"lib64", "/lib64", true},
		{"sbin", "/sbin", true},
		{"tmp allowed", "/tmp", false},
		{"home user", "/home/user", false},
		{"var tmp", "/var/tmp", false},
	}

	protected := defaultProtected(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsProtectedPath(tt.path, protected)
			if result != tt.expected {
				t.Errorf("IsProtectedPath(%s) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

// TestRootEnforcement verifies targets are confined to the drive root
func TestRootEnforcement(t *testing.T) {
	root := t.TempDir()
	v := NewValidator(root, nil)

	inside := filepath.Join(root, "DUMP.TXT")
	if err := os.WriteFile(inside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := v.ValidateTarget(inside); err != nil {
		t.Errorf("ValidateTarget(inside) = %v, expected nil", err)
	}

	outside := filepath.Join(filepath.Dir(root), "ESCAPE.TXT")
	if err := v.ValidateTarget(outside); err != ErrOutsideRoot {
		t.Errorf("ValidateTarget(outside) = %v, expected ErrOutsideRoot", err)
	}

	if err := v.ValidateTarget(""); err != ErrInvalidPath {
		t.Errorf("ValidateTarget(empty) = %v, expected ErrInvalidPath", err)
	}
}

// TestTraversalDetection verifies ".." segments in raw input are blocked
func TestTraversalDetection(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{"clean", "/tmp/drive/FILE.TXT", false},
		{"dotdot middle", "/tmp/drive/../FILE.TXT", true},
		{"dotdot only", "..", true},
		{"dot single", "/tmp/./FILE.TXT", false},
		{"name containing dots", "/tmp/drive/A..B", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTraversal(tt.raw); got != tt.expected {
				t.Errorf("DetectTraversal(%q) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}

// TestSymlinkEscapeBlocked verifies a symlink pointing outside the
// drive root cannot be used as a delete target
func TestSymlinkEscapeBlocked(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	victim := filepath.Join(outside, "VICTIM.TXT")
	if err := os.WriteFile(victim, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(root, "LINK.TXT")
	if err := os.Symlink(victim, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	v := NewValidator(root, nil)
	if err := v.ValidateTarget(link); err != ErrSymlinkEscape {
		t.Errorf("ValidateTarget(link) = %v, expected ErrSymlinkEscape", err)
	}
}

// TestMissingTargetAllowed verifies a nonexistent target inside the
// root passes validation so the delete itself reports not-found
func TestMissingTargetAllowed(t *testing.T) {
	root := t.TempDir()
	v := NewValidator(root, nil)

	if err := v.ValidateTarget(filepath.Join(root, "GONE.TXT")); err != nil {
		t.Errorf("ValidateTarget(missing) = %v, expected nil", err)
	}
}
