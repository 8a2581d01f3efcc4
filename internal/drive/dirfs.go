package drive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"cpm-rm/internal/fcb"
	"cpm-rm/internal/safety"
)

// sidecarName holds the drive's attribute table. The leading dot keeps
// it out of the 8.3 namespace: a normalized name can never contain one.
const sidecarName = ".attrs.yaml"

// DirFS backs a drive with a host directory. Files live as host files
// named by their 8.3 form; the R/O and SYS attribute flags persist in
// a YAML sidecar at the directory root.
type DirFS struct {
	root      string
	readOnly  bool
	validator *safety.Validator
}

// NewDirFS mounts a host directory as a drive. The directory must
// already exist.
func NewDirFS(root string, readOnly bool) (*DirFS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve drive root: %w", err)
	}
	// Keep the root in resolved form so the safety validator and the
	// paths handed to it agree even when the mount goes through a
	// symlink.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat drive root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("drive root %s is not a directory", abs)
	}
	return &DirFS{
		root:      abs,
		readOnly:  readOnly,
		validator: safety.NewValidator(abs, nil),
	}, nil
}

func (d *DirFS) hostPath(name string) string {
	return filepath.Join(d.root, fcb.To83(name))
}

func (d *DirFS) Open(name string) (*File, error) {
	n := fcb.To83(name)
	info, err := os.Stat(d.hostPath(n))
	if err != nil || info.IsDir() {
		return nil, ErrNotFound
	}

	attrs, err := d.lookupAttrs(n)
	if err != nil {
		return nil, err
	}
	return &File{Name: n, Size: info.Size(), Attrs: attrs}, nil
}

// Close is a no-op for directory-backed drives; the control structure
// holds no host resources. Kept for the FS contract.
func (d *DirFS) Close(f *File) error {
	return nil
}

func (d *DirFS) SetAttributes(name string, attrs fcb.Attributes) error {
	if d.readOnly {
		return ErrReadOnly
	}
	n := fcb.To83(name)
	if err := d.validator.ValidateTarget(d.hostPath(n)); err != nil {
		return err
	}
	if !d.Exists(n) {
		return ErrNotFound
	}

	table, err := d.loadSidecar()
	if err != nil {
		return err
	}
	if attrs == (fcb.Attributes{}) {
		delete(table, n)
	} else {
		table[n] = attrs
	}
	return d.saveSidecar(table)
}

func (d *DirFS) Delete(name string) error {
	if d.readOnly {
		return ErrReadOnly
	}
	n := fcb.To83(name)
	p := d.hostPath(n)
	if err := d.validator.ValidateTarget(p); err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", n, err)
	}

	// Drop the stale attribute entry; losing it is not fatal.
	if table, err := d.loadSidecar(); err == nil {
		if _, ok := table[n]; ok {
			delete(table, n)
			_ = d.saveSidecar(table)
		}
	}
	return nil
}

func (d *DirFS) List() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list drive: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// Only files already in canonical 8.3 form belong to the drive
		if name != fcb.To83(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *DirFS) Exists(name string) bool {
	info, err := os.Stat(d.hostPath(name))
	return err == nil && !info.IsDir()
}

func (d *DirFS) lookupAttrs(name string) (fcb.Attributes, error) {
	table, err := d.loadSidecar()
	if err != nil {
		return fcb.Attributes{}, err
	}
	return table[name], nil
}

func (d *DirFS) loadSidecar() (map[string]fcb.Attributes, error) {
	data, err := os.ReadFile(filepath.Join(d.root, sidecarName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]fcb.Attributes), nil
		}
		return nil, fmt.Errorf("read attribute table: %w", err)
	}

	table := make(map[string]fcb.Attributes)
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode attribute table: %w", err)
	}
	return table, nil
}

func (d *DirFS) saveSidecar(table map[string]fcb.Attributes) error {
	p := filepath.Join(d.root, sidecarName)
	if len(table) == 0 {
		err := os.Remove(p)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove attribute table: %w", err)
		}
		return nil
	}

	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode attribute table: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write attribute table: %w", err)
	}
	return nil
}
