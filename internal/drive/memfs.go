package drive

import (
	"sort"

	"cpm-rm/internal/fcb"
)

type memEntry struct {
	data  []byte
	attrs fcb.Attributes
}

// MemFS implements FS in memory for tests. It records every call so
// tests can assert exactly which operations reached the filesystem,
// and lets a test inject a delete failure.
type MemFS struct {
	files map[string]*memEntry

	Calls     []string
	DeleteErr error // returned by Delete when non-nil (file is kept)
}

// NewMemFS creates an empty in-memory drive.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memEntry)}
}

// Put creates or replaces a file. Test setup helper.
func (m *MemFS) Put(name string, data []byte, attrs fcb.Attributes) {
	m.files[fcb.To83(name)] = &memEntry{data: data, attrs: attrs}
}

func (m *MemFS) Open(name string) (*File, error) {
	n := fcb.To83(name)
	m.Calls = append(m.Calls, "open:"+n)
	e, ok := m.files[n]
	if !ok {
		return nil, ErrNotFound
	}
	return &File{Name: n, Size: int64(len(e.data)), Attrs: e.attrs}, nil
}

func (m *MemFS) Close(f *File) error {
	m.Calls = append(m.Calls, "close:"+f.Name)
	return nil
}

func (m *MemFS) SetAttributes(name string, attrs fcb.Attributes) error {
	n := fcb.To83(name)
	m.Calls = append(m.Calls, "setattr:"+n)
	e, ok := m.files[n]
	if !ok {
		return ErrNotFound
	}
	e.attrs = attrs
	return nil
}

func (m *MemFS) Delete(name string) error {
	n := fcb.To83(name)
	m.Calls = append(m.Calls, "rm:"+n)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.files[n]; !ok {
		return ErrNotFound
	}
	delete(m.files, n)
	return nil
}

func (m *MemFS) List() ([]string, error) {
	names := make([]string, 0, len(m.files))
	for n := range m.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemFS) Exists(name string) bool {
	_, ok := m.files[fcb.To83(name)]
	return ok
}

// Attrs returns the stored attributes for a file. Test helper.
func (m *MemFS) Attrs(name string) (fcb.Attributes, bool) {
	e, ok := m.files[fcb.To83(name)]
	if !ok {
		return fcb.Attributes{}, false
	}
	return e.attrs, true
}
