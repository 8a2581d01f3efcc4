// Package fcb models the per-file metadata carried by a CP/M-style
// directory entry: 8.3 filenames, drive-qualified names, and the
// attribute bits stowed in the high bits of the extension field.
package fcb

import (
	"errors"
	"fmt"
	"strings"
)

// Attribute bit positions within the FCB extension field.
// R/O lives in bit 7 of extension byte 0, SYS in bit 7 of byte 1;
// the low seven bits of each byte hold the extension character.
const (
	attrHighBit = 0x80

	extReadOnly = 0 // extension byte carrying the R/O bit
	extSystem   = 1 // extension byte carrying the SYS bit
)

var (
	ErrBadDrive = errors.New("drive letter must be A-P")
	ErrBadName  = errors.New("invalid filename")
)

// Attributes holds the persisted per-file flags. The bit layout is an
// encoding detail; callers only see the booleans.
type Attributes struct {
	ReadOnly bool `yaml:"read_only"`
	System   bool `yaml:"system"`
}

// EncodeExt stamps the attribute bits onto a 3-byte extension field.
func (a Attributes) EncodeExt(ext *[3]byte) {
	for i := range ext {
		ext[i] &= 0x7f
	}
	if a.ReadOnly {
		ext[extReadOnly] |= attrHighBit
	}
	if a.System {
		ext[extSystem] |= attrHighBit
	}
}

// DecodeExt reads the attribute bits from a 3-byte extension field.
func DecodeExt(ext [3]byte) Attributes {
	return Attributes{
		ReadOnly: ext[extReadOnly]&attrHighBit != 0,
		System:   ext[extSystem]&attrHighBit != 0,
	}
}

// validRunes are the characters CP/M accepts in a filename beyond
// letters and digits.
const validRunes = "$#@!%'`(){}~^-_"

// To83 normalizes a filename to CP/M 8.3 form: uppercase, invalid
// characters stripped, name truncated to 8 characters and extension
// to 3. An empty name component becomes "_".
func To83(name string) string {
	upper := strings.ToUpper(name)
	base, ext := upper, ""
	if i := strings.LastIndexByte(upper, '.'); i >= 0 {
		base, ext = upper[:i], upper[i+1:]
	}

	clean := func(s string, max int) string {
		var b strings.Builder
		for _, r := range s {
			if b.Len() == max {
				break
			}
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || strings.ContainsRune(validRunes, r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	}

	cb := clean(base, 8)
	ce := clean(ext, 3)
	if cb == "" {
		cb = "_"
	}
	if ce == "" {
		return cb
	}
	return cb + "." + ce
}

// SplitDrive splits an optionally drive-qualified name like "B:DUMP.TXT"
// into its drive letter and 8.3-normalized filename. Drive 0 means
// "use the default drive".
func SplitDrive(arg string) (drive byte, name string, err error) {
	raw := arg
	if len(arg) >= 2 && arg[1] == ':' {
		d := arg[0]
		if d >= 'a' && d <= 'p' {
			d -= 'a' - 'A'
		}
		if d < 'A' || d > 'P' {
			return 0, "", fmt.Errorf("%w: %q", ErrBadDrive, arg)
		}
		drive = d
		raw = arg[2:]
	}
	if strings.TrimSpace(raw) == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrBadName, arg)
	}
	return drive, To83(raw), nil
}
