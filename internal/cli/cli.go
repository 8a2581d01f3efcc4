// Package cli parses the rm argument list. The semantics predate
// flag-package conventions: parsing stops at the first token that does
// not start with a dash, and a bare "-" forces everything after it to
// be treated as filenames.
package cli

import (
	"errors"
	"fmt"
	"io"
)

// Version of the utility, printed in the usage block.
const Version = "1.04"

// ErrMissingFilenames is returned when no filename tokens remain after
// flag parsing.
var ErrMissingFilenames = errors.New("filename(s) are missing")

// UnknownOptionError reports an unrecognized leading-dash token.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return "unknown option: " + e.Token
}

// Options is the immutable result of a successful parse.
type Options struct {
	Force       bool // delete even if read-only
	Interactive bool // query before deleting each file
	Quiet       bool // suppress per-file "deleted" messages

	Names []string // filename arguments, in order
}

// Parse consumes the argument list (without the program name).
// Flag characters are case-folded, matching the original utility.
func Parse(args []string) (Options, error) {
	var opts Options

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if len(arg) == 0 || arg[0] != '-' {
			break
		}

		// Bare dash: everything after is a filename, dashes included
		if len(arg) == 1 {
			i++
			break
		}

		switch lower(arg[1]) {
		case 'f':
			opts.Force = true
		case 'i':
			opts.Interactive = true
		case 'q':
			opts.Quiet = true
		default:
			return Options{}, &UnknownOptionError{Token: arg}
		}
	}

	if i >= len(args) {
		return Options{}, ErrMissingFilenames
	}

	opts.Names = append(opts.Names, args[i:]...)
	return opts, nil
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Usage writes the fixed usage block. The caller decides the exit
// status; this only emits text.
func Usage(w io.Writer) {
	fmt.Fprintf(w, "\nReMove file utility\t Version: %s\n", Version)
	fmt.Fprint(w, "\nUsage: cpm-rm [-f] [-i] [-q] [-] [d:]filename [filename...]\n")
	fmt.Fprint(w, "\t\t-f => Delete files, even if read-only\n")
	fmt.Fprint(w, "\t\t-i => Query before deleting each file\n")
	fmt.Fprint(w, "\t\t-q => \"Quiet\" mode\n")
	fmt.Fprint(w, "\t\t-  => Designates that filenames follow\n")
}
