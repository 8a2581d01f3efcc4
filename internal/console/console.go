// Package console is the line-oriented console collaborator: message
// output on the standard streams and a bounded one-line reply read.
package console

import (
	"bufio"
	"fmt"
	"io"
)

// maxReplyLen bounds a reply line, mirroring the fixed-size edited
// input buffer of the original console service.
const maxReplyLen = 8

// Console bundles the output streams with the reply source.
type Console struct {
	Out io.Writer
	Err io.Writer

	reader *bufio.Reader
}

// New creates a console over the given streams.
func New(in io.Reader, out, errw io.Writer) *Console {
	return &Console{
		Out:    out,
		Err:    errw,
		reader: bufio.NewReader(in),
	}
}

// Print writes to the standard output stream.
func (c *Console) Print(args ...interface{}) {
	fmt.Fprint(c.Out, args...)
}

// Errorf writes a formatted line to the error stream.
func (c *Console) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.Err, format, args...)
}

// ReadReply reads one line of input and returns its first byte,
// case-folded to lower. An empty line (or end of input) returns 0.
func (c *Console) ReadReply() byte {
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return 0
	}

	n := len(line)
	for n > 0 && (line[n-1] == '\n' || line[n-1] == '\r') {
		n--
	}
	if n == 0 {
		return 0
	}
	if n > maxReplyLen {
		n = maxReplyLen
	}
	line = line[:n]

	ch := line[0]
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	return ch
}
