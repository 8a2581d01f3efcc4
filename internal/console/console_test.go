package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadReply(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected byte
	}{
		{"yes lower", "y\n", 'y'},
		{"yes upper folds", "Y\n", 'y'},
		{"no", "n\n", 'n'},
		{"first char only", "yes please\n", 'y'},
		{"empty line", "\n", 0},
		{"crlf empty", "\r\n", 0},
		{"crlf reply", "Y\r\n", 'y'},
		{"end of input", "", 0},
		{"unterminated last line", "y", 'y'},
		{"long reply bounded", strings.Repeat("n", 100) + "\n", 'n'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(strings.NewReader(tt.input), &bytes.Buffer{}, &bytes.Buffer{})
			if got := c.ReadReply(); got != tt.expected {
				t.Errorf("ReadReply() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestReadReplyConsumesOneLine(t *testing.T) {
	c := New(strings.NewReader("n\ny\n"), &bytes.Buffer{}, &bytes.Buffer{})
	if got := c.ReadReply(); got != 'n' {
		t.Fatalf("first reply = %q, expected 'n'", got)
	}
	if got := c.ReadReply(); got != 'y' {
		t.Fatalf("second reply = %q, expected 'y'", got)
	}
}

func TestStreams(t *testing.T) {
	var out, errw bytes.Buffer
	c := New(strings.NewReader(""), &out, &errw)

	c.Print("File: A.TXT deleted\n")
	c.Errorf("File: %s not found\n", "B.TXT")

	if out.String() != "File: A.TXT deleted\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errw.String() != "File: B.TXT not found\n" {
		t.Errorf("stderr = %q", errw.String())
	}
}
