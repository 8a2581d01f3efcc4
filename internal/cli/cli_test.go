package cli

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			"single name",
			[]string{"dump.txt"},
			Options{Names: []string{"dump.txt"}},
		},
		{
			"force",
			[]string{"-f", "dump.txt"},
			Options{Force: true, Names: []string{"dump.txt"}},
		},
		{
			"all flags",
			[]string{"-f", "-i", "-q", "a.txt", "b.txt"},
			Options{Force: true, Interactive: true, Quiet: true, Names: []string{"a.txt", "b.txt"}},
		},
		{
			"uppercase flag folds",
			[]string{"-F", "dump.txt"},
			Options{Force: true, Names: []string{"dump.txt"}},
		},
		{
			"bare dash stops flag parsing",
			[]string{"-q", "-", "-f", "dump.txt"},
			Options{Quiet: true, Names: []string{"-f", "dump.txt"}},
		},
		{
			"dash after marker is a filename",
			[]string{"-", "-"},
			Options{Names: []string{"-"}},
		},
		{
			"first non-flag ends options",
			[]string{"a.txt", "-f"},
			Options{Names: []string{"a.txt", "-f"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v): %v", tt.args, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%v) = %+v, expected %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("unknown option", func(t *testing.T) {
		_, err := Parse([]string{"-x", "dump.txt"})
		var uerr *UnknownOptionError
		if !errors.As(err, &uerr) {
			t.Fatalf("Parse(-x) err = %v, expected UnknownOptionError", err)
		}
		if uerr.Token != "-x" {
			t.Errorf("Token = %q, expected -x", uerr.Token)
		}
	})

	t.Run("unknown options stay errors", func(t *testing.T) {
		for _, tok := range []string{"-z", "-rf", "--force", "-1"} {
			if _, err := Parse([]string{tok, "dump.txt"}); err == nil {
				t.Errorf("Parse(%s) expected error", tok)
			}
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		if _, err := Parse(nil); !errors.Is(err, ErrMissingFilenames) {
			t.Errorf("Parse(nil) err = %v, expected ErrMissingFilenames", err)
		}
	})

	t.Run("flags without filenames", func(t *testing.T) {
		if _, err := Parse([]string{"-f", "-q"}); !errors.Is(err, ErrMissingFilenames) {
			t.Errorf("err = %v, expected ErrMissingFilenames", err)
		}
	})

	t.Run("marker without filenames", func(t *testing.T) {
		if _, err := Parse([]string{"-"}); !errors.Is(err, ErrMissingFilenames) {
			t.Errorf("err = %v, expected ErrMissingFilenames", err)
		}
	})
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)

	out := buf.String()
	for _, want := range []string{
		"ReMove file utility",
		"Version: " + Version,
		"Usage: cpm-rm [-f] [-i] [-q] [-]",
		"-f =>",
		"-i =>",
		"-q =>",
		"-  =>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("usage text missing %q:\n%s", want, out)
		}
	}
}
