package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	Init()
}

func TestInitIdempotent(t *testing.T) {
	// Second call must not re-register (MustRegister would panic)
	Init()
	if FilesDeletedTotal == nil || FilesSkippedTotal == nil {
		t.Fatal("metrics not initialized")
	}
}

func TestCountersAccumulate(t *testing.T) {
	before := testutil.ToFloat64(FilesDeletedTotal)
	FilesDeletedTotal.Inc()
	FilesDeletedTotal.Inc()
	if got := testutil.ToFloat64(FilesDeletedTotal); got != before+2 {
		t.Errorf("FilesDeletedTotal = %v, expected %v", got, before+2)
	}

	beforeRO := testutil.ToFloat64(FilesSkippedTotal.WithLabelValues("read_only"))
	FilesSkippedTotal.WithLabelValues("read_only").Inc()
	if got := testutil.ToFloat64(FilesSkippedTotal.WithLabelValues("read_only")); got != beforeRO+1 {
		t.Errorf("FilesSkippedTotal{read_only} = %v, expected %v", got, beforeRO+1)
	}
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpmrm.prom")

	FilesDeletedTotal.Inc()
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"cpmrm_files_deleted_total",
		"cpmrm_files_skipped_total",
		"cpmrm_run_duration_seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}
