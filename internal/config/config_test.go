package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
default_drive: b
drives:
  - letter: a
    path: /srv/cpm/a
  - letter: B
    path: /srv/cpm/b
    read_only: true
journal_path: /var/lib/cpm-rm/journal.db
logging:
  path: /var/log/cpm-rm/run.log
  rotation_days: 7
metrics:
  textfile_path: /var/lib/node_exporter/cpmrm.prom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultDrive != "B" {
		t.Errorf("DefaultDrive = %q, expected B", cfg.DefaultDrive)
	}
	if len(cfg.Drives) != 2 {
		t.Fatalf("Drives = %d, expected 2", len(cfg.Drives))
	}
	if cfg.Drives[0].Letter != "A" || cfg.Drives[1].Letter != "B" {
		t.Errorf("letters not normalized: %+v", cfg.Drives)
	}
	if !cfg.Drives[1].ReadOnly {
		t.Error("drive B should be read-only")
	}
	if cfg.JournalPath != "/var/lib/cpm-rm/journal.db" {
		t.Errorf("JournalPath = %q", cfg.JournalPath)
	}
	if cfg.Logging.RotationDays != 7 {
		t.Errorf("RotationDays = %d, expected 7", cfg.Logging.RotationDays)
	}
	if cfg.DefaultDriveLetter() != 'B' {
		t.Errorf("DefaultDriveLetter = %c", cfg.DefaultDriveLetter())
	}
}

func TestLoadDefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
drives:
  - letter: C
    path: ./work
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultDrive != "C" {
		t.Errorf("DefaultDrive = %q, expected first mapped drive C", cfg.DefaultDrive)
	}
	if cfg.Logging.RotationDays != 30 {
		t.Errorf("RotationDays = %d, expected default 30", cfg.Logging.RotationDays)
	}
	if cfg.JournalPath != "" {
		t.Errorf("JournalPath = %q, expected empty (journal disabled)", cfg.JournalPath)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no drives", "default_drive: A\n"},
		{"bad letter", "drives:\n  - letter: Z\n    path: /x\n"},
		{"two char letter", "drives:\n  - letter: AB\n    path: /x\n"},
		{"duplicate letter", "drives:\n  - letter: A\n    path: /x\n  - letter: a\n    path: /y\n"},
		{"empty path", "drives:\n  - letter: A\n    path: \"\"\n"},
		{"unbound default", "default_drive: D\ndrives:\n  - letter: A\n    path: /x\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%s) expected error", tt.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.validateAndDefault(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
	if cfg.DefaultDrive != "A" || len(cfg.Drives) != 1 {
		t.Errorf("Default() = %+v", cfg)
	}
}
