package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DriveMapping binds a drive letter to a host directory.
type DriveMapping struct {
	Letter   string `yaml:"letter" json:"letter"`
	Path     string `yaml:"path" json:"path"`
	ReadOnly bool   `yaml:"read_only" json:"read_only"` // mount-level guard, distinct from per-file R/O
}

type LoggingCfg struct {
	Path         string `yaml:"path" json:"path"`                   // empty disables file logging
	RotationDays int    `yaml:"rotation_days" json:"rotation_days"` // days to keep logs before rotation
}

type MetricsCfg struct {
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"` // empty disables the textfile dump
}

type Config struct {
	DefaultDrive string         `yaml:"default_drive" json:"default_drive"`
	Drives       []DriveMapping `yaml:"drives" json:"drives"`
	JournalPath  string         `yaml:"journal_path" json:"journal_path"` // empty disables the deletion journal
	Logging      LoggingCfg     `yaml:"logging" json:"logging"`
	Metrics      MetricsCfg     `yaml:"metrics" json:"metrics"`
}

var (
	errNoDrives       = errors.New("configuration must specify at least one drive")
	errBadLetter      = errors.New("drive letter must be a single character A-P")
	errDuplicateDrive = errors.New("drive letter mapped twice")
	errEmptyPath      = errors.New("drive path must not be empty")
	errDefaultUnbound = errors.New("default drive has no mapping")
)

// Load reads and validates a workspace configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in workspace used when no configuration
// file exists: the current directory mounted as drive A, no journal,
// no log file, no metrics.
func Default() *Config {
	return &Config{
		DefaultDrive: "A",
		Drives: []DriveMapping{
			{Letter: "A", Path: "."},
		},
		Logging: LoggingCfg{RotationDays: 30},
	}
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if len(c.Drives) == 0 {
		return errNoDrives
	}

	seen := make(map[byte]bool)
	for i := range c.Drives {
		letter, err := normalizeLetter(c.Drives[i].Letter)
		if err != nil {
			return err
		}
		if seen[letter] {
			return fmt.Errorf("%w: %c", errDuplicateDrive, letter)
		}
		seen[letter] = true
		c.Drives[i].Letter = string(letter)

		if c.Drives[i].Path == "" {
			return fmt.Errorf("%w (drive %c)", errEmptyPath, letter)
		}
		c.Drives[i].Path = filepath.Clean(c.Drives[i].Path)
	}

	if c.DefaultDrive == "" {
		c.DefaultDrive = c.Drives[0].Letter
	}
	def, err := normalizeLetter(c.DefaultDrive)
	if err != nil {
		return err
	}
	c.DefaultDrive = string(def)
	if !seen[def] {
		return fmt.Errorf("%w: %c", errDefaultUnbound, def)
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30
	}

	return nil
}

func normalizeLetter(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q", errBadLetter, s)
	}
	b := s[0]
	if b >= 'a' && b <= 'p' {
		b -= 'a' - 'A'
	}
	if b < 'A' || b > 'P' {
		return 0, fmt.Errorf("%w: %q", errBadLetter, s)
	}
	return b, nil
}

// DefaultDriveLetter returns the default drive as a byte.
func (c *Config) DefaultDriveLetter() byte {
	return c.DefaultDrive[0]
}
