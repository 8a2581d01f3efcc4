package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// New creates a logger appending to the given file, rotating logs
// older than rotationDays first. An empty path returns a silent
// logger: stdout and stderr belong to the user-facing contract and
// never carry diagnostics.
func New(path string, rotationDays int) *log.Logger {
	if path == "" {
		return log.New(io.Discard, "", 0)
	}

	if rotationDays <= 0 {
		rotationDays = 30
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("failed to ensure log directory for %s: %v", path, err)
	}

	rotateLogsIfNeeded(path, rotationDays)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to open log file %s: %v", path, err)
		return log.New(io.Discard, "", 0)
	}

	return log.New(f, "", log.LstdFlags|log.Lmicroseconds)
}

// rotateLogsIfNeeded rotates log files older than the specified days
func rotateLogsIfNeeded(logPath string, rotationDays int) {
	info, err := os.Stat(logPath)
	if err != nil {
		// Log file doesn't exist yet, nothing to rotate
		return
	}

	cutoffTime := time.Now().AddDate(0, 0, -rotationDays)
	if info.ModTime().Before(cutoffTime) {
		timestamp := info.ModTime().Format("20060102-150405")
		rotatedPath := logPath + "." + timestamp

		if err := os.Rename(logPath, rotatedPath); err != nil {
			log.Printf("failed to rotate log file: %v", err)
			return
		}

		cleanupOldLogs(logPath, rotationDays)
	}
}

// cleanupOldLogs removes rotated log files older than rotation days
func cleanupOldLogs(logPath string, rotationDays int) {
	dir := filepath.Dir(logPath)
	baseName := filepath.Base(logPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoffTime := time.Now().AddDate(0, 0, -rotationDays)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, baseName+".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			fullPath := filepath.Join(dir, name)
			if err := os.Remove(fullPath); err != nil {
				log.Printf("failed to remove old log file %s: %v", fullPath, err)
			}
		}
	}
}
