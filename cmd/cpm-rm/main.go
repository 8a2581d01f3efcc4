package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cpm-rm/internal/abort"
	"cpm-rm/internal/cli"
	"cpm-rm/internal/config"
	"cpm-rm/internal/console"
	"cpm-rm/internal/drive"
	"cpm-rm/internal/exitcodes"
	"cpm-rm/internal/journal"
	"cpm-rm/internal/logging"
	"cpm-rm/internal/metrics"
	"cpm-rm/internal/remove"
)

// configEnv names the workspace configuration file. The argv surface
// belongs entirely to the rm contract, so configuration rides on the
// environment instead of a flag.
const configEnv = "CPMRM_CONFIG"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := cli.Parse(args)
	if err != nil {
		var uerr *cli.UnknownOptionError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintf(os.Stderr, "Unknown option: %s", uerr.Token)
		case errors.Is(err, cli.ErrMissingFilenames):
			fmt.Fprint(os.Stderr, "\nFilename(s) are missing\n")
		default:
			fmt.Fprintf(os.Stderr, "%v", err)
		}
		cli.Usage(os.Stderr)
		return exitcodes.UsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cpm-rm: invalid configuration: %v\n", err)
		return exitcodes.InvalidConfig
	}

	logger := logging.New(cfg.Logging.Path, cfg.Logging.RotationDays)
	metrics.Init()

	ws, err := buildWorkspace(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cpm-rm: %v\n", err)
		return exitcodes.RuntimeError
	}

	var jnl *journal.Journal
	if cfg.JournalPath != "" {
		jnl, err = journal.New(cfg.JournalPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cpm-rm: cannot open journal: %v\n", err)
			return exitcodes.RuntimeError
		}
		defer func() {
			if err := jnl.Close(); err != nil {
				logger.Printf("journal close: %v", err)
			}
		}()
	}

	poller := abort.NewPoller()
	defer poller.Stop()

	con := console.New(os.Stdin, os.Stdout, os.Stderr)
	remover := remove.NewRemover(ws, con, poller, logger, jnl)

	start := time.Now()
	sum, runErr := remover.Run(opts)
	metrics.RunDuration.Observe(time.Since(start).Seconds())

	logger.Printf("run complete: deleted=%d skipped=%d failed=%d", sum.Deleted, sum.Skipped, sum.Failed)

	if cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logger.Printf("metrics textfile: %v", err)
		}
	}

	if errors.Is(runErr, remove.ErrAborted) {
		return exitcodes.Interrupted
	}

	// Skipped and failed files were reported per file; the run itself
	// succeeded
	return exitcodes.Success
}

// loadConfig resolves the workspace configuration: explicit env path,
// then the user config file, then built-in defaults.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv(configEnv); path != "" {
		return config.Load(path)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "cpm-rm", "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return config.Load(path)
		}
	}

	return config.Default(), nil
}

func buildWorkspace(cfg *config.Config) (*drive.Workspace, error) {
	ws, err := drive.NewWorkspace(cfg.DefaultDriveLetter())
	if err != nil {
		return nil, err
	}

	for _, m := range cfg.Drives {
		fs, err := drive.NewDirFS(m.Path, m.ReadOnly)
		if err != nil {
			return nil, fmt.Errorf("mount drive %s: %w", m.Letter, err)
		}
		if err := ws.Mount(m.Letter[0], fs); err != nil {
			return nil, err
		}
	}
	return ws, nil
}
