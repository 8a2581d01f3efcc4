// Package remove drives the per-file deletion decision: existence
// check, abort poll, read-only guard, optional confirmation, forced
// attribute clear, delete, report.
package remove

import (
	"errors"
	"log"

	"cpm-rm/internal/cli"
	"cpm-rm/internal/console"
	"cpm-rm/internal/drive"
	"cpm-rm/internal/journal"
	"cpm-rm/internal/metrics"
)

// ErrAborted reports that a pending abort stopped the filename loop.
var ErrAborted = errors.New("aborted by user")

// AbortPoller is the cancellation collaborator, polled once per file
// after a successful open.
type AbortPoller interface {
	Pending() bool
}

// Outcome is a file's terminal disposition.
type Outcome int

const (
	OutcomeDeleted Outcome = iota
	OutcomeNotFound
	OutcomeReadOnly
	OutcomeDeclined
	OutcomeDeleteFailed
)

// Reason returns the journal/metrics label for the outcome.
func (o Outcome) Reason() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeReadOnly:
		return "read_only"
	case OutcomeDeclined:
		return "declined"
	case OutcomeDeleteFailed:
		return "delete_failed"
	default:
		return "unknown"
	}
}

// Summary counts the terminal outcomes of one invocation.
type Summary struct {
	Deleted int
	Skipped int
	Failed  int
}

// Remover processes filename arguments against a workspace.
type Remover struct {
	ws      *drive.Workspace
	con     *console.Console
	poller  AbortPoller
	logger  *log.Logger
	journal *journal.Journal // nil disables recording
}

// NewRemover wires the deletion driver to its collaborators.
func NewRemover(ws *drive.Workspace, con *console.Console, poller AbortPoller, logger *log.Logger, jnl *journal.Journal) *Remover {
	if logger == nil {
		logger = log.Default()
	}
	return &Remover{
		ws:      ws,
		con:     con,
		poller:  poller,
		logger:  logger,
		journal: jnl,
	}
}

// Run processes every filename in order. Per-file failures are
// reported and never stop the loop; only a pending abort does, in
// which case ErrAborted is returned with the partial summary.
func (r *Remover) Run(opts cli.Options) (Summary, error) {
	var sum Summary

	for _, arg := range opts.Names {
		outcome, err := r.removeOne(arg, opts)
		if errors.Is(err, ErrAborted) {
			r.logger.Printf("abort requested, %d name(s) unprocessed", len(opts.Names)-sum.Deleted-sum.Skipped-sum.Failed)
			return sum, ErrAborted
		}

		switch outcome {
		case OutcomeDeleted:
			sum.Deleted++
		case OutcomeDeleteFailed:
			sum.Failed++
		default:
			sum.Skipped++
		}
	}

	return sum, nil
}

// removeOne runs the per-file state machine for a single argument.
// The argument is echoed in messages exactly as the user typed it.
func (r *Remover) removeOne(arg string, opts cli.Options) (Outcome, error) {
	fs, letter, name, err := r.ws.Resolve(arg)
	if err != nil {
		// An unknown or unmounted drive cannot hold the file
		r.logger.Printf("resolve %q: %v", arg, err)
		r.con.Errorf("File: %s not found\n", arg)
		r.record(journal.ActionSkip, 0, '?', arg, OutcomeNotFound, "", opts)
		metrics.FilesSkippedTotal.WithLabelValues(OutcomeNotFound.Reason()).Inc()
		return OutcomeNotFound, nil
	}

	f, err := fs.Open(name)
	if err != nil {
		r.con.Errorf("File: %s not found\n", arg)
		r.record(journal.ActionSkip, 0, letter, name, OutcomeNotFound, "", opts)
		metrics.FilesSkippedTotal.WithLabelValues(OutcomeNotFound.Reason()).Inc()
		return OutcomeNotFound, nil
	}

	// One abort checkpoint per file, right after a successful open
	if r.poller != nil && r.poller.Pending() {
		_ = fs.Close(f)
		return 0, ErrAborted
	}

	// The control structure already carries what we need
	if err := fs.Close(f); err != nil {
		r.logger.Printf("close %s: %v", name, err)
	}

	if f.Attrs.ReadOnly && !opts.Force {
		r.con.Errorf("File: %s is R/O \n", arg)
		r.record(journal.ActionSkip, f.Size, letter, name, OutcomeReadOnly, "", opts)
		metrics.FilesSkippedTotal.WithLabelValues(OutcomeReadOnly.Reason()).Inc()
		return OutcomeReadOnly, nil
	}

	if opts.Interactive {
		r.con.Print("File: " + arg + " , delete (y/n)? ")
		if r.con.ReadReply() != 'y' {
			r.con.Print("\n")
			r.record(journal.ActionSkip, f.Size, letter, name, OutcomeDeclined, "", opts)
			metrics.FilesSkippedTotal.WithLabelValues(OutcomeDeclined.Reason()).Inc()
			metrics.PromptsTotal.WithLabelValues("no").Inc()
			return OutcomeDeclined, nil
		}
		metrics.PromptsTotal.WithLabelValues("yes").Inc()
		// Blank out the prompt line before the deleted message lands
		r.con.Print("\t\t\t\t\t\r")
	}

	// Confirmation first, then the forced clear: both flags combine
	if f.Attrs.ReadOnly && opts.Force {
		attrs := f.Attrs
		attrs.ReadOnly = false
		if err := fs.SetAttributes(name, attrs); err != nil {
			r.con.Errorf("File: %s delete failed: %v\n", arg, err)
			r.record(journal.ActionError, f.Size, letter, name, OutcomeDeleteFailed, err.Error(), opts)
			metrics.DeleteFailuresTotal.Inc()
			return OutcomeDeleteFailed, nil
		}
	}

	if err := fs.Delete(name); err != nil {
		r.con.Errorf("File: %s delete failed: %v\n", arg, err)
		r.record(journal.ActionError, f.Size, letter, name, OutcomeDeleteFailed, err.Error(), opts)
		metrics.DeleteFailuresTotal.Inc()
		return OutcomeDeleteFailed, nil
	}

	if !opts.Quiet {
		r.con.Print("File: " + arg + " deleted\n")
	}
	r.record(journal.ActionDelete, f.Size, letter, name, OutcomeDeleted, "", opts)
	metrics.FilesDeletedTotal.Inc()
	metrics.BytesDeletedTotal.Add(float64(f.Size))
	return OutcomeDeleted, nil
}

// record writes the outcome to the journal when one is attached.
// Journal failures are logged, never surfaced: auditability must not
// block deletion.
func (r *Remover) record(action string, size int64, letter byte, name string, outcome Outcome, errMsg string, opts cli.Options) {
	if r.journal == nil {
		return
	}

	e := journal.Entry{
		Action:      action,
		Drive:       string(letter),
		Name:        name,
		Size:        size,
		Reason:      outcome.Reason(),
		Forced:      opts.Force,
		Interactive: opts.Interactive,
		ErrorMsg:    errMsg,
	}
	if err := r.journal.Record(e); err != nil {
		r.logger.Printf("journal write failed for %s: %v", name, err)
	}
}
