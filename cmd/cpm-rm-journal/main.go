package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"cpm-rm/internal/exitcodes"
	"cpm-rm/internal/journal"
)

func main() {
	// Parse command-line flags
	dbPath := flag.String("db", defaultJournalPath(), "Path to deletion journal")
	recent := flag.Int("recent", 0, "Show N most recent entries")
	stats := flag.Bool("stats", false, "Show journal statistics")
	reason := flag.String("reason", "", "Filter by outcome reason (deleted, not_found, read_only, declined, delete_failed)")
	action := flag.String("action", "", "Filter by action (DELETE, SKIP, ERROR)")
	namePattern := flag.String("name", "", "Filter by filename pattern (SQL LIKE syntax)")
	largest := flag.Int("largest", 0, "Show N largest deletions")
	days := flag.Int("days", 30, "Number of days for statistics (default: 30)")
	prune := flag.Int("prune", 0, "Delete entries older than N days")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	jnl, err := journal.New(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open journal %s: %v", *dbPath, err)
	}
	defer func() {
		if err := jnl.Close(); err != nil {
			log.Printf("ERROR: Failed to close journal: %v", err)
		}
	}()

	switch {
	case *stats:
		showStats(jnl, *days, *jsonOutput)
	case *recent > 0:
		showEntries(jnl.Recent(*recent))(*jsonOutput)
	case *reason != "":
		showEntries(jnl.ByReason(*reason))(*jsonOutput)
	case *action != "":
		showEntries(jnl.ByAction(*action))(*jsonOutput)
	case *namePattern != "":
		showEntries(jnl.ByNamePattern(*namePattern))(*jsonOutput)
	case *largest > 0:
		showEntries(jnl.Largest(*largest))(*jsonOutput)
	case *prune > 0:
		pruned, err := jnl.PruneOlderThan(*prune)
		if err != nil {
			log.Fatalf("ERROR: Failed to prune journal: %v", err)
		}
		fmt.Printf("Pruned %d entries older than %d days\n", pruned, *prune)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  cpm-rm-journal --recent 10          # Show 10 most recent entries")
		fmt.Println("  cpm-rm-journal --stats              # Show journal statistics")
		fmt.Println("  cpm-rm-journal --reason read_only   # Show read-only skips")
		fmt.Println("  cpm-rm-journal --action DELETE      # Show only deletions")
		fmt.Println("  cpm-rm-journal --name '%.BAK'       # Show entries for backup files")
		fmt.Println("  cpm-rm-journal --largest 10         # Show 10 largest deletions")
		os.Exit(exitcodes.UsageError)
	}
}

// defaultJournalPath mirrors the main binary's default when no config
// names one explicitly.
func defaultJournalPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/cpm-rm/journal.db"
	}
	return "journal.db"
}

func showStats(jnl *journal.Journal, days int, jsonOutput bool) {
	stats, err := jnl.GetStats(days)
	if err != nil {
		log.Fatalf("ERROR: Failed to get statistics: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Journal Statistics (Last %d days)\n", days)
	fmt.Printf("Period: %s to %s\n\n", stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"))
	fmt.Printf("Total Deleted:   %d\n", stats.TotalDeleted)
	fmt.Printf("Total Skipped:   %d\n", stats.TotalSkipped)
	fmt.Printf("Total Errors:    %d\n", stats.TotalErrors)
	fmt.Printf("Bytes Deleted:   %s\n\n", formatBytes(stats.TotalBytesDeleted))

	if len(stats.ByReason) > 0 {
		fmt.Println("By Reason:")
		for reason, count := range stats.ByReason {
			fmt.Printf("  %-15s %d\n", reason, count)
		}
		fmt.Println()
	}

	if len(stats.ByAction) > 0 {
		fmt.Println("By Action:")
		for action, count := range stats.ByAction {
			fmt.Printf("  %-15s %d\n", action, count)
		}
	}
}

// showEntries adapts a query result into a printer so the mode switch
// stays flat.
func showEntries(entries []journal.Entry, err error) func(bool) {
	return func(jsonOutput bool) {
		if err != nil {
			log.Fatalf("ERROR: Query failed: %v", err)
		}

		if jsonOutput {
			data, _ := json.MarshalIndent(entries, "", "  ")
			fmt.Println(string(data))
			return
		}

		printEntries(entries)
	}
}

func printEntries(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Println("No entries found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tACTION\tDRIVE\tNAME\tSIZE\tREASON\tERROR")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s:\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Action,
			e.Drive,
			e.Name,
			formatBytes(e.Size),
			e.Reason,
			e.ErrorMsg,
		)
	}
	w.Flush()
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
