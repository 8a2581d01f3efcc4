package exitcodes

// Exit codes for the cpm-rm binaries
// These codes form the contract with the invoking shell and scripts
const (
	Success       = 0 // Invocation well-formed; skipped files still exit 0
	UsageError    = 2 // Unknown option or missing filenames
	InvalidConfig = 3 // Workspace configuration file invalid
	RuntimeError  = 4 // Failure outside the per-file loop
	Interrupted   = 5 // Pending abort stopped the filename loop
)
