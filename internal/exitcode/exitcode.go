// Package exitcode defines the process exit codes of costload.
package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2 // error-severity issues or a rejected bulk apply
	DBConnError     = 3
	CopyError       = 4
	TransformError  = 5
	PartialSuccess  = 6 // bulk apply skipped some months
)
