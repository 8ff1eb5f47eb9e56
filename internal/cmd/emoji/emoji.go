// Package emoji provides the status symbols used in CLI output.
package emoji

// Status symbols.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Stop marks a shutdown.
	Stop = "■"

	// Warning marks a non-fatal problem.
	Warning = "!"

	// Info marks plain information.
	Info = "i"
)
