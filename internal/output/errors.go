package output

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the output package.
var (
	// ErrWriterClosed is returned when attempting to write to a closed writer.
	ErrWriterClosed = ewrap.New("writer is closed")

	// ErrFileUnavailable is returned when the log file cannot be opened or
	// reopened; the writer is unusable until it is reconfigured.
	ErrFileUnavailable = ewrap.New("log file unavailable")

	// ErrRotationFailed is returned when the trim-rewrite sequence cannot
	// complete; the file keeps its last known-good content.
	ErrRotationFailed = ewrap.New("log file trim failed")
)
