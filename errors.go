package duolog

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/duolog/internal/output"
)

// Common errors for the duolog package.
var (
	// ErrInvalidLevel is returned when a level name is unknown or a numeric
	// rank lies outside the valid range.
	ErrInvalidLevel = ewrap.New("invalid log level")

	// ErrInvalidFormat is returned when a timestamp layout cannot render the
	// current time.
	ErrInvalidFormat = ewrap.New("invalid time format layout")

	// ErrFileUnavailable is returned when the file sink could not be opened or
	// reopened. Log methods never raise it; the logger degrades to
	// console-only operation and surfaces it through the warning handler.
	ErrFileUnavailable = output.ErrFileUnavailable

	// ErrRotationFailed is returned when the trim-rewrite sequence on the log
	// file could not complete. The affected append is dropped and the file is
	// left in its last known-good state.
	ErrRotationFailed = output.ErrRotationFailed
)
