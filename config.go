package duolog

import (
	"io"
	"strings"
	"time"

	"github.com/hyp3rd/ewrap"
)

const (
	// DefaultTimeFormat is the default timestamp layout for log entries. It
	// renders a fixed-width timestamp like "2026-08-29 14:03:51,204".
	DefaultTimeFormat = "2006-01-02 15:04:05,000"
	// DefaultLevel is the default threshold for both sinks.
	DefaultLevel = InfoLevel
	// DefaultCallerWidth is the minimum width of the caller field in rendered lines.
	DefaultCallerWidth = 20
	// MinFileSizeBytes is the floor enforced on the file byte ceiling.
	MinFileSizeBytes = 1024
	// LogFilePermissions are the default file permissions for log files.
	LogFilePermissions = 0o666
)

// Config holds configuration for the logger.
type Config struct {
	// Name identifies the logger and its call sites; required.
	Name string
	// FilePath is the log file destination; empty leaves the file sink disabled.
	FilePath string
	// ConsoleThreshold is the minimum level admitted to the console sink.
	ConsoleThreshold Level
	// FileThreshold is the minimum level admitted to the file sink.
	FileThreshold Level
	// TimeFormat specifies the layout for timestamps.
	TimeFormat string
	// MaxFileSizeBytes caps the log file size; a value <= 0 leaves it unbounded.
	MaxFileSizeBytes int64
	// CallerWidth is the minimum width of the caller field.
	CallerWidth int
	// Color configuration for the console sink.
	Color ColorConfig
	// Output overrides the console destination; defaults to os.Stdout.
	Output io.Writer
	// WarningHandler receives sink-degradation warnings outside the log
	// stream; defaults to a line on stderr.
	WarningHandler func(error)
}

// DefaultConfig returns the default logger configuration for the given name:
// INFO thresholds on both sinks, no file sink, colored console output when a
// terminal is attached.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FilePath:         "",
		ConsoleThreshold: DefaultLevel,
		FileThreshold:    DefaultLevel,
		TimeFormat:       DefaultTimeFormat,
		MaxFileSizeBytes: 0,
		CallerWidth:      DefaultCallerWidth,
		Color:            DefaultColorConfig(),
		Output:           nil,
		WarningHandler:   nil,
	}
}

// ValidateTimeFormat checks a timestamp layout by rendering the current time
// and parsing the result back under the same layout. An empty layout or one
// whose rendering does not round-trip fails with ErrInvalidFormat.
func ValidateTimeFormat(layout string) error {
	if strings.TrimSpace(layout) == "" {
		return ewrap.Wrap(ErrInvalidFormat, "time format layout is empty")
	}

	rendered := time.Now().Format(layout)

	_, err := time.Parse(layout, rendered)
	if err != nil {
		return ewrap.Wrap(ErrInvalidFormat, "layout does not render a parseable time").
			WithMetadata("layout", layout).
			WithMetadata("rendered", rendered)
	}

	return nil
}
