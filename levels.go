package duolog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity of a log message. Levels are totally ordered
// by their integer rank: AllLevel is the minimum and admits everything, OffLevel
// is the maximum and admits nothing.
type Level uint8

const (
	// AllLevel admits every message when used as a threshold.
	AllLevel Level = iota
	// TraceLevel represents verbose debugging information.
	TraceLevel
	// DebugLevel represents debugging information.
	DebugLevel
	// InfoLevel represents general operational information.
	InfoLevel
	// WarningLevel represents warning messages.
	WarningLevel
	// ErrorLevel represents error messages.
	ErrorLevel
	// CriticalLevel represents critical failure messages.
	CriticalLevel
	// OffLevel suppresses every message when used as a threshold.
	OffLevel
)

// String returns the canonical string representation of a log level.
func (l Level) String() string {
	switch l {
	case AllLevel:
		return "ALL"
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	case OffLevel:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the given Level is a valid log level, and false otherwise.
func (l Level) IsValid() bool {
	return l >= AllLevel && l <= OffLevel
}

// ParseLevel resolves a level name to its rank. Matching is case-insensitive
// and accepts "warn" and "crit" as aliases. An unknown name fails with
// ErrInvalidLevel.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ALL":
		return AllLevel, nil
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRIT", "CRITICAL":
		return CriticalLevel, nil
	case "OFF":
		return OffLevel, nil
	default:
		return OffLevel, ewrap.Wrap(ErrInvalidLevel, "unknown level name").
			WithMetadata("name", name)
	}
}

// LevelSpec designates a severity level either by canonical name or by numeric
// rank. Level and LevelName both satisfy it; every API that accepts a level
// accepts either form and resolves it once at entry.
type LevelSpec interface {
	levelSpec() (Level, error)
}

func (l Level) levelSpec() (Level, error) {
	if !l.IsValid() {
		return OffLevel, ewrap.Wrap(ErrInvalidLevel, "rank out of range").
			WithMetadata("rank", int(l))
	}

	return l, nil
}

// LevelName designates a level by its canonical name.
type LevelName string

func (n LevelName) levelSpec() (Level, error) {
	return ParseLevel(string(n))
}

// ResolveLevel resolves a LevelSpec into its canonical numeric rank. Numeric
// ranks already within [AllLevel, OffLevel] pass through unchanged; names go
// through ParseLevel.
func ResolveLevel(spec LevelSpec) (Level, error) {
	if spec == nil {
		return OffLevel, ewrap.Wrap(ErrInvalidLevel, "nil level spec")
	}

	return spec.levelSpec()
}
