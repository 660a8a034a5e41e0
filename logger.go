// Package duolog implements a leveled logger that writes to two independent
// sinks: an interactive console and a size-bounded on-disk file, each filtered
// by its own severity threshold.
//
// This package provides:
// - Eight ordered severity levels from ALL to OFF with bidirectional name/rank resolution
// - Independent console and file thresholds, adjustable at runtime
// - Deferred message producers, evaluated only when a record will be emitted
// - A size-bounded log file that discards its oldest lines to stay under a byte ceiling
// - Color-coded console output for terminal readability
//
// Logging is synchronous and single-writer: every log call blocks until
// formatting and all sink writes complete. Concurrent callers are serialized
// with a mutual-exclusion lock around the whole emit sequence. Runtime I/O
// failures on the file path never raise to callers of log methods; the logger
// degrades to console-only operation and reports the condition through a
// warning side channel.
//
// Basic usage:
//
//	log, err := duolog.New(duolog.DefaultConfig("worker"))
//	if err != nil {
//		panic(err)
//	}
//	defer log.Close()
//
//	log.Info("service started")
//	log.Debug("payload: %v", payload)
//	log.Trace(func() string { return expensiveDump() })
package duolog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/duolog/internal/output"
)

const (
	timestampFieldWidth = 23
	levelFieldWidth     = 8
	callerSkipFrames    = 4
	unknownCaller       = "unknown"
)

// Logger dispatches formatted records to a console sink and an optional
// size-bounded file sink, each guarded by its own severity threshold.
type Logger struct {
	mu               sync.Mutex
	name             string
	consoleThreshold Level
	fileThreshold    Level
	timeFormat       string
	callerWidth      int
	levelColors      map[Level]string
	console          *output.ConsoleWriter
	file             *output.BoundedFile
	maxFileSize      int64
	warnHandler      func(error)
	fileWarned       bool
}

// New creates a Logger from the given configuration. When no file path is
// configured the file sink starts disabled; console logging is always
// available. A file path that cannot be opened does not fail construction:
// the logger starts console-only and the warning handler is notified.
func New(config Config) (*Logger, error) {
	if config.Name == "" {
		return nil, ewrap.New("logger name is required")
	}

	if config.TimeFormat == "" {
		config.TimeFormat = DefaultTimeFormat
	}

	err := ValidateTimeFormat(config.TimeFormat)
	if err != nil {
		return nil, err
	}

	if !config.ConsoleThreshold.IsValid() || !config.FileThreshold.IsValid() {
		return nil, ewrap.Wrap(ErrInvalidLevel, "invalid threshold in config")
	}

	if config.CallerWidth <= 0 {
		config.CallerWidth = DefaultCallerWidth
	}

	if config.WarningHandler == nil {
		config.WarningHandler = func(err error) {
			fmt.Fprintf(os.Stderr, "duolog: %v\n", err)
		}
	}

	if config.MaxFileSizeBytes > 0 && config.MaxFileSizeBytes < MinFileSizeBytes {
		config.MaxFileSizeBytes = MinFileSizeBytes
	}

	logger := &Logger{
		name:             config.Name,
		consoleThreshold: config.ConsoleThreshold,
		fileThreshold:    config.FileThreshold,
		timeFormat:       config.TimeFormat,
		callerWidth:      config.CallerWidth,
		levelColors:      config.Color.LevelColors,
		console:          output.NewConsoleWriter(config.Output, colorMode(config.Color)),
		maxFileSize:      config.MaxFileSizeBytes,
		warnHandler:      config.WarningHandler,
	}

	if config.FilePath != "" {
		logger.openFileLocked(config.FilePath)
	}

	return logger, nil
}

// colorMode maps the package-level color configuration onto the console
// writer's mode.
func colorMode(config ColorConfig) output.ColorMode {
	switch {
	case !config.Enable:
		return output.ColorModeNever
	case config.ForceTTY:
		return output.ColorModeAlways
	default:
		return output.ColorModeAuto
	}
}

// Name returns the identifying label the logger was created with.
func (l *Logger) Name() string {
	return l.name
}

// Trace logs a message at trace level. The message may be a string, a
// zero-argument func() string deferred producer, a [][]string table, or any
// MessageSource; args apply printf-style substitution to the resolved message.
func (l *Logger) Trace(msg any, args ...any) {
	l.emit(TraceLevel, AsSource(msg), args...)
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg any, args ...any) {
	l.emit(DebugLevel, AsSource(msg), args...)
}

// Info logs a message at info level.
func (l *Logger) Info(msg any, args ...any) {
	l.emit(InfoLevel, AsSource(msg), args...)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(msg any, args ...any) {
	l.emit(WarningLevel, AsSource(msg), args...)
}

// Error logs a message at error level.
func (l *Logger) Error(msg any, args ...any) {
	l.emit(ErrorLevel, AsSource(msg), args...)
}

// Critical logs a message at critical level.
func (l *Logger) Critical(msg any, args ...any) {
	l.emit(CriticalLevel, AsSource(msg), args...)
}

// emit resolves admission against both thresholds, formats the record once,
// and dispatches it to every sink that admits the level. When neither
// threshold admits the level no work happens at all; in particular deferred
// message producers are not invoked.
func (l *Logger) emit(level Level, source MessageSource, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	toConsole := level >= l.consoleThreshold && level < OffLevel
	toFile := l.file != nil && level >= l.fileThreshold && level < OffLevel

	if !toConsole && !toFile {
		return
	}

	line := []byte(l.renderLine(level, source, args...))

	if toConsole {
		if seq, ok := l.levelColors[level]; ok {
			_, _ = l.console.WriteStyled(seq, line)
		} else {
			_, _ = l.console.Write(line)
		}
	}

	if toFile {
		_, err := l.file.Write(line)
		if err != nil {
			l.noteFileFailure(err)
		}
	}
}

// renderLine renders one record into the fixed line template:
// caller (left-justified), timestamp, level name (left-justified, min width
// 8), message, terminated by a single newline.
func (l *Logger) renderLine(level Level, source MessageSource, args ...any) string {
	return fmt.Sprintf("%-*s %-*s %-*s %s\n",
		l.callerWidth, l.callerLabel(),
		timestampFieldWidth, time.Now().Format(l.timeFormat),
		levelFieldWidth, level.String(),
		FormatMessage(source, args...))
}

// callerLabel resolves an identifying label for the call site that invoked
// the severity method.
func (l *Logger) callerLabel() string {
	_, file, line, ok := runtime.Caller(callerSkipFrames)
	if !ok {
		return l.name + " " + unknownCaller
	}

	return fmt.Sprintf("%s %s:%d", l.name, filepath.Base(file), line)
}

// noteFileFailure drops the record and, for an unusable sink, surfaces a
// one-time warning through the side channel. Warnings never go through the
// log stream itself.
func (l *Logger) noteFileFailure(err error) {
	if !errors.Is(err, output.ErrFileUnavailable) && !errors.Is(err, output.ErrWriterClosed) {
		return
	}

	if l.fileWarned {
		return
	}

	l.fileWarned = true
	l.warnHandler(ewrap.Wrap(err, "file sink degraded, continuing console-only"))
}

// SetConsoleThreshold sets the minimum level admitted to the console sink.
// The level may be given by name or by rank; an unresolvable spec fails with
// ErrInvalidLevel and leaves the threshold unchanged.
func (l *Logger) SetConsoleThreshold(spec LevelSpec) error {
	level, err := ResolveLevel(spec)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.consoleThreshold = level

	return nil
}

// SetFileThreshold sets the minimum level admitted to the file sink.
func (l *Logger) SetFileThreshold(spec LevelSpec) error {
	level, err := ResolveLevel(spec)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.fileThreshold = level

	return nil
}

// ConsoleThreshold returns the current console threshold.
func (l *Logger) ConsoleThreshold() Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.consoleThreshold
}

// FileThreshold returns the current file threshold.
func (l *Logger) FileThreshold() Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.fileThreshold
}

// IgnoreLogging reports whether both thresholds are set to OFF, meaning no
// record can reach either sink. Collaborators may use it to skip expensive
// work such as caller-context resolution.
func (l *Logger) IgnoreLogging() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.consoleThreshold == OffLevel && l.fileThreshold == OffLevel
}

// SetFilename (re)opens the file sink at the given path, creating parent
// directories as needed. On failure the file sink is disabled and a warning
// is reported through the warning handler; the logger keeps operating in
// console-only mode and nothing is raised to the caller.
func (l *Logger) SetFilename(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.openFileLocked(path)
}

func (l *Logger) openFileLocked(path string) {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}

	file, err := output.NewBoundedFile(output.BoundedFileConfig{
		Path:         path,
		MaxSize:      l.maxFileSize,
		FileMode:     LogFilePermissions,
		ErrorHandler: l.warnHandler,
	})
	if err != nil {
		l.fileWarned = true
		l.warnHandler(ewrap.Wrap(ErrFileUnavailable, "opening file sink").
			WithMetadata("path", path).
			WithMetadata("cause", err.Error()))

		return
	}

	l.file = file
	l.fileWarned = false
}

// SetMaxFileSize updates the file byte ceiling, enforcing the minimum floor,
// and immediately re-checks the current file size. A value <= 0 leaves the
// file unbounded.
func (l *Logger) SetMaxFileSize(bytes int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bytes > 0 && bytes < MinFileSizeBytes {
		bytes = MinFileSizeBytes
	}

	l.maxFileSize = bytes

	if l.file == nil {
		return
	}

	err := l.file.SetMaxSize(bytes)
	if err != nil {
		l.noteFileFailure(err)
	}
}

// MaxFileSize returns the effective file byte ceiling.
func (l *Logger) MaxFileSize() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.maxFileSize
}

// SetTimeFormat replaces the timestamp layout after validating it against the
// current time. An invalid layout fails with ErrInvalidFormat and the prior
// layout is retained.
func (l *Logger) SetTimeFormat(layout string) error {
	err := ValidateTimeFormat(layout)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.timeFormat = layout

	return nil
}

// Sync flushes both sinks.
func (l *Logger) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.console.Sync()
	if err != nil {
		return err
	}

	if l.file != nil {
		return l.file.Sync()
	}

	return nil
}

// Close releases the file sink. The logger remains usable for console output
// afterwards. Closing a logger without an open file sink is a no-op.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	return err
}
