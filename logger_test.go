package duolog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainConfig returns a config writing uncolored console output into buf.
func plainConfig(buf *bytes.Buffer) Config {
	config := DefaultConfig("test")
	config.Output = buf
	config.Color.Enable = false
	config.WarningHandler = func(error) {}

	return config
}

func TestNewRequiresName(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestNewRejectsInvalidTimeFormat(t *testing.T) {
	config := DefaultConfig("test")
	config.TimeFormat = "   "

	_, err := New(config)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConsoleOutputLineShape(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	logger.Info("hello world")

	line := buf.String()
	require.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, "test logger_test.go:")
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "hello world")
}

func TestPrintfStyleArguments(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	logger.Warn("user %s failed %d times", "bob", 3)

	assert.Contains(t, buf.String(), "user bob failed 3 times")
}

func TestThresholdsFilterIndependently(t *testing.T) {
	var buf bytes.Buffer

	config := plainConfig(&buf)
	config.FilePath = filepath.Join(t.TempDir(), "app.log")
	config.ConsoleThreshold = ErrorLevel
	config.FileThreshold = DebugLevel

	logger, err := New(config)
	require.NoError(t, err)

	defer logger.Close()

	logger.Info("file only")

	assert.Empty(t, buf.String())

	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(config.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file only")

	logger.Error("both sinks")

	assert.Contains(t, buf.String(), "both sinks")
}

func TestSuppressedLevelSkipsProducer(t *testing.T) {
	// Scenario: console threshold WARNING, file threshold OFF; an info call
	// produces nothing anywhere and never invokes the deferred producer.
	var buf bytes.Buffer

	config := plainConfig(&buf)
	config.FilePath = filepath.Join(t.TempDir(), "app.log")
	config.ConsoleThreshold = WarningLevel
	config.FileThreshold = OffLevel

	logger, err := New(config)
	require.NoError(t, err)

	defer logger.Close()

	calls := 0

	logger.Info(func() string {
		calls++

		return "should not run"
	})

	assert.Zero(t, calls)
	assert.Empty(t, buf.String())

	content, err := os.ReadFile(config.FilePath)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestProducerInvokedOncePerEmit(t *testing.T) {
	var buf bytes.Buffer

	config := plainConfig(&buf)
	config.FilePath = filepath.Join(t.TempDir(), "app.log")
	config.ConsoleThreshold = AllLevel
	config.FileThreshold = AllLevel

	logger, err := New(config)
	require.NoError(t, err)

	defer logger.Close()

	calls := 0

	logger.Debug(func() string {
		calls++

		return "built once"
	})

	// The record reached both sinks but the message was built exactly once.
	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "built once")
}

func TestMultiLineMessageBecomesOneLine(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	logger.Info("line1\r\nline2")

	assert.Contains(t, buf.String(), "line1;line2")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestSetThresholds(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	require.NoError(t, logger.SetConsoleThreshold(LevelName("error")))
	assert.Equal(t, ErrorLevel, logger.ConsoleThreshold())

	require.NoError(t, logger.SetFileThreshold(TraceLevel))
	assert.Equal(t, TraceLevel, logger.FileThreshold())

	logger.Info("filtered")
	assert.Empty(t, buf.String())

	logger.Critical("admitted")
	assert.Contains(t, buf.String(), "admitted")
}

func TestSetThresholdInvalid(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	assert.ErrorIs(t, logger.SetConsoleThreshold(LevelName("nope")), ErrInvalidLevel)
	assert.ErrorIs(t, logger.SetFileThreshold(Level(99)), ErrInvalidLevel)

	// Failed sets leave the thresholds untouched.
	assert.Equal(t, DefaultLevel, logger.ConsoleThreshold())
	assert.Equal(t, DefaultLevel, logger.FileThreshold())
}

func TestIgnoreLogging(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	assert.False(t, logger.IgnoreLogging())

	require.NoError(t, logger.SetConsoleThreshold(OffLevel))
	assert.False(t, logger.IgnoreLogging())

	require.NoError(t, logger.SetFileThreshold(OffLevel))
	assert.True(t, logger.IgnoreLogging())
}

func TestSetFilenameCreatesParentDirectories(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	defer logger.Close()

	path := filepath.Join(t.TempDir(), "deep", "nested", "app.log")
	logger.SetFilename(path)

	logger.Info("persisted")

	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "persisted")
}

func TestSetFilenameUnwritablePathDegradesToConsole(t *testing.T) {
	var buf bytes.Buffer

	var warnings []error

	config := plainConfig(&buf)
	config.WarningHandler = func(err error) {
		warnings = append(warnings, err)
	}

	logger, err := New(config)
	require.NoError(t, err)

	// A regular file in place of the parent directory makes the path unwritable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	logger.SetFilename(filepath.Join(blocker, "app.log"))

	require.NotEmpty(t, warnings)
	assert.ErrorIs(t, warnings[0], ErrFileUnavailable)

	// The logger keeps operating console-only without raising to the caller.
	logger.Error("still alive")
	assert.Contains(t, buf.String(), "still alive")
}

func TestSetMaxFileSizeEnforcesFloor(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	logger.SetMaxFileSize(10)
	assert.Equal(t, int64(MinFileSizeBytes), logger.MaxFileSize())

	logger.SetMaxFileSize(0)
	assert.Zero(t, logger.MaxFileSize())

	logger.SetMaxFileSize(4096)
	assert.Equal(t, int64(4096), logger.MaxFileSize())
}

func TestBoundedFileStaysUnderCeiling(t *testing.T) {
	// Scenario: ceiling 2048 bytes; 200 appends of short lines keep the file
	// at or below the ceiling with the newest record always retained.
	var buf bytes.Buffer

	config := plainConfig(&buf)
	config.FilePath = filepath.Join(t.TempDir(), "bounded.log")
	config.MaxFileSizeBytes = 2048
	config.ConsoleThreshold = OffLevel

	logger, err := New(config)
	require.NoError(t, err)

	defer logger.Close()

	for i := range 200 {
		logger.Info("short message %03d", i)
	}

	require.NoError(t, logger.Sync())

	info, err := os.Stat(config.FilePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.LessOrEqual(t, info.Size(), int64(2048))

	content, err := os.ReadFile(config.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "short message 199")
	assert.NotContains(t, string(content), "short message 000")
}

func TestSetTimeFormat(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	require.NoError(t, logger.SetTimeFormat("15:04:05"))

	assert.ErrorIs(t, logger.SetTimeFormat(""), ErrInvalidFormat)

	// The prior layout survives a rejected set.
	logger.Info("after rejected format")
	assert.Contains(t, buf.String(), "after rejected format")
}

func TestTableMessageSpansIndentedLines(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	logger.Info([][]string{
		{"name", "count"},
		{"alpha", "3"},
	})

	out := buf.String()
	assert.Contains(t, out, "\n\tname\tcount")
	assert.Contains(t, out, "\n\talpha\t3")
}

func TestCloseWithoutFileSink(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(plainConfig(&buf))
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	logger.Info("console survives close")
	assert.Contains(t, buf.String(), "console survives close")
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer

	config := plainConfig(&buf)
	config.FilePath = filepath.Join(t.TempDir(), "concurrent.log")
	config.MaxFileSizeBytes = 4096

	logger, err := New(config)
	require.NoError(t, err)

	defer logger.Close()

	done := make(chan struct{})

	for worker := range 4 {
		go func() {
			defer func() { done <- struct{}{} }()

			for i := range 50 {
				logger.Info(fmt.Sprintf("worker %d message %d", worker, i))
			}
		}()
	}

	for range 4 {
		<-done
	}

	require.NoError(t, logger.Sync())

	info, err := os.Stat(config.FilePath)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(4096))
}
