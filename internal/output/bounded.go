// Package output provides the sinks backing the logger: a console writer with
// terminal color detection and a size-bounded file writer.
//
// BoundedFile keeps the persisted log under a configured byte ceiling by
// discarding the oldest lines when a new line would overflow it. The file is
// append-only from the caller's perspective, but the writer rewrites it in
// place during trimming: the discarded prefix is skipped line by line, the
// kept tail is read fully into memory, and the file is truncated and written
// back before the new line is appended. The kept tail is always captured
// before anything destructive happens, so an I/O failure mid-trim leaves the
// previously durable content intact.
//
// ConsoleWriter writes to an interactive console and applies ANSI colors when
// the destination is a terminal (or when forced), using isatty detection.
package output

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/duolog/internal/utils"
)

// BoundedFile implements Writer for file-based logging under a byte ceiling.
// Whenever an append would push the file past the ceiling, whole lines are
// discarded from the oldest end until the new line fits. A single line larger
// than the ceiling is still written after all existing content has been
// discarded; the ceiling bounds steady-state growth, not per-record size.
type BoundedFile struct {
	mu           sync.Mutex
	file         *os.File
	path         string
	maxSize      int64
	size         int64
	fileMode     os.FileMode
	failed       bool
	errorHandler func(error)
}

// BoundedFileConfig holds configuration for a BoundedFile.
type BoundedFileConfig struct {
	// Path is the log file path.
	Path string
	// MaxSize is the byte ceiling; a value <= 0 leaves the file unbounded.
	MaxSize int64
	// FileMode sets the permissions for new log files.
	FileMode os.FileMode
	// ErrorHandler is called when errors occur during file operations.
	ErrorHandler func(error)
}

// NewBoundedFile opens (creating if needed) the log file at the configured
// path in append mode, creating parent directories as required. The handle is
// opened read-write because trimming reads the file through it.
func NewBoundedFile(config BoundedFileConfig) (*BoundedFile, error) {
	if config.Path == "" {
		return nil, ewrap.New("log file path is required")
	}

	if config.FileMode == 0 {
		config.FileMode = 0o644
	}

	err := utils.EnsureParentDir(config.Path)
	if err != nil {
		return nil, ewrap.Wrap(err, "creating log directory")
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_APPEND|os.O_RDWR, config.FileMode)
	if err != nil {
		return nil, ewrap.Wrapf(err, "opening log file").
			WithMetadata("path", config.Path)
	}

	info, err := file.Stat()
	if err != nil {
		ioErr := file.Close()
		if ioErr != nil {
			return nil, ewrap.Wrapf(ioErr, "closing file").
				WithMetadata("path", config.Path).
				WithMetadata("err", err)
		}

		return nil, ewrap.Wrapf(err, "getting file stats").
			WithMetadata("path", config.Path)
	}

	return &BoundedFile{
		file:         file,
		path:         config.Path,
		maxSize:      config.MaxSize,
		size:         info.Size(),
		fileMode:     config.FileMode,
		errorHandler: config.ErrorHandler,
	}, nil
}

// Write implements io.Writer. It appends the payload to the log file, first
// trimming the oldest lines whenever the write would push the file past the
// ceiling. The whole read-trim-rewrite-write sequence runs under the writer's
// lock; it is not otherwise atomic and a concurrent writer could observe an
// intermediate state.
func (w *BoundedFile) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.failed {
		return 0, ErrFileUnavailable
	}

	if w.file == nil {
		return 0, ErrWriterClosed
	}

	if w.maxSize > 0 && w.size+int64(len(data)) > w.maxSize {
		err := w.trim(int64(len(data)))
		if err != nil {
			if w.errorHandler != nil {
				w.errorHandler(err)
			}

			return 0, err
		}
	}

	bytesWritten, err := w.file.Write(data)
	if err != nil {
		if w.errorHandler != nil {
			w.errorHandler(err)
		}

		return bytesWritten, ewrap.Wrap(err, "failed writing to log file")
	}

	w.size += int64(bytesWritten)

	return bytesWritten, nil
}

// trim discards whole lines from the start of the file until incoming bytes
// fit under the ceiling, then rewrites the file with the kept tail. Trimming
// always removes the oldest content first; the most recently appended lines
// are never discarded. A final line without a trailing newline counts as a
// whole discardable line.
func (w *BoundedFile) trim(incoming int64) error {
	deficit := w.size + incoming - w.maxSize

	_, err := w.file.Seek(0, io.SeekStart)
	if err != nil {
		return ewrap.Wrap(ErrRotationFailed, "seeking to start of log file").
			WithMetadata("cause", err.Error())
	}

	reader := bufio.NewReader(w.file)

	for deficit > 0 {
		line, readErr := reader.ReadBytes('\n')

		deficit -= int64(len(line))

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}

			return ewrap.Wrap(ErrRotationFailed, "reading log file during trim").
				WithMetadata("cause", readErr.Error())
		}
	}

	// Everything after the discarded prefix survives. It must be in memory
	// before the destructive rewrite below.
	keptTail, err := io.ReadAll(reader)
	if err != nil {
		return ewrap.Wrap(ErrRotationFailed, "reading kept tail").
			WithMetadata("cause", err.Error())
	}

	return w.rewrite(keptTail)
}

// rewrite replaces the file contents with the kept tail by closing the handle,
// reopening with truncation in append mode, and writing the tail back. If the
// reopen fails the writer is marked unusable and every future write reports
// ErrFileUnavailable.
func (w *BoundedFile) rewrite(keptTail []byte) error {
	closeErr := w.file.Close()
	w.file = nil

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_TRUNC|os.O_APPEND|os.O_RDWR, w.fileMode)
	if err != nil {
		w.failed = true

		return ewrap.Wrap(ErrFileUnavailable, "reopening log file after trim").
			WithMetadata("path", w.path).
			WithMetadata("cause", err.Error())
	}

	w.file = file
	w.size = 0

	if closeErr != nil && w.errorHandler != nil {
		w.errorHandler(closeErr)
	}

	bytesWritten, err := file.Write(keptTail)

	w.size += int64(bytesWritten)

	if err != nil {
		return ewrap.Wrap(ErrRotationFailed, "writing kept tail back").
			WithMetadata("path", w.path).
			WithMetadata("cause", err.Error())
	}

	return nil
}

// SetMaxSize updates the byte ceiling and immediately re-checks the current
// file size, trimming when the file already exceeds the new ceiling. A value
// <= 0 leaves the file unbounded.
func (w *BoundedFile) SetMaxSize(maxSize int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.maxSize = maxSize

	if w.file == nil || w.failed || maxSize <= 0 || w.size <= maxSize {
		return nil
	}

	return w.trim(0)
}

// Size returns the current file size in bytes as tracked by the writer.
func (w *BoundedFile) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.size
}

// Path returns the path of the underlying log file.
func (w *BoundedFile) Path() string {
	return w.path
}

// Sync ensures any buffered data is written to the underlying file.
// If the file has already been closed, Sync returns nil without error.
func (w *BoundedFile) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	err := w.file.Sync()
	if err != nil {
		return ewrap.Wrapf(err, "syncing log file")
	}

	return nil
}

// Close syncs and closes the underlying file. Closing an already closed
// writer returns nil without error.
func (w *BoundedFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	err := w.file.Sync()
	if err != nil {
		return ewrap.Wrapf(err, "final sync before close")
	}

	err = w.file.Close()
	if err != nil {
		return ewrap.Wrapf(err, "closing log file")
	}

	w.file = nil

	return nil
}
