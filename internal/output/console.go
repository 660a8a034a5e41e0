package output

import (
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/hyp3rd/ewrap"
	"github.com/mattn/go-isatty"
)

// ColorMode determines how colors are handled.
type ColorMode int

const (
	// ColorModeAuto detects if the output supports colors.
	ColorModeAuto ColorMode = iota
	// ColorModeAlways forces color output.
	ColorModeAlways
	// ColorModeNever disables color output.
	ColorModeNever
)

const ansiReset = "\x1b[0m"

// ConsoleWriter is a writer that writes log lines to an interactive console
// with optional ANSI color support.
type ConsoleWriter struct {
	mu         sync.Mutex
	out        io.Writer
	mode       ColorMode
	isTerminal bool
}

// NewConsoleWriter creates a new ConsoleWriter for the given destination.
// If the provided io.Writer is nil, it defaults to os.Stdout. Terminal
// detection happens once at construction.
func NewConsoleWriter(out io.Writer, mode ColorMode) *ConsoleWriter {
	if out == nil {
		out = os.Stdout
	}

	return &ConsoleWriter{
		out:        out,
		mode:       mode,
		isTerminal: IsTerminal(out),
	}
}

// Write implements io.Writer, writing the payload uncolored.
func (w *ConsoleWriter) Write(payload []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	bytesWritten, err := w.out.Write(payload)
	if err != nil {
		return bytesWritten, ewrap.Wrap(err, "failed writing to console output")
	}

	return bytesWritten, nil
}

// WriteStyled writes the payload wrapped in the given ANSI escape sequence
// when the color mode allows it, uncolored otherwise. The returned count
// covers the payload only, never the escape codes.
func (w *ConsoleWriter) WriteStyled(seq string, payload []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq == "" || !w.shouldUseColors() {
		bytesWritten, err := w.out.Write(payload)
		if err != nil {
			return bytesWritten, ewrap.Wrap(err, "failed writing to console output")
		}

		return bytesWritten, nil
	}

	_, err := io.WriteString(w.out, seq)
	if err != nil {
		return 0, ewrap.Wrap(err, "failed writing color sequence")
	}

	bytesWritten, err := w.out.Write(payload)
	if err != nil {
		return bytesWritten, ewrap.Wrap(err, "failed writing to console output")
	}

	_, err = io.WriteString(w.out, ansiReset)
	if err != nil {
		return bytesWritten, ewrap.Wrap(err, "failed resetting color")
	}

	return bytesWritten, nil
}

// shouldUseColors determines if color output should be used based on mode and
// terminal support.
//
//nolint:exhaustive // ColorModeAuto is handled as default.
func (w *ConsoleWriter) shouldUseColors() bool {
	switch w.mode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default: // ColorModeAuto
		return w.isTerminal
	}
}

// Sync synchronizes the underlying io.Writer if it implements the Sync() error
// interface. Stdout and stderr are safely skipped.
func (w *ConsoleWriter) Sync() error {
	if f, ok := w.out.(*os.File); ok {
		if f == os.Stdout || f == os.Stderr {
			return nil
		}
	}

	if syncer, ok := w.out.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}

	return nil
}

// Close closes the underlying io.Writer if it implements the io.Closer
// interface. Stdout and stderr are never closed.
func (w *ConsoleWriter) Close() error {
	if f, ok := w.out.(*os.File); ok {
		if f == os.Stdout || f == os.Stderr {
			return nil
		}
	}

	if closer, ok := w.out.(io.Closer); ok {
		err := closer.Close()
		if err != nil {
			return ewrap.Wrap(err, "closing console writer")
		}
	}

	return nil
}

// IsTerminal checks if the given writer is a terminal. It returns true if the
// writer is connected to a terminal, and false otherwise. This function is
// used to determine whether to enable color support for log output.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		if f.Fd() == uintptr(syscall.Stdout) || f.Fd() == uintptr(syscall.Stderr) {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	return false
}
