package output

import (
	"fmt"
	"io"
)

// Logger writes human-readable progress messages.
// Infof is silenced by quiet mode, Verbosef only prints in verbose mode,
// Warnf always prints to the error stream. A nil *Logger discards everything.
type Logger struct {
	out     io.Writer
	err     io.Writer
	verbose bool
	quiet   bool
}

// NewLogger creates a logger writing to out and err.
func NewLogger(out, err io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, err: err, verbose: verbose, quiet: quiet}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return NewLogger(io.Discard, io.Discard, false, true)
}

// Verbose reports whether verbose messages are printed.
func (l *Logger) Verbose() bool {
	return l != nil && l.verbose
}

// Quiet reports whether informational messages are suppressed.
func (l *Logger) Quiet() bool {
	return l == nil || l.quiet
}

// Out returns the writer used for informational messages.
func (l *Logger) Out() io.Writer {
	if l == nil {
		return io.Discard
	}
	return l.out
}

// Infof prints an informational line unless quiet.
func (l *Logger) Infof(format string, args ...any) {
	if l.Quiet() {
		return
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Verbosef prints a diagnostic line in verbose mode.
func (l *Logger) Verbosef(format string, args ...any) {
	if !l.Verbose() {
		return
	}
	fmt.Fprintf(l.err, format+"\n", args...)
}

// Warnf prints a warning line to the error stream.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.err, "Warning: "+format+"\n", args...)
}
