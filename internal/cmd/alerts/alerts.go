// Package alerts prints one-line status notices for CLI commands. Notices go
// to stderr so stdout stays parseable when a command also prints data.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/shelfmap/internal/cmd/emoji"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure.
	LevelError Level = iota
	// LevelWarning indicates a problem the command worked around.
	LevelWarning
	// LevelInfo indicates general information.
	LevelInfo
	// LevelSuccess indicates a completed operation.
	LevelSuccess
)

// String returns the name of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	}
	return fmt.Sprintf("unknown(%d)", l)
}

// Icon returns the symbol printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Error
	case LevelWarning:
		return emoji.Warning
	case LevelSuccess:
		return emoji.Success
	}
	return emoji.Info
}

// Color returns the ANSI color for the level.
func (l Level) Color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	}
	return "\033[36m"
}

const reset = "\033[0m"

// Alert is one status notice.
type Alert struct {
	Level   Level
	Message string
	Err     error
}

// String renders the alert without color.
func (a Alert) String() string {
	s := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		s += ": " + a.Err.Error()
	}
	return s
}

// Writer prints alerts, in color when the destination is a terminal.
type Writer struct {
	w     io.Writer
	color bool
}

// NewWriter returns a writer for w. Color is used only when w is a terminal
// and noColor is false.
func NewWriter(w io.Writer, noColor bool) *Writer {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

// Write prints a.
func (w *Writer) Write(a Alert) {
	if w.color {
		fmt.Fprintf(w.w, "%s%s%s %s", a.Level.Color(), a.Level.Icon(), reset, a.Message)
		if a.Err != nil {
			fmt.Fprintf(w.w, ": %v", a.Err)
		}
		fmt.Fprintln(w.w)
		return
	}
	fmt.Fprintln(w.w, a.String())
}

// Success prints a success notice.
func (w *Writer) Success(format string, args ...any) {
	w.Write(Alert{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

// Info prints an informational notice.
func (w *Writer) Info(format string, args ...any) {
	w.Write(Alert{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Warning prints a warning with its cause.
func (w *Writer) Warning(err error, format string, args ...any) {
	w.Write(Alert{Level: LevelWarning, Message: fmt.Sprintf(format, args...), Err: err})
}

// Error prints a failure with its cause.
func (w *Writer) Error(err error, format string, args ...any) {
	w.Write(Alert{Level: LevelError, Message: fmt.Sprintf(format, args...), Err: err})
}
