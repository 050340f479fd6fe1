// Package alerts prints short status lines at the end of a command, such as
// where a workbook was saved or why a run stopped early.
package alerts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds indented detail lines to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert without color.
func (a *Alert) String() string {
	var sb strings.Builder
	sb.WriteString(a.Level.Icon())
	sb.WriteString(" ")
	sb.WriteString(a.Message)
	if a.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(a.Err.Error())
	}
	for _, d := range a.Details {
		sb.WriteString("\n  ")
		sb.WriteString(d)
	}
	return sb.String()
}

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo creates a Writer that prints one alert per line to w. The
// first line is colored when w is a terminal and color is allowed.
func NewWriterTo(w io.Writer, noColor bool) Writer {
	color := !noColor && os.Getenv("NO_COLOR") == "" && isTerminal(w)
	return WriterFunc(func(alert *Alert) error {
		text := alert.String()
		if color {
			head, tail, _ := strings.Cut(text, "\n")
			text = alert.Level.Color() + head + resetColor
			if tail != "" {
				text += "\n" + tail
			}
		}
		_, err := fmt.Fprintln(w, text)
		return err
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
