package errors

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes structured records through a
// charmbracelet logger.
type LogHandler struct {
	// Verbose enables stack traces in the output.
	Verbose bool

	logger *log.Logger
}

// NewLogHandler creates a handler writing to w, or stderr when w is nil.
func NewLogHandler(w io.Writer) *LogHandler {
	if w == nil {
		w = os.Stderr
	}
	return &LogHandler{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Prefix:          "cardstack",
		}),
	}
}

// NewLogHandlerWithLogger wraps an existing logger.
func NewLogHandlerWithLogger(l *log.Logger) *LogHandler {
	return &LogHandler{logger: l}
}

// HandleError logs a NavError.
func (h *LogHandler) HandleError(err *NavError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Key != "" {
		kv = append(kv, "key", err.Key)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger.Error("navigation error", kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", err.Value}
	if err.Op != "" {
		kv = append(kv, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger.Error("recovered panic", kv...)
}
