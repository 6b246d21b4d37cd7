package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/atomic"
)

// handlerSlot boxes the interface so the atomic pointer always stores the
// same concrete type.
type handlerSlot struct {
	h ErrorHandler
}

var current = atomic.NewPointer(&handlerSlot{h: NewLogHandler(nil)})

// SetHandler installs h as the process-wide error handler and returns the
// previous one. Passing nil restores a LogHandler writing to stderr.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = NewLogHandler(nil)
	}
	return current.Swap(&handlerSlot{h: h}).h
}

// Handler returns the installed error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report stamps err and sends it to the installed handler.
func Report(err *NavError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic stamps err and sends it to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in flight as a PanicError and swallows it.
// It must be deferred directly:
//
//	defer errors.Recover("engine.Dispatch")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack formats the calling goroutine's stack, starting at the
// caller of the function that called CaptureStack.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
