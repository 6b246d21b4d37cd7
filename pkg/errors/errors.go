// Package errors provides structured error handling for the navigation
// transition engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvariant indicates a broken internal invariant, such as a scene
	// list without an active scene.
	KindInvariant
	// KindInput indicates a malformed stack snapshot or gesture sample.
	KindInput
	// KindHook indicates a failure returned by a transition hook.
	KindHook
	// KindConfig indicates an invalid tuning or scenario file.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindInput:
		return "input"
	case KindHook:
		return "hook"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrNoActiveScene is raised when a scene list has no active scene.
	ErrNoActiveScene = errors.New("could not find active scene")
	// ErrInvalidStack is returned for empty stacks or an index that does
	// not point at the last route.
	ErrInvalidStack = errors.New("invalid stack snapshot")
)

// NavError represents a structured error raised by the transition engine.
type NavError struct {
	// Op is the operation that failed (e.g., "navigation.Reconcile").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Key is the route key involved, if any.
	Key string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *NavError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *NavError) Unwrap() error {
	return e.Err
}

// Invariant builds a KindInvariant error with the current stack attached.
// Callers panic with it: an invariant violation has no recovery path.
func Invariant(op string, err error) *NavError {
	return &NavError{
		Op:         op,
		Kind:       KindInvariant,
		Err:        err,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes a panicked error value, so an invariant NavError that
// escaped through a dispatch boundary is still matchable with errors.As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the transition engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *NavError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
