// Package errors carries slog attributes and source locations on errors so
// that log events point back at the failing call.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError is an error bundled with slog attributes and the program
// counter of its construction site.
type AnnotatedError struct {
	msg   string
	pc    uintptr
	attrs []slog.Attr
}

// New creates an AnnotatedError recording the caller's source location.
func New(msg string, attrs ...slog.Attr) AnnotatedError {
	var pcs [1]uintptr
	// Skip runtime.Callers and New itself.
	runtime.Callers(2, pcs[:])
	return AnnotatedError{
		msg:   msg,
		pc:    pcs[0],
		attrs: attrs,
	}
}

// NewSentinel creates a bare error without location or attributes, for
// package-level sentinel values detected with [Is].
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with the wrapper's message and attributes while keeping
// err reachable for Is and As.
func (wrapper AnnotatedError) Wrap(err error) error {
	return fmt.Errorf("%w: %w", wrapper, err)
}

func (err AnnotatedError) Error() string {
	return err.msg
}

// LogValue groups the source location with the recorded attributes.
func (err AnnotatedError) LogValue() slog.Value {
	frames := runtime.CallersFrames([]uintptr{err.pc})
	source, _ := frames.Next()

	attrs := make([]slog.Attr, 0, len(err.attrs)+1)
	attrs = append(attrs, slog.String("source", fmt.Sprintf("%s:%d", source.File, source.Line)))
	attrs = append(attrs, err.attrs...)
	return slog.GroupValue(attrs...)
}

// As is [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
