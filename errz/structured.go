// Package errz defines the runtime error domain of the virtual machine.
package errz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorKind represents the category of a runtime error.
type ErrorKind int

const (
	// ErrType indicates a type mismatch or invalid operation on a type.
	ErrType ErrorKind = iota
	// ErrValue indicates an invalid value for an operation.
	ErrValue
	// ErrRuntime indicates a general runtime error, such as a corrupt
	// instruction stream.
	ErrRuntime
	// ErrStack indicates a stack or frame overflow or underflow.
	ErrStack
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrType:
		return "type error"
	case ErrValue:
		return "value error"
	case ErrRuntime:
		return "runtime error"
	case ErrStack:
		return "stack error"
	default:
		return "error"
	}
}

// StackFrame represents a single active call frame.
type StackFrame struct {
	Function string // function name; empty for anonymous functions
	IP       int    // offset of the instruction being executed
}

// String returns a formatted string representation of the stack frame.
func (f StackFrame) String() string {
	name := f.Function
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("at %s (ip %04d)", name, f.IP)
}

// FormatStackTrace formats a slice of stack frames as a human-readable string.
func FormatStackTrace(frames []StackFrame) string {
	if len(frames) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Stack trace:\n")
	for _, frame := range frames {
		b.WriteString("  ")
		b.WriteString(frame.String())
		b.WriteString("\n")
	}
	return b.String()
}

// StructuredError is a runtime error carrying its kind, the offset of the
// failing instruction and the active call frames, innermost first.
type StructuredError struct {
	Message string
	Kind    ErrorKind
	IP      int
	Stack   []StackFrame
	Cause   error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a human-friendly error message including
// the stack trace.
func (e *StructuredError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	msg.WriteString(red(e.Kind.String() + ":"))
	msg.WriteString(" ")
	msg.WriteString(e.Message)
	msg.WriteString("\n")
	if len(e.Stack) > 0 {
		msg.WriteString("\n")
		msg.WriteString(FormatStackTrace(e.Stack))
	}
	return msg.String()
}

// WithStack returns a copy of the error located at ip with the given
// call stack attached.
func (e *StructuredError) WithStack(ip int, stack []StackFrame) *StructuredError {
	cp := *e
	cp.IP = ip
	cp.Stack = stack
	return &cp
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// New creates a new StructuredError with the given kind and message.
func New(kind ErrorKind, message string) *StructuredError {
	return &StructuredError{Message: message, Kind: kind}
}

// Errorf creates a new StructuredError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *StructuredError {
	return &StructuredError{Message: fmt.Sprintf(format, args...), Kind: kind}
}

// TypeErrorf creates a type error with a formatted message.
func TypeErrorf(format string, args ...any) *StructuredError {
	return Errorf(ErrType, format, args...)
}

// ValueErrorf creates a value error with a formatted message.
func ValueErrorf(format string, args ...any) *StructuredError {
	return Errorf(ErrValue, format, args...)
}
