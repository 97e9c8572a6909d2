// Package errors defines the compile error domain: coded errors with a
// source location and "did you mean" suggestions.
package errors

import (
	"fmt"
	"strings"

	"github.com/Yag000/Interpreter-Monkey/token"
)

// CompileError represents a compilation error with rich context.
type CompileError struct {
	Code        ErrorCode
	Message     string
	Filename    string
	Line        int // 1-based; zero when unknown
	Column      int // 1-based; zero when unknown
	SourceLine  string
	Suggestions []string
}

// NewCompileError returns a CompileError located at pos. An unset
// position leaves the location empty.
func NewCompileError(code ErrorCode, pos token.Position, format string, args ...any) *CompileError {
	err := &CompileError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Filename: pos.File,
	}
	if pos.IsValid() {
		err.Line = pos.LineNumber()
		err.Column = pos.ColumnNumber()
	}
	return err
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString("compile error: ")
	b.WriteString(e.Message)
	if e.Filename != "" || e.Line > 0 {
		b.WriteString("\n\nlocation: ")
		if e.Filename != "" {
			b.WriteString(e.Filename)
			b.WriteString(":")
		}
		fmt.Fprintf(&b, "%d:%d", e.Line, e.Column)
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}
	return b.String()
}

// Hint returns the suggestions rendered as a sentence, or "".
func (e *CompileError) Hint() string {
	return FormatSuggestions(e.Suggestions)
}

// FriendlyErrorMessage returns a human-friendly error message without
// color codes.
func (e *CompileError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e)
}
