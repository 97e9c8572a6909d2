package errz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "type error", ErrType.String())
	require.Equal(t, "value error", ErrValue.String())
	require.Equal(t, "runtime error", ErrRuntime.String())
	require.Equal(t, "stack error", ErrStack.String())
	require.Equal(t, "error", ErrorKind(99).String())
}

func TestStructuredError(t *testing.T) {
	err := TypeErrorf("unsupported operand types for +: %s and %s", "int", "string")
	require.Equal(t, "type error: unsupported operand types for +: int and string", err.Error())

	located := err.WithStack(12, []StackFrame{{Function: "f", IP: 3}, {IP: 12}})
	require.Equal(t, 12, located.IP)
	require.Equal(t, 0, err.IP)
	require.Len(t, located.Stack, 2)

	var target *StructuredError
	wrapped := fmt.Errorf("run failed: %w", located)
	require.True(t, errors.As(wrapped, &target))
	require.Equal(t, ErrType, target.Kind)
}

func TestWithCause(t *testing.T) {
	cause := errors.New("boom")
	err := New(ErrRuntime, "recovered panic").WithCause(cause)
	require.ErrorIs(t, err, cause)
}

func TestFriendlyErrorMessage(t *testing.T) {
	color.NoColor = true
	err := New(ErrStack, "stack overflow").WithStack(4, []StackFrame{{Function: "loop", IP: 4}, {IP: 9}})
	expected := `stack error: stack overflow

Stack trace:
  at loop (ip 0004)
  at <anonymous> (ip 0009)
`
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestFormatStackTraceEmpty(t *testing.T) {
	require.Equal(t, "", FormatStackTrace(nil))
}
