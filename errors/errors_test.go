package errors

import (
	"testing"

	"github.com/Yag000/Interpreter-Monkey/token"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeDescription(t *testing.T) {
	require.Equal(t, "undefined variable", E2001.Description())
	require.Equal(t, "too many constants", E2008.Description())
	require.Equal(t, "unknown error", ErrorCode("E9999").Description())
	require.Equal(t, "E2011", E2011.String())
}

func TestCompileErrorWithoutLocation(t *testing.T) {
	err := NewCompileError(E2011, token.NoPos, "unknown operator: %s", "%")
	require.Equal(t, "compile error: unknown operator: %", err.Error())
	require.Equal(t, 0, err.Line)
}

func TestCompileErrorWithLocation(t *testing.T) {
	pos := token.Position{File: "main.mk", Line: 2, Column: 4, Char: 20}
	err := NewCompileError(E2001, pos, "undefined variable %q", "y")
	require.Equal(t, 3, err.Line)
	require.Equal(t, 5, err.Column)
	expected := "compile error: undefined variable \"y\"\n\nlocation: main.mk:3:5 (line 3, column 5)"
	require.Equal(t, expected, err.Error())
}

func TestSuggestSimilar(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		candidates []string
		expected   []string
	}{
		{"single", "lenght", []string{"length", "foo"}, []string{"length"}},
		{"ordered", "count", []string{"counts", "mount", "county", "x"}, []string{"counts", "county", "mount"}},
		{"short target", "ab", []string{"abc", "xyz"}, []string{"abc"}},
		{"no match", "value", []string{"zzzzzz"}, []string{}},
		{"exact excluded", "x", []string{"x"}, []string{}},
		{"empty", "", []string{"x"}, nil},
		{"capped", "aaaa", []string{"aaab", "aaac", "aaad", "aaae"}, []string{"aaab", "aaac", "aaad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SuggestSimilar(tt.target, tt.candidates))
		})
	}
}

func TestFormatSuggestions(t *testing.T) {
	require.Equal(t, "", FormatSuggestions(nil))
	require.Equal(t, "did you mean 'foo'?", FormatSuggestions([]string{"foo"}))
	require.Equal(t, "did you mean one of: 'a', 'b'?", FormatSuggestions([]string{"a", "b"}))
}

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 0, levenshtein("abc", "abc"))
	require.Equal(t, 3, levenshtein("", "abc"))
	require.Equal(t, 3, levenshtein("kitten", "sitting"))
}

func TestFriendlyErrorMessage(t *testing.T) {
	err := &CompileError{
		Code:        E2001,
		Message:     `undefined variable "lenght"`,
		Filename:    "main.mk",
		Line:        3,
		Column:      1,
		SourceLine:  "lenght;",
		Suggestions: []string{"length"},
	}
	expected := "error[E2001]: undefined variable \"lenght\"\n" +
		"  --> main.mk:3:1\n" +
		"   |\n" +
		" 3 | lenght;\n" +
		"   | ^\n" +
		"   = hint: did you mean 'length'?\n"
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestFormatMultiple(t *testing.T) {
	errs := []*CompileError{
		{Code: E2008, Message: "too many constants"},
		{Code: E2007, Message: "too many globals"},
	}
	expected := "error[E2008]: too many constants\n\nerror[E2007]: too many globals\n"
	require.Equal(t, expected, NewFormatter(false).FormatMultiple(errs))
}
