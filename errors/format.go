package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders compile errors in a compiler-diagnostic style:
//
//	error[E2001]: undefined variable "lenght"
//	  --> main.mk:3:5
//	   |
//	 3 | lenght;
//	   | ^
//	   = hint: did you mean 'length'?
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

func (f *Formatter) paint(attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if f.UseColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Format formats a single compile error.
func (f *Formatter) Format(err *CompileError) string {
	var (
		errColor  = f.paint(color.FgHiRed, color.Bold)
		codeColor = f.paint(color.FgHiBlack)
		locColor  = f.paint(color.FgCyan)
		pipe      = f.paint(color.FgHiBlack)
		caret     = f.paint(color.FgHiRed)
		hint      = f.paint(color.FgHiYellow)
	)
	var b strings.Builder
	b.WriteString(errColor("error"))
	if err.Code != "" {
		b.WriteString(codeColor(fmt.Sprintf("[%s]", err.Code)))
	}
	b.WriteString(": ")
	b.WriteString(err.Message)
	b.WriteString("\n")

	width := len(fmt.Sprintf("%d", err.Line))
	if width < 2 {
		width = 2
	}
	padding := strings.Repeat(" ", width)

	if err.Line > 0 || err.Filename != "" {
		loc := err.Filename
		if err.Line > 0 {
			if loc != "" {
				loc += ":"
			}
			loc += fmt.Sprintf("%d:%d", err.Line, err.Column)
		}
		b.WriteString(padding)
		b.WriteString(locColor("-->"))
		b.WriteString(" ")
		b.WriteString(locColor(loc))
		b.WriteString("\n")
	}

	if err.SourceLine != "" {
		b.WriteString(padding + pipe(" |") + "\n")
		b.WriteString(fmt.Sprintf("%*d", width, err.Line))
		b.WriteString(pipe(" | "))
		b.WriteString(err.SourceLine)
		b.WriteString("\n")
		if err.Column > 0 {
			b.WriteString(padding + pipe(" | "))
			b.WriteString(strings.Repeat(" ", err.Column-1))
			b.WriteString(caret("^"))
			b.WriteString("\n")
		}
	}

	if h := err.Hint(); h != "" {
		b.WriteString(padding)
		b.WriteString(" = ")
		b.WriteString(hint("hint: " + h))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatMultiple formats several errors separated by blank lines.
func (f *Formatter) FormatMultiple(errs []*CompileError) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, f.Format(err))
	}
	return strings.Join(parts, "\n")
}
