package errors

// ErrorCode represents a unique identifier for compile error types.
type ErrorCode string

const (
	E2001 ErrorCode = "E2001" // Undefined variable
	E2007 ErrorCode = "E2007" // Too many globals
	E2008 ErrorCode = "E2008" // Too many constants
	E2011 ErrorCode = "E2011" // Unknown operator
	E2012 ErrorCode = "E2012" // Operand out of range
	E2013 ErrorCode = "E2013" // Invalid backpatch target
	E2014 ErrorCode = "E2014" // Unsupported syntax node
)

var codeDescriptions = map[ErrorCode]string{
	E2001: "undefined variable",
	E2007: "too many globals",
	E2008: "too many constants",
	E2011: "unknown operator",
	E2012: "operand out of range",
	E2013: "invalid backpatch target",
	E2014: "unsupported syntax node",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}
