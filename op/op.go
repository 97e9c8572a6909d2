// Package op defines the opcodes shared by the compiler and virtual machine
// and the binary layout of each instruction.
package op

// Code is a one byte opcode that indicates an operation to execute.
type Code byte

const (
	Invalid Code = 0

	// Execution
	Call        Code = 1
	ReturnValue Code = 2

	// Jump
	Jump            Code = 10
	JumpIfNotTruthy Code = 11

	// Load
	LoadConst  Code = 20
	LoadGlobal Code = 21

	// Store
	StoreGlobal Code = 30

	// Operations
	Add            Code = 40
	Sub            Code = 41
	Mul            Code = 42
	Div            Code = 43
	Equal          Code = 44
	NotEqual       Code = 45
	GreaterThan    Code = 46
	GreaterOrEqual Code = 47
	And            Code = 48
	Or             Code = 49
	Not            Code = 50
	Negate         Code = 51

	// Build
	BuildArray Code = 60
	BuildHash  Code = 61

	// Containers
	Index Code = 70

	// Stack
	PopTop Code = 80

	// Push constants
	Null  Code = 90
	False Code = 91
	True  Code = 92
)

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// OperandWidths holds the byte width of each operand, in order.
	OperandWidths []int
}

// OperandCount returns the number of operands the opcode takes.
func (i Info) OperandCount() int {
	return len(i.OperandWidths)
}

// Width returns the total encoded size of the instruction in bytes.
func (i Info) Width() int {
	n := 1
	for _, w := range i.OperandWidths {
		n += w
	}
	return n
}

var (
	infos   [256]Info
	defined [256]bool
)

func init() {
	type opInfo struct {
		op     Code
		name   string
		widths []int
	}
	ops := []opInfo{
		{Add, "ADD", nil},
		{And, "AND", nil},
		{BuildArray, "BUILD_ARRAY", []int{2}},
		{BuildHash, "BUILD_HASH", []int{2}},
		{Call, "CALL", nil},
		{Div, "DIV", nil},
		{Equal, "EQUAL", nil},
		{False, "FALSE", nil},
		{GreaterOrEqual, "GREATER_OR_EQUAL", nil},
		{GreaterThan, "GREATER_THAN", nil},
		{Index, "INDEX", nil},
		{Jump, "JUMP", []int{2}},
		{JumpIfNotTruthy, "JUMP_IF_NOT_TRUTHY", []int{2}},
		{LoadConst, "LOAD_CONST", []int{2}},
		{LoadGlobal, "LOAD_GLOBAL", []int{2}},
		{Mul, "MUL", nil},
		{Negate, "NEGATE", nil},
		{Not, "NOT", nil},
		{NotEqual, "NOT_EQUAL", nil},
		{Null, "NULL", nil},
		{Or, "OR", nil},
		{PopTop, "POP_TOP", nil},
		{ReturnValue, "RETURN_VALUE", nil},
		{StoreGlobal, "STORE_GLOBAL", []int{2}},
		{Sub, "SUB", nil},
		{True, "TRUE", nil},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:          o.op,
			Name:          o.name,
			OperandWidths: o.widths,
		}
		defined[o.op] = true
	}
}

// GetInfo returns information about the given opcode. The zero Info is
// returned for an undefined opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// Lookup returns information about the opcode stored in byte b.
func Lookup(b byte) (Info, bool) {
	if !defined[b] {
		return Info{}, false
	}
	return infos[b], true
}

// String returns the opcode name, e.g. "LOAD_CONST".
func (c Code) String() string {
	if !defined[c] {
		return "INVALID"
	}
	return infos[c].Name
}

// All returns every defined opcode in ascending order.
func All() []Code {
	var codes []Code
	for i := range defined {
		if defined[i] {
			codes = append(codes, Code(i))
		}
	}
	return codes
}
