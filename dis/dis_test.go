package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/compiler"
	. "github.com/Yag000/Interpreter-Monkey/internal/asttest"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

func TestFunctionDisassembly(t *testing.T) {
	// Disable colors for consistent test output
	color.NoColor = true
	defer func() { color.NoColor = false }()

	bc, err := compiler.Compile(Program(
		Let("f", Fn(Expr(Int(42)), Expr(Str("kaboom")))),
		Expr(Call(Ident("f"))),
	), nil)
	require.Nil(t, err)

	fn, ok := FindFunction(bc, "f")
	require.True(t, ok)
	instructions, err := Disassemble(fn.Instructions(), bc.Constants)
	require.Nil(t, err)

	var buf bytes.Buffer
	Print(instructions, &buf)

	expected := strings.TrimSpace(`
+--------+--------------+----------+----------+
| OFFSET |    OPCODE    | OPERANDS |   INFO   |
+--------+--------------+----------+----------+
|      0 | LOAD_CONST   |        0 | 42       |
|      3 | POP_TOP      |          |          |
|      4 | LOAD_CONST   |        1 | "kaboom" |
|      7 | RETURN_VALUE |          |          |
+--------+--------------+----------+----------+
`)
	require.Equal(t, expected+"\n", buf.String())
}

func TestDisassembleAnnotations(t *testing.T) {
	bc, err := compiler.Compile(Program(
		Let("x", Int(1)),
		Expr(If(Ident("x"), Block(Expr(Int(2))), nil)),
	), nil)
	require.Nil(t, err)

	instructions, err := DisassembleBytecode(bc)
	require.Nil(t, err)

	var names []string
	for _, instr := range instructions {
		names = append(names, instr.Name)
	}
	require.Equal(t, []string{
		"LOAD_CONST", "STORE_GLOBAL", "LOAD_GLOBAL", "JUMP_IF_NOT_TRUTHY",
		"LOAD_CONST", "JUMP", "NULL", "POP_TOP",
	}, names)

	require.Equal(t, object.NewInt(1), instructions[0].Constant)
	require.Equal(t, "1", instructions[0].Annotation)
	require.Equal(t, "global 0", instructions[1].Annotation)
	require.Equal(t, "global 0", instructions[2].Annotation)
	require.Equal(t, "-> 18", instructions[3].Annotation)
	require.Equal(t, 18, instructions[6].Offset)
	require.Equal(t, "-> 19", instructions[5].Annotation)
}

func TestDisassembleErrors(t *testing.T) {
	_, err := Disassemble(op.Instructions{255}, nil)
	require.ErrorIs(t, err, op.ErrUnknownOpcode)

	_, err = Disassemble(op.Instructions{byte(op.Jump), 0}, nil)
	require.EqualError(t, err, "truncated JUMP instruction at offset 0")

	var tail op.Instructions
	tail = append(tail, op.Make(op.True)...)
	tail = append(tail, op.Make(op.Jump, 4)...)
	instructions, err := Disassemble(tail, nil)
	require.Nil(t, err)
	require.Len(t, instructions, 2)
	require.Equal(t, "JUMP", instructions[1].Name)
	require.Equal(t, []int{4}, instructions[1].Operands)

	instructions, err = Disassemble(op.Make(op.LoadConst, 9), nil)
	require.Nil(t, err)
	require.Equal(t, "<out of range>", instructions[0].Annotation)
	require.Nil(t, instructions[0].Constant)
}

func TestFunctions(t *testing.T) {
	bc := &bytecode.Bytecode{Constants: []object.Object{
		object.NewInt(1),
		object.NewFunction("a", nil),
		object.NewFunction("", nil),
	}}
	require.Len(t, Functions(bc), 2)
	_, ok := FindFunction(bc, "missing")
	require.False(t, ok)
}
