// Package dis renders compiled bytecode as a human readable listing.
package dis

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Yag000/Interpreter-Monkey/bytecode"
	"github.com/Yag000/Interpreter-Monkey/object"
	"github.com/Yag000/Interpreter-Monkey/op"
)

// Instruction is one decoded instruction.
type Instruction struct {
	Offset   int
	Opcode   op.Code
	Name     string
	Operands []int
	// Annotation describes the operand: the constant it loads, the
	// global slot it names, or the target of a jump.
	Annotation string
	// Constant is set when the instruction loads a constant.
	Constant object.Object
}

// Disassemble decodes an instruction stream. Constants referenced by
// LOAD_CONST are taken from constants, which may be nil.
func Disassemble(ins op.Instructions, constants []object.Object) ([]Instruction, error) {
	var out []Instruction
	for pos := 0; pos < len(ins); {
		info, operands, err := ins.ReadAt(pos)
		if errors.Is(err, op.ErrTruncated) {
			return nil, fmt.Errorf("truncated %s instruction at offset %d", info.Name, pos)
		}
		if err != nil {
			return nil, err
		}
		instr := Instruction{
			Offset:   pos,
			Opcode:   info.Code,
			Name:     info.Name,
			Operands: operands,
		}
		annotate(&instr, constants)
		out = append(out, instr)
		pos += info.Width()
	}
	return out, nil
}

// DisassembleBytecode decodes the top level stream of bc.
func DisassembleBytecode(bc *bytecode.Bytecode) ([]Instruction, error) {
	return Disassemble(bc.Instructions, bc.Constants)
}

func annotate(instr *Instruction, constants []object.Object) {
	switch instr.Opcode {
	case op.LoadConst:
		idx := instr.Operands[0]
		if idx < len(constants) {
			instr.Constant = constants[idx]
			instr.Annotation = constants[idx].Inspect()
		} else {
			instr.Annotation = "<out of range>"
		}
	case op.LoadGlobal, op.StoreGlobal:
		instr.Annotation = fmt.Sprintf("global %d", instr.Operands[0])
	case op.Jump, op.JumpIfNotTruthy:
		instr.Annotation = fmt.Sprintf("-> %d", instr.Operands[0])
	}
}

// Functions returns the function constants of bc in pool order.
func Functions(bc *bytecode.Bytecode) []*object.Function {
	var fns []*object.Function
	for _, c := range bc.Constants {
		if fn, ok := c.(*object.Function); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// FindFunction returns the first function constant with the given name.
func FindFunction(bc *bytecode.Bytecode, name string) (*object.Function, bool) {
	for _, fn := range Functions(bc) {
		if fn.Name() == name {
			return fn, true
		}
	}
	return nil, false
}

var opcodeColor = color.New(color.FgCyan)

// Print writes instructions to w as a table. Opcode names are colored
// unless color output is disabled.
func Print(instructions []Instruction, w io.Writer) {
	headers := []string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}
	rows := make([][]string, 0, len(instructions))
	for _, instr := range instructions {
		operands := make([]string, len(instr.Operands))
		for i, o := range instr.Operands {
			operands[i] = fmt.Sprint(o)
		}
		rows = append(rows, []string{
			fmt.Sprint(instr.Offset),
			instr.Name,
			strings.Join(operands, " "),
			instr.Annotation,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	border := "+"
	for _, width := range widths {
		border += strings.Repeat("-", width+2) + "+"
	}

	fmt.Fprintln(w, border)
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = center(h, widths[i])
	}
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	fmt.Fprintln(w, border)
	for _, row := range rows {
		cells[0] = fmt.Sprintf("%*s", widths[0], row[0])
		cells[1] = opcodeColor.Sprint(fmt.Sprintf("%-*s", widths[1], row[1]))
		cells[2] = fmt.Sprintf("%*s", widths[2], row[2])
		cells[3] = fmt.Sprintf("%-*s", widths[3], row[3])
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintln(w, border)
}

func center(s string, width int) string {
	pad := width - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
