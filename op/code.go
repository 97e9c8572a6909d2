package op

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnknownOpcode is returned when a byte does not map to any opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrTruncated is returned when an instruction's operands run past the
	// end of the stream.
	ErrTruncated = errors.New("truncated instruction")
)

// Instructions is an encoded instruction stream.
type Instructions []byte

// Make encodes an instruction. The number of operands must match the
// opcode's signature; a mismatch is a programming error and panics.
func Make(code Code, operands ...int) []byte {
	info, ok := Lookup(byte(code))
	if !ok {
		panic(fmt.Sprintf("op: make called with undefined opcode %d", code))
	}
	if len(operands) != info.OperandCount() {
		panic(fmt.Sprintf("op: wrong operand count for %s: want %d, got %d",
			info.Name, info.OperandCount(), len(operands)))
	}
	ins := make([]byte, info.Width())
	ins[0] = byte(code)
	offset := 1
	for i, operand := range operands {
		width := info.OperandWidths[i]
		putOperand(ins[offset:], width, operand)
		offset += width
	}
	return ins
}

func putOperand(dst []byte, width, value int) {
	if value < 0 || value > maxOperand(width) {
		panic(fmt.Sprintf("op: operand %d out of range [0, %d]", value, maxOperand(width)))
	}
	switch width {
	case 2:
		binary.BigEndian.PutUint16(dst, uint16(value))
	case 1:
		dst[0] = byte(value)
	}
}

// maxOperand returns the largest value an operand of the given width
// can hold.
func maxOperand(width int) int {
	switch width {
	case 2:
		return math.MaxUint16
	case 1:
		return math.MaxUint8
	}
	panic(fmt.Sprintf("op: unsupported operand width %d", width))
}

// Decode returns the opcode stored at position pos of the stream.
func (ins Instructions) Decode(pos int) (Code, error) {
	if pos < 0 || pos >= len(ins) {
		return Invalid, fmt.Errorf("position %d out of range (length %d)", pos, len(ins))
	}
	if _, ok := Lookup(ins[pos]); !ok {
		return Invalid, fmt.Errorf("%w %d at position %d", ErrUnknownOpcode, ins[pos], pos)
	}
	return Code(ins[pos]), nil
}

// ReadAt decodes the instruction at pos and returns its opcode info and
// operands. The instruction occupies info.Width() bytes. When the
// operands run past the end of the stream the error wraps ErrTruncated
// and info is still returned.
func (ins Instructions) ReadAt(pos int) (Info, []int, error) {
	code, err := ins.Decode(pos)
	if err != nil {
		return Info{}, nil, err
	}
	info := GetInfo(code)
	if pos+info.Width() > len(ins) {
		return info, nil, fmt.Errorf("%w: %s at position %d", ErrTruncated, info.Name, pos)
	}
	operands, _ := ReadOperands(info, ins[pos+1:])
	return info, operands, nil
}

// ReadOperands decodes the operands that follow an opcode. The slice ins
// must begin at the first operand byte. It returns the operands and the
// number of bytes read.
func ReadOperands(info Info, ins Instructions) ([]int, int) {
	operands := make([]int, len(info.OperandWidths))
	offset := 0
	for i, width := range info.OperandWidths {
		switch width {
		case 2:
			operands[i] = int(ReadUint16(ins[offset:]))
		case 1:
			operands[i] = int(ins[offset])
		}
		offset += width
	}
	return operands, offset
}

// ReadUint16 reads a big-endian two byte operand.
func ReadUint16(ins Instructions) uint16 {
	return binary.BigEndian.Uint16(ins)
}

// Patch overwrites the operand of the instruction at pos with value.
// The instruction keeps its width, so every other offset in the stream
// stays valid.
func (ins Instructions) Patch(pos int, value int) error {
	info, _, err := ins.ReadAt(pos)
	if err != nil && !errors.Is(err, ErrTruncated) {
		return err
	}
	if info.OperandCount() != 1 {
		return fmt.Errorf("cannot patch %s: expected one operand, has %d", info.Name, info.OperandCount())
	}
	if err != nil {
		return fmt.Errorf("cannot patch %s at %d: instruction is truncated", info.Name, pos)
	}
	if limit := maxOperand(info.OperandWidths[0]); value < 0 || value > limit {
		return fmt.Errorf("cannot patch %s at %d: operand %d out of range [0, %d]", info.Name, pos, value, limit)
	}
	copy(ins[pos:], Make(info.Code, value))
	return nil
}

// String renders the stream one instruction per line, prefixed by its
// byte offset.
func (ins Instructions) String() string {
	var out strings.Builder
	i := 0
	for i < len(ins) {
		info, operands, err := ins.ReadAt(i)
		if errors.Is(err, ErrTruncated) {
			fmt.Fprintf(&out, "ERROR: truncated %s at %04d\n", info.Name, i)
			break
		}
		if err != nil {
			fmt.Fprintf(&out, "ERROR: %s %d\n", ErrUnknownOpcode, ins[i])
			i++
			continue
		}
		fmt.Fprintf(&out, "%04d %s\n", i, formatInstruction(info, operands))
		i += info.Width()
	}
	return out.String()
}

func formatInstruction(info Info, operands []int) string {
	switch len(operands) {
	case 0:
		return info.Name
	case 1:
		return fmt.Sprintf("%s %d", info.Name, operands[0])
	}
	return fmt.Sprintf("ERROR: unhandled operand count for %s", info.Name)
}
