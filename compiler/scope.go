package compiler

import "github.com/Yag000/Interpreter-Monkey/op"

type emitted struct {
	code op.Code
	pos  int
	ok   bool
}

// scope is the instruction buffer of one function body, or of the top
// level program.
type scope struct {
	name         string
	instructions op.Instructions
	last         emitted
	previous     emitted
}

func (s *scope) add(code op.Code, ins []byte) int {
	pos := len(s.instructions)
	s.instructions = append(s.instructions, ins...)
	s.previous = s.last
	s.last = emitted{code: code, pos: pos, ok: true}
	return pos
}

func (s *scope) lastIs(code op.Code) bool {
	return s.last.ok && s.last.code == code
}

// removeLast truncates the stream to just before the last instruction.
// Only one level of history is kept, so it must not be called twice in a
// row.
func (s *scope) removeLast() {
	if !s.last.ok {
		return
	}
	s.instructions = s.instructions[:s.last.pos]
	s.last = s.previous
	s.previous = emitted{}
}

// replaceLastPopWithReturn rewrites a trailing POP_TOP in place. Both
// instructions are one byte wide.
func (s *scope) replaceLastPopWithReturn() {
	s.instructions[s.last.pos] = byte(op.ReturnValue)
	s.last.code = op.ReturnValue
}
