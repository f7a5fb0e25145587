package console

import (
	"iter"
	"strings"
)

// Opcode is a single program slot, with its source location if assembled.
type Opcode struct {
	LineNo      int
	Words       []string
	Instruction Instruction
}

// Program is an ordered list of opcodes, indexed from zero.
type Program struct {
	Opcodes []Opcode
}

// NewProgram creates a program from a sequence of decoded instructions.
func NewProgram(insts ...Instruction) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, len(insts)),
	}

	for n, inst := range insts {
		prog.Opcodes[n].Instruction = inst
	}

	return
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// At returns the instruction at index.
func (prog *Program) At(index int) Instruction {
	return prog.Opcodes[index].Instruction
}

// SwapCandidate returns the nop/jmp exchanged instruction at index.
// The program is not modified.
func (prog *Program) SwapCandidate(index int) (inst Instruction, ok bool) {
	return prog.At(index).Swap()
}

// Patch replaces the instruction at index, returning the prior instruction.
func (prog *Program) Patch(index int, inst Instruction) (orig Instruction) {
	op := &prog.Opcodes[index]
	orig = op.Instruction
	op.Instruction = inst
	return
}

// Restore puts back an instruction previously returned by Patch.
func (prog *Program) Restore(index int, orig Instruction) {
	prog.Opcodes[index].Instruction = orig
}

// Debug returns the opcode for a program counter, or nil if out of range.
func (prog *Program) Debug(pc int) (op *Opcode) {
	if pc < 0 || pc >= len(prog.Opcodes) {
		return
	}

	return &prog.Opcodes[pc]
}

// Instructions iterates over the program's index and instructions.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(index int, inst Instruction) bool) {
		for n, op := range prog.Opcodes {
			if !yield(n, op.Instruction) {
				return
			}
		}
	}
}

// String returns the program listing, one instruction per line.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, inst := range prog.Instructions() {
		sb.WriteString(inst.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}
