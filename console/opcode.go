package console

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP = Op(0) // nop
	OP_ACC = Op(1) // acc
	OP_JMP = Op(2) // jmp
)

// opMap maps mnemonics to operations.
var opMap = map[string]Op{
	"nop": OP_NOP,
	"acc": OP_ACC,
	"jmp": OP_JMP,
}

// Instruction is a single decoded operation and its signed operand.
type Instruction struct {
	Op  Op
	Arg int
}

// Nop creates a no-operation instruction. The operand is carried, but unused.
func Nop(arg int) Instruction {
	return Instruction{Op: OP_NOP, Arg: arg}
}

// Acc creates an instruction adding arg to the accumulator.
func Acc(arg int) Instruction {
	return Instruction{Op: OP_ACC, Arg: arg}
}

// Jmp creates an instruction moving the program counter by arg.
func Jmp(arg int) Instruction {
	return Instruction{Op: OP_JMP, Arg: arg}
}

// Swap returns the instruction with nop and jmp exchanged.
// An acc instruction has no swap, and ok is false.
func (inst Instruction) Swap() (swapped Instruction, ok bool) {
	switch inst.Op {
	case OP_NOP:
		return Jmp(inst.Arg), true
	case OP_JMP:
		return Nop(inst.Arg), true
	}

	return
}

// String returns the listing representation of the instruction.
func (inst Instruction) String() string {
	return fmt.Sprintf("%v %+d", inst.Op.String(), inst.Arg)
}
