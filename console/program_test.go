package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_Swap(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		inst Instruction
		swap Instruction
		ok   bool
	}){
		{"nop", Nop(3), Jmp(3), true},
		{"jmp", Jmp(-4), Nop(-4), true},
		{"acc", Acc(7), Instruction{}, false},
	}

	for _, entry := range table {
		swap, ok := entry.inst.Swap()
		assert.Equal(entry.ok, ok, entry.name)
		assert.Equal(entry.swap, swap, entry.name)
	}
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("nop +0", Nop(0).String())
	assert.Equal("acc -99", Acc(-99).String())
	assert.Equal("jmp +4", Jmp(4).String())
	assert.Equal("Op(9) +1", Instruction{Op: Op(9), Arg: 1}.String())
}

func TestProgram_SwapCandidate(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(Nop(0), Acc(1), Jmp(-1))
	assert.Equal(3, prog.Len())

	inst, ok := prog.SwapCandidate(0)
	assert.True(ok)
	assert.Equal(Jmp(0), inst)

	_, ok = prog.SwapCandidate(1)
	assert.False(ok)

	inst, ok = prog.SwapCandidate(2)
	assert.True(ok)
	assert.Equal(Nop(-1), inst)

	// Candidates never modify the program.
	assert.Equal(Nop(0), prog.At(0))
	assert.Equal(Jmp(-1), prog.At(2))
}

func TestProgram_PatchRestore(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(Nop(0), Acc(1), Jmp(-1))

	orig := prog.Patch(2, Nop(-1))
	assert.Equal(Jmp(-1), orig)
	assert.Equal(Nop(-1), prog.At(2))
	assert.Equal(Nop(0), prog.At(0))
	assert.Equal(Acc(1), prog.At(1))

	prog.Restore(2, orig)
	assert.Equal(Jmp(-1), prog.At(2))
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 2, Words: []string{"acc", "+1"}, Instruction: Acc(1)},
			{LineNo: 4, Words: []string{"jmp", "-1"}, Instruction: Jmp(-1)},
		},
	}

	op := prog.Debug(1)
	assert.NotNil(op)
	assert.Equal(4, op.LineNo)

	assert.Nil(prog.Debug(2))
	assert.Nil(prog.Debug(-1))
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(Nop(0), Acc(1), Jmp(-1))
	assert.Equal("nop +0\nacc +1\njmp -1\n", prog.String())

	var seen []int
	for n := range prog.Instructions() {
		if n == 1 {
			break
		}
		seen = append(seen, n)
	}
	assert.Equal([]int{0}, seen)
}
