package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/handheld/console"
)

var bootCode = []string{
	"nop +0",
	"acc +1",
	"jmp +4",
	"acc +3",
	"jmp -3",
	"acc -99",
	"acc +1",
	"jmp -4",
	"acc +6",
}

func doLoad(emu *Emulator, program []string, t *testing.T) {
	err := emu.Load(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.ErrorIs(emu.Reset(), console.ErrProgramEmpty)
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, bootCode, t)
	assert.NoError(emu.Reset())

	lines := []int{1, 2, 3, 7, 8, 4, 5}
	for _, lineno := range lines {
		assert.Equal(lineno, emu.LineNo())
		assert.Equal(strings.Join(emu.Program.Opcodes[lineno-1].Words, " "), emu.Code().String())
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(2, emu.LineNo())
	assert.Equal(5, emu.Acc)
	assert.Equal(len(lines), emu.Ticks())
}

func TestEmulatorLoop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, bootCode, t)

	acc, err := emu.Loop()
	assert.NoError(err)
	assert.Equal(5, acc)

	_, ok, err := emu.Complete()
	assert.NoError(err)
	assert.False(ok)
}

func TestEmulatorRepair(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Verbose = true
	doLoad(emu, bootCode, t)

	fix, err := emu.Repair()
	assert.NoError(err)
	assert.Equal(7, fix.Index)
	assert.Equal(8, fix.Acc)

	acc, ok, err := emu.Complete()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(8, acc)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{
		"; falls off the front",
		"acc +1",
		"jmp -2",
	}, t)

	_, err := emu.Loop()
	assert.ErrorIs(err, console.ErrPcRange)

	rt, ok := err.(*ErrRuntime)
	if assert.True(ok) {
		assert.Equal(3, rt.LineNo)
	}

	assert.NoError(emu.Reset())
	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	_, err = emu.Tick()
	assert.ErrorIs(err, console.ErrPcRange)
	rt, ok = err.(*ErrRuntime)
	if assert.True(ok) {
		assert.Equal(3, rt.LineNo)
	}
}

func TestEmulatorPredefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Predefines = map[string]string{"SKIP": "2"}
	doLoad(emu, []string{
		"jmp SKIP",
		"acc -99",
		"acc $(SKIP * 3)",
	}, t)

	acc, ok, err := emu.Complete()
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(6, acc)

	acc, err = emu.Loop()
	assert.ErrorIs(err, console.ErrNoLoop)
	assert.Equal(6, acc)
}

func TestEmulatorLoadError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Load(strings.NewReader("acc +1\nret\n"))
	assert.ErrorIs(err, console.ErrOpcodeInvalid)
	assert.Equal(0, emu.Program.Len())
}
