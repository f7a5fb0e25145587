// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"io"
	"log"

	"github.com/ezrec/handheld/console"
)

// Emulator state. Console machine + program listing.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*console.Machine                  // Reference to the console simulation.
	Program          *console.Program // Reference to the currently loaded program listing.

	Predefines map[string]string // Assembler predefined equates.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	prog := &console.Program{}

	emu = &Emulator{
		Machine: console.NewMachine(prog),
		Program: prog,
	}

	return
}

// Load assembles a listing and makes it the current program.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &console.Assembler{
		Verbose: emu.Verbose,
	}
	for equ, value := range emu.Predefines {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset the emulator state to a cold start.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Program = emu.Program

	err = emu.Machine.Reset()

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() console.Instruction {
	op := emu.Program.Debug(emu.Machine.Pc)
	if op == nil {
		return console.Instruction{}
	}

	return op.Instruction
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Machine.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// runtime wraps an error with the current line number.
func (emu *Emulator) runtime(err error) error {
	if err == nil {
		return nil
	}

	var rt *ErrRuntime
	if errors.As(err, &rt) {
		return err
	}

	return &ErrRuntime{LineNo: emu.LineNo(), Err: err}
}

// Tick performs a single tick of the emulator.
// done is set once the program has halted, or a loop was detected.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	state, err := emu.Machine.Tick()
	if err != nil {
		return
	}

	done = state != console.STATE_RUNNING
	return
}

// Loop runs the program until a loop is detected, and returns the accumulator.
func (emu *Emulator) Loop() (acc int, err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	acc, err = emu.Machine.RunUntilLoop()
	err = emu.runtime(err)

	return
}

// Complete runs the program to normal termination, and returns the accumulator.
func (emu *Emulator) Complete() (acc int, ok bool, err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	acc, ok, err = emu.Machine.RunToCompletion()
	err = emu.runtime(err)

	return
}

// Repair finds and applies the single instruction repair.
func (emu *Emulator) Repair() (fix console.Fix, err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	fix, err = emu.Machine.Repair()
	if err != nil {
		return
	}

	if emu.Verbose {
		op := emu.Program.Debug(fix.Index)
		log.Printf("line %d: %v -> %v", op.LineNo, fix.Original, fix.Patched)
	}

	return
}
