package console

import (
	"errors"
	"fmt"
	"log"
)

// State is the execution state of a machine run.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_LOOP    = State(2) // loop
)

// Machine is the simulation context of the console processor.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Acc   int // Accumulator.
	Pc    int // Program counter; Program.Len() is the normal exit.
	Ticks int // Instructions executed since reset.

	visited []bool // Per-instruction executed flags, one per opcode.
}

// NewMachine creates a new machine for a program.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{
		Program: prog,
	}

	return
}

// String returns the current machine state as a string.
func (m *Machine) String() string {
	return fmt.Sprintf("pc: %03d acc: %d ticks: %d", m.Pc, m.Acc, m.Ticks)
}

// Reset the machine to a cold start.
// - Clears the accumulator, program counter, and tick counter.
// - Clears all visited flags.
func (m *Machine) Reset() (err error) {
	if m.Program == nil || m.Program.Len() == 0 {
		err = ErrProgramEmpty
		return
	}

	count := m.Program.Len()
	if cap(m.visited) < count {
		m.visited = make([]bool, count)
	} else {
		m.visited = m.visited[:count]
		clear(m.visited)
	}

	m.Acc = 0
	m.Pc = 0
	m.Ticks = 0

	if m.Verbose {
		log.Printf("console: reset")
	}

	return
}

// Visited returns true if the instruction at index was executed during this run.
func (m *Machine) Visited(index int) bool {
	if index < 0 || index >= len(m.visited) {
		return false
	}

	return m.visited[index]
}

// Tick performs a single step of the machine.
//
// A program counter at the end of the program halts the machine, and a
// program counter on an already executed instruction detects a loop.
// Otherwise the instruction is executed and the machine remains running.
func (m *Machine) Tick() (state State, err error) {
	if m.Program == nil || len(m.visited) != m.Program.Len() {
		err = m.Reset()
		if err != nil {
			return
		}
	}

	if m.Pc == len(m.visited) {
		state = STATE_HALTED
		return
	}

	if m.visited[m.Pc] {
		if m.Verbose {
			log.Printf("%03d: loop detected, acc %d", m.Pc, m.Acc)
		}
		state = STATE_LOOP
		return
	}

	m.visited[m.Pc] = true

	err = m.Execute(m.Program.At(m.Pc))
	if err != nil {
		return
	}

	m.Ticks++

	state = STATE_RUNNING
	return
}

// Execute executes a single instruction at the current program counter.
func (m *Machine) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Pc: m.Pc, Instruction: inst}, err)
		}
	}()

	if m.Verbose {
		log.Printf("%03d: %v", m.Pc, inst)
	}

	next_pc := m.Pc + 1

	switch inst.Op {
	case OP_NOP:
		// pass
	case OP_ACC:
		m.Acc += inst.Arg
	case OP_JMP:
		next_pc = m.Pc + inst.Arg
	default:
		err = ErrOpcodeInvalid
		return
	}

	if next_pc < 0 || next_pc > len(m.visited) {
		err = ErrPcRange
		return
	}

	m.Pc = next_pc

	return
}

// run ticks the machine from a cold start until it leaves the running state.
func (m *Machine) run() (state State, err error) {
	err = m.Reset()
	if err != nil {
		return
	}

	for state == STATE_RUNNING {
		state, err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}

// RunUntilLoop runs the program from a cold start until an instruction
// is about to execute a second time, and returns the accumulator at that point.
//
// If the program halts normally instead, the final accumulator is returned
// along with ErrNoLoop.
func (m *Machine) RunUntilLoop() (acc int, err error) {
	state, err := m.run()
	if err != nil {
		return
	}

	acc = m.Acc
	if state != STATE_LOOP {
		err = ErrNoLoop
	}

	return
}

// RunToCompletion runs the program from a cold start. If the program halts
// normally, the final accumulator is returned and ok is true. If a loop is
// detected, ok is false.
func (m *Machine) RunToCompletion() (acc int, ok bool, err error) {
	state, err := m.run()
	if err != nil {
		return
	}

	if state == STATE_HALTED {
		acc = m.Acc
		ok = true
	}

	return
}
