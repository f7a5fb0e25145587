package console

import (
	"errors"
	"log"
)

// Fix describes a successful single instruction repair.
type Fix struct {
	Index    int         // Index of the repaired instruction.
	Original Instruction // Corrupted instruction.
	Patched  Instruction // Replacement instruction.
	Acc      int         // Accumulator after normal termination.
}

// Repair searches for the single nop/jmp exchange that makes the program
// terminate normally. Candidates are tried in ascending index order, and
// the first that halts wins. The winning patch is left in the program.
//
// A candidate that jumps outside the program is rejected, and the search
// continues. If no candidate halts, ErrRepairNone is returned and the
// program is unchanged.
func (m *Machine) Repair() (fix Fix, err error) {
	if m.Program == nil || m.Program.Len() == 0 {
		err = ErrProgramEmpty
		return
	}

	for index := range m.Program.Len() {
		patched, ok := m.Program.SwapCandidate(index)
		if !ok {
			continue
		}

		orig := m.Program.Patch(index, patched)

		acc, halted, run_err := m.RunToCompletion()
		if run_err != nil && !errors.Is(run_err, ErrPcRange) {
			m.Program.Restore(index, orig)
			err = run_err
			return
		}

		if halted {
			if m.Verbose {
				log.Printf("console: repair %03d: %v -> %v, acc %d", index, orig, patched, acc)
			}
			fix = Fix{
				Index:    index,
				Original: orig,
				Patched:  patched,
				Acc:      acc,
			}
			return
		}

		if m.Verbose {
			log.Printf("console: trial %03d: %v -> %v failed after %d ticks", index, orig, patched, m.Ticks)
		}

		m.Program.Restore(index, orig)
	}

	err = ErrRepairNone
	return
}
