package console

import (
	"errors"

	"github.com/ezrec/handheld/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrProgramEmpty = errors.New(f("program empty"))
	ErrPcRange      = errors.New(f("pc out of range"))
	ErrNoLoop       = errors.New(f("program halted without a loop"))
	ErrRepairNone   = errors.New(f("no single instruction repair terminates"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrInstruction reports a failure while executing a specific instruction.
type ErrInstruction struct {
	Pc          int
	Instruction Instruction
}

func (ei ErrInstruction) Error() string {
	return f("pc %d: %v", ei.Pc, ei.Instruction.String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
