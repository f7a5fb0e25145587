// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package console

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// reIdent matches label and equate names.
var reIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Assembler is a single pass assembler for the console listing format.
//
// Each line holds at most one instruction, "op arg", where op is one of
// nop, acc or jmp, and arg is a signed number, an equate, a label, or a
// $(...) compile time expression. Jumps to a label are encoded as the
// relative offset to the label.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to opcode indexes.
	Equate    map[string]string // Map of equates.

	links map[int]string // Map of opcode indexes to unresolved labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	equ, ok := asm.Equate[word]
	if ok {
		word = equ
	}

	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseEquate handles '.equ NAME value'
func (asm *Assembler) parseEquate(words []string) (err error) {
	if len(words) != 3 || !reIdent.MatchString(words[1]) {
		err = ErrEquateSyntax
		return
	}

	name := words[1]
	_, ok := asm.Equate[name]
	if ok {
		err = ErrEquateDuplicate
		return
	}
	_, ok = asm.Label[name]
	if ok {
		err = ErrEquateDuplicate
		return
	}

	value, err := asm.valueOf(words[2])
	if err != nil {
		return
	}

	asm.Equate[name] = strconv.Itoa(value)
	return
}

// parseLabel handles 'NAME:'
func (asm *Assembler) parseLabel(word string) (err error) {
	name := strings.TrimSuffix(word, ":")
	if !reIdent.MatchString(name) {
		err = ErrLabelSyntax
		return
	}

	_, ok := asm.Label[name]
	if ok {
		err = ErrLabelDuplicate
		return
	}
	_, ok = asm.Equate[name]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	asm.Label[name] = len(asm.Opcode)
	return
}

// parseInstruction handles 'op arg'
func (asm *Assembler) parseInstruction(words []string, lineno int) (err error) {
	op, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if len(words) < 2 {
		err = ErrOpcodeValueMissing
		return
	}

	// Expressions may contain spaces.
	arg := strings.Join(words[1:], " ")
	if !strings.HasPrefix(arg, "$(") && len(words) > 2 {
		err = ErrOpcodeExtraArgs
		return
	}

	opcode := Opcode{
		LineNo:      lineno,
		Words:       slices.Clone(words),
		Instruction: Instruction{Op: op},
	}

	_, is_equate := asm.Equate[arg]
	if !is_equate && reIdent.MatchString(arg) {
		// Resolved once all labels are known.
		asm.links[len(asm.Opcode)] = arg
	} else {
		opcode.Instruction.Arg, err = asm.valueOf(arg)
		if err != nil {
			return
		}
	}

	asm.Opcode = append(asm.Opcode, opcode)
	return
}

// Parse assembles a listing into a program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	if asm.Label == nil {
		asm.Label = make(map[string]int)
	}
	clear(asm.Label)
	asm.links = make(map[int]string)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		asm.Equate["LINENO"] = strconv.Itoa(lineno)

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		if len(words) > 0 && words[0] == ".equ" {
			err = asm.parseEquate(words)
			if err != nil {
				return
			}
			continue
		}

		if len(words) > 0 && strings.HasSuffix(words[0], ":") {
			err = asm.parseLabel(words[0])
			if err != nil {
				return
			}
			words = words[1:]
		}

		if len(words) == 0 {
			continue
		}

		err = asm.parseInstruction(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels, as relative offsets.
	for _, index := range slices.Sorted(maps.Keys(asm.links)) {
		op := &asm.Opcode[index]
		label := asm.links[index]

		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		target, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		op.Instruction.Arg = target - index
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
