// Package console implements the boot code processor of the handheld game console.
//
// The processor has a single signed accumulator, a program counter, and three
// instructions: nop, acc and jmp. A run ends either by falling off the end of
// the program, or by reaching an instruction already executed during the run,
// which proves an infinite loop.
//
// Repair locates the single corrupted instruction of a looping program by
// exchanging each nop for a jmp (and each jmp for a nop) in turn, until the
// program terminates normally.
//
// The assembler reads the console listing format (one "op +n" per line),
// with support for comments, labels, equates, and compile-time expression
// evaluation.
package console
