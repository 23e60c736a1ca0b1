// Package cpu implements the microprocessor and assembler for the pagecpu system.
//
// The CPU is an 8-bit Harvard design: 1024 bytes of ROM arranged as 32 pages
// of 32 words, a 5-bit program counter (PC) within the current page, a page
// register, seven 8-bit registers plus the hard-wired zero register r0, an
// accumulator, the zero/msb/carry flags, 32 bytes of RAM, and eight I/O ports.
//
// Every instruction word is a 5-bit opcode followed by a 3-bit operand. LDI,
// ICS and BRC consume the following word as an immediate.
//
// The assembler provides a small assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
