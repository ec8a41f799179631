// Package cpu implements the 4-bit E0C6S46 class microcontroller core and
// its assembler.
//
// The core consists of a 13-bit program counter with a page register (NP),
// two 12-bit index registers (X, Y), two 4-bit accumulators (A, B), an 8-bit
// stack pointer and four flags (C, Z, D, I). The data space is a nibble
// memory holding RAM, two LCD display banks and memory-mapped I/O registers.
// Six interrupt sources with fixed priority, a clock timer and a
// programmable timer complete the core.
//
// The assembler accepts the same syntax the disassembler prints, with
// labels, equates, macros and compile-time expression evaluation.
package cpu
