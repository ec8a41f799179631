// Package io provides the peripherals of the E0C6S46 class microcontroller:
// the memory-mapped I/O register map, the segmented LCD driver, the piezo
// buzzer and the three input buttons.
//
// Peripherals never hold CPU state; they translate register values into
// calls on the host adapter.
package io

import (
	"fmt"
	"iter"
	"maps"
)

// Memory map of the data space.
const (
	MEM_RAM_ADDR      = 0x000
	MEM_RAM_SIZE      = 0x280
	MEM_DISPLAY1_ADDR = 0xE00
	MEM_DISPLAY1_SIZE = 0x050
	MEM_DISPLAY2_ADDR = 0xE80
	MEM_DISPLAY2_SIZE = 0x050
	MEM_IO_ADDR       = 0xF00
	MEM_IO_SIZE       = 0x080
	MEM_SIZE          = 0x1000
)

// I/O registers.
const (
	REG_CLOCK_INT_FACTOR_FLAGS   = 0xF00 // Clock timer interrupt factors (R, clear on read).
	REG_SW_INT_FACTOR_FLAGS      = 0xF01 // Stopwatch interrupt factors (R, clear on read).
	REG_PROG_INT_FACTOR_FLAGS    = 0xF02 // Programmable timer interrupt factor (R, clear on read).
	REG_SERIAL_INT_FACTOR_FLAGS  = 0xF03 // Serial interface interrupt factor (R, clear on read).
	REG_K00_K03_INT_FACTOR_FLAGS = 0xF04 // K00-K03 interrupt factor (R, clear on read).
	REG_K10_K13_INT_FACTOR_FLAGS = 0xF05 // K10-K13 interrupt factor (R, clear on read).

	REG_CLOCK_INT_MASKS   = 0xF10
	REG_SW_INT_MASKS      = 0xF11
	REG_PROG_INT_MASKS    = 0xF12
	REG_SERIAL_INT_MASKS  = 0xF13
	REG_K00_K03_INT_MASKS = 0xF14
	REG_K10_K13_INT_MASKS = 0xF15

	REG_CLOCK_TIMER_DATA_1       = 0xF20 // 16-128Hz
	REG_CLOCK_TIMER_DATA_2       = 0xF21 // 1-8Hz
	REG_SW_TIMER_DATA_1          = 0xF22 // 1/100s
	REG_SW_TIMER_DATA_2          = 0xF23 // 1/10s
	REG_PROG_TIMER_DATA_1        = 0xF24 // Counter low nibble (R)
	REG_PROG_TIMER_DATA_2        = 0xF25 // Counter high nibble (R)
	REG_PROG_TIMER_RELOAD_DATA_1 = 0xF26 // Reload low nibble (R/W)
	REG_PROG_TIMER_RELOAD_DATA_2 = 0xF27 // Reload high nibble (R/W)

	REG_K00_K03_INPUT_PORT     = 0xF40
	REG_K00_K03_INPUT_RELATION = 0xF41
	REG_K10_K13_INPUT_PORT     = 0xF42

	REG_R40_R43_BZ_OUTPUT_PORT = 0xF54

	REG_CPU_OSC3_CTRL      = 0xF70
	REG_LCD_CTRL           = 0xF71
	REG_LCD_CONTRAST       = 0xF72
	REG_SVD_CTRL           = 0xF73
	REG_BUZZER_CTRL1       = 0xF74
	REG_BUZZER_CTRL2       = 0xF75
	REG_CLK_WD_TIMER_CTRL  = 0xF76
	REG_SW_TIMER_CTRL      = 0xF77
	REG_PROG_TIMER_CTRL    = 0xF78
	REG_PROG_TIMER_CLK_SEL = 0xF79
)

// Bits of REG_PROG_TIMER_CTRL.
const (
	PROG_TIMER_ENABLE = 0x1
	PROG_TIMER_RESET  = 0x2
)

// BZ bit of REG_R40_R43_BZ_OUTPUT_PORT, active low.
const BUZZER_OUTPUT_OFF = 0x8

var _register_defines = map[string]uint16{
	"MEM_RAM_ADDR":                 MEM_RAM_ADDR,
	"MEM_RAM_SIZE":                 MEM_RAM_SIZE,
	"MEM_DISPLAY1_ADDR":            MEM_DISPLAY1_ADDR,
	"MEM_DISPLAY2_ADDR":            MEM_DISPLAY2_ADDR,
	"MEM_IO_ADDR":                  MEM_IO_ADDR,
	"REG_CLOCK_INT_FACTOR_FLAGS":   REG_CLOCK_INT_FACTOR_FLAGS,
	"REG_SW_INT_FACTOR_FLAGS":      REG_SW_INT_FACTOR_FLAGS,
	"REG_PROG_INT_FACTOR_FLAGS":    REG_PROG_INT_FACTOR_FLAGS,
	"REG_SERIAL_INT_FACTOR_FLAGS":  REG_SERIAL_INT_FACTOR_FLAGS,
	"REG_K00_K03_INT_FACTOR_FLAGS": REG_K00_K03_INT_FACTOR_FLAGS,
	"REG_K10_K13_INT_FACTOR_FLAGS": REG_K10_K13_INT_FACTOR_FLAGS,
	"REG_CLOCK_INT_MASKS":          REG_CLOCK_INT_MASKS,
	"REG_SW_INT_MASKS":             REG_SW_INT_MASKS,
	"REG_PROG_INT_MASKS":           REG_PROG_INT_MASKS,
	"REG_SERIAL_INT_MASKS":         REG_SERIAL_INT_MASKS,
	"REG_K00_K03_INT_MASKS":        REG_K00_K03_INT_MASKS,
	"REG_K10_K13_INT_MASKS":        REG_K10_K13_INT_MASKS,
	"REG_CLOCK_TIMER_DATA_1":       REG_CLOCK_TIMER_DATA_1,
	"REG_CLOCK_TIMER_DATA_2":       REG_CLOCK_TIMER_DATA_2,
	"REG_SW_TIMER_DATA_1":          REG_SW_TIMER_DATA_1,
	"REG_SW_TIMER_DATA_2":          REG_SW_TIMER_DATA_2,
	"REG_PROG_TIMER_DATA_1":        REG_PROG_TIMER_DATA_1,
	"REG_PROG_TIMER_DATA_2":        REG_PROG_TIMER_DATA_2,
	"REG_PROG_TIMER_RELOAD_DATA_1": REG_PROG_TIMER_RELOAD_DATA_1,
	"REG_PROG_TIMER_RELOAD_DATA_2": REG_PROG_TIMER_RELOAD_DATA_2,
	"REG_K00_K03_INPUT_PORT":       REG_K00_K03_INPUT_PORT,
	"REG_K00_K03_INPUT_RELATION":   REG_K00_K03_INPUT_RELATION,
	"REG_K10_K13_INPUT_PORT":       REG_K10_K13_INPUT_PORT,
	"REG_R40_R43_BZ_OUTPUT_PORT":   REG_R40_R43_BZ_OUTPUT_PORT,
	"REG_CPU_OSC3_CTRL":            REG_CPU_OSC3_CTRL,
	"REG_LCD_CTRL":                 REG_LCD_CTRL,
	"REG_LCD_CONTRAST":             REG_LCD_CONTRAST,
	"REG_SVD_CTRL":                 REG_SVD_CTRL,
	"REG_BUZZER_CTRL1":             REG_BUZZER_CTRL1,
	"REG_BUZZER_CTRL2":             REG_BUZZER_CTRL2,
	"REG_CLK_WD_TIMER_CTRL":        REG_CLK_WD_TIMER_CTRL,
	"REG_SW_TIMER_CTRL":            REG_SW_TIMER_CTRL,
	"REG_PROG_TIMER_CTRL":          REG_PROG_TIMER_CTRL,
	"REG_PROG_TIMER_CLK_SEL":       REG_PROG_TIMER_CLK_SEL,
}

// Defines returns the register map as assembler equates.
func Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for name, addr := range maps.All(_register_defines) {
			if !yield(name, fmt.Sprintf("0x%03X", addr)) {
				return
			}
		}
	}
}

// InRange returns true if addr is in [base, base+size).
func InRange(addr uint16, base uint16, size uint16) bool {
	return addr >= base && addr < base+size
}

// IsDisplay returns true if addr is in one of the display memory banks.
func IsDisplay(addr uint16) bool {
	return InRange(addr, MEM_DISPLAY1_ADDR, MEM_DISPLAY1_SIZE) ||
		InRange(addr, MEM_DISPLAY2_ADDR, MEM_DISPLAY2_SIZE)
}
