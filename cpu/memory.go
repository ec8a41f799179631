package cpu

import (
	"github.com/ezrec/tama/hal"
	"github.com/ezrec/tama/io"
)

// interruptRegister maps factor flag and mask registers to their slot.
var interruptRegister = map[uint16]InterruptSlot{
	io.REG_CLOCK_INT_FACTOR_FLAGS:   INT_CLOCK_TIMER,
	io.REG_SW_INT_FACTOR_FLAGS:      INT_STOPWATCH,
	io.REG_PROG_INT_FACTOR_FLAGS:    INT_PROG_TIMER,
	io.REG_SERIAL_INT_FACTOR_FLAGS:  INT_SERIAL,
	io.REG_K00_K03_INT_FACTOR_FLAGS: INT_K00_K03,
	io.REG_K10_K13_INT_FACTOR_FLAGS: INT_K10_K13,
	io.REG_CLOCK_INT_MASKS:          INT_CLOCK_TIMER,
	io.REG_SW_INT_MASKS:             INT_STOPWATCH,
	io.REG_PROG_INT_MASKS:           INT_PROG_TIMER,
	io.REG_SERIAL_INT_MASKS:         INT_SERIAL,
	io.REG_K00_K03_INT_MASKS:        INT_K00_K03,
	io.REG_K10_K13_INT_MASKS:        INT_K10_K13,
}

// Peek returns the stored value of a memory cell, without side effects.
func (cpu *Cpu) Peek(addr uint16) uint8 {
	return cpu.Memory[addr&0xFFF]
}

// Read a nibble from the data space, applying the side effects of
// I/O register reads.
func (cpu *Cpu) Read(addr uint16) (value uint8) {
	addr &= 0xFFF

	switch {
	case addr < io.MEM_RAM_SIZE:
		value = cpu.Memory[addr]
	case io.IsDisplay(addr):
		value = cpu.Memory[addr]
	case io.InRange(addr, io.MEM_IO_ADDR, io.MEM_IO_SIZE):
		var ok bool
		value, ok = cpu.readIo(addr)
		if !ok {
			cpu.logf(hal.LOG_ERROR, "read from %v 0x%03X - pc = 0x%04X", ErrRegisterUnimplemented, addr, cpu.Pc)
			return 0
		}
	default:
		cpu.logf(hal.LOG_ERROR, "read from %v 0x%03X - pc = 0x%04X", ErrMemoryInvalid, addr, cpu.Pc)
		return 0
	}

	cpu.logf(hal.LOG_MEMORY, "read  0x%X - address 0x%03X - pc = 0x%04X", value, addr, cpu.Pc)

	return
}

// Write a nibble to the data space. Display writes update the LCD, and
// I/O register writes are forwarded to the peripherals.
func (cpu *Cpu) Write(addr uint16, value uint8) {
	addr &= 0xFFF
	value &= 0xF

	switch {
	case addr < io.MEM_RAM_SIZE:
		cpu.Memory[addr] = value
	case io.IsDisplay(addr):
		cpu.Memory[addr] = value
		cpu.LCD.Write(addr, value)
	case io.InRange(addr, io.MEM_IO_ADDR, io.MEM_IO_SIZE):
		if !cpu.writeIo(addr, value) {
			cpu.logf(hal.LOG_ERROR, "write 0x%X to %v 0x%03X - pc = 0x%04X", value, ErrRegisterUnimplemented, addr, cpu.Pc)
			return
		}
		cpu.Memory[addr] = value
	default:
		cpu.logf(hal.LOG_ERROR, "write 0x%X to %v 0x%03X - pc = 0x%04X", value, ErrMemoryInvalid, addr, cpu.Pc)
		return
	}

	cpu.logf(hal.LOG_MEMORY, "write 0x%X - address 0x%03X - pc = 0x%04X", value, addr, cpu.Pc)
}

// readIo returns the value of an I/O register.
func (cpu *Cpu) readIo(addr uint16) (value uint8, ok bool) {
	ok = true

	switch addr {
	case io.REG_CLOCK_INT_FACTOR_FLAGS, io.REG_SW_INT_FACTOR_FLAGS,
		io.REG_PROG_INT_FACTOR_FLAGS, io.REG_SERIAL_INT_FACTOR_FLAGS,
		io.REG_K00_K03_INT_FACTOR_FLAGS, io.REG_K10_K13_INT_FACTOR_FLAGS:
		it := &cpu.Interrupt[interruptRegister[addr]]
		value = it.FactorFlags
		it.FactorFlags = 0
	case io.REG_CLOCK_INT_MASKS, io.REG_K00_K03_INT_MASKS, io.REG_K10_K13_INT_MASKS:
		value = cpu.Interrupt[interruptRegister[addr]].Mask
	case io.REG_SW_INT_MASKS:
		value = cpu.Interrupt[INT_STOPWATCH].Mask & 0x3
	case io.REG_PROG_INT_MASKS:
		value = cpu.Interrupt[INT_PROG_TIMER].Mask & 0x1
	case io.REG_SERIAL_INT_MASKS:
		value = cpu.Interrupt[INT_SERIAL].Mask & 0x1
	case io.REG_CLOCK_TIMER_DATA_1, io.REG_CLOCK_TIMER_DATA_2:
		value = 0
	case io.REG_SW_TIMER_DATA_1, io.REG_SW_TIMER_DATA_2:
		value = 0
	case io.REG_PROG_TIMER_DATA_1:
		value = cpu.ProgTimer.Data & 0xF
	case io.REG_PROG_TIMER_DATA_2:
		value = (cpu.ProgTimer.Data >> 4) & 0xF
	case io.REG_PROG_TIMER_RELOAD_DATA_1:
		value = cpu.ProgTimer.Reload & 0xF
	case io.REG_PROG_TIMER_RELOAD_DATA_2:
		value = (cpu.ProgTimer.Reload >> 4) & 0xF
	case io.REG_K00_K03_INPUT_PORT:
		value = cpu.Input[0]
	case io.REG_K10_K13_INPUT_PORT:
		value = cpu.Input[1]
	case io.REG_K00_K03_INPUT_RELATION, io.REG_R40_R43_BZ_OUTPUT_PORT,
		io.REG_CPU_OSC3_CTRL, io.REG_LCD_CTRL, io.REG_BUZZER_CTRL1:
		value = cpu.Memory[addr]
	case io.REG_SVD_CTRL:
		// Supply voltage is always reported as good.
		value = cpu.Memory[addr] & 0x7
	case io.REG_BUZZER_CTRL2:
		// Buzzer is always ready.
		value = cpu.Memory[addr] & 0x3
	case io.REG_CLK_WD_TIMER_CTRL, io.REG_SW_TIMER_CTRL, io.REG_LCD_CONTRAST:
		// Write only
		value = 0
	case io.REG_PROG_TIMER_CTRL:
		if cpu.ProgTimer.Enabled {
			value = io.PROG_TIMER_ENABLE
		}
	case io.REG_PROG_TIMER_CLK_SEL:
		// Output disabled
		value = 0
	default:
		ok = false
	}

	return
}

// writeIo applies the side effects of an I/O register write.
func (cpu *Cpu) writeIo(addr uint16, value uint8) (ok bool) {
	ok = true

	switch addr {
	case io.REG_CLOCK_INT_MASKS, io.REG_SW_INT_MASKS,
		io.REG_PROG_INT_MASKS, io.REG_SERIAL_INT_MASKS,
		io.REG_K00_K03_INT_MASKS, io.REG_K10_K13_INT_MASKS:
		// Causes already latched are not promoted to pending.
		cpu.Interrupt[interruptRegister[addr]].Mask = value
	case io.REG_PROG_TIMER_RELOAD_DATA_1:
		cpu.ProgTimer.Reload = value | (cpu.ProgTimer.Reload & 0xF0)
	case io.REG_PROG_TIMER_RELOAD_DATA_2:
		cpu.ProgTimer.Reload = (cpu.ProgTimer.Reload & 0x0F) | (value << 4)
	case io.REG_K00_K03_INPUT_PORT, io.REG_K10_K13_INPUT_PORT:
		// Read only
	case io.REG_K00_K03_INPUT_RELATION:
	case io.REG_R40_R43_BZ_OUTPUT_PORT:
		cpu.Buzzer.Enable((value & io.BUZZER_OUTPUT_OFF) == 0)
	case io.REG_CPU_OSC3_CTRL, io.REG_LCD_CTRL, io.REG_LCD_CONTRAST, io.REG_SVD_CTRL:
	case io.REG_BUZZER_CTRL1:
		cpu.Buzzer.SetFrequency(value & 0x7)
	case io.REG_BUZZER_CTRL2:
	case io.REG_CLK_WD_TIMER_CTRL, io.REG_SW_TIMER_CTRL:
	case io.REG_PROG_TIMER_CTRL:
		cpu.writeProgTimerCtrl(value)
	case io.REG_PROG_TIMER_CLK_SEL:
	default:
		ok = false
	}

	return
}

// refreshRanges lists the memory whose side effects RefreshHardware replays.
var refreshRanges = []struct {
	Addr uint16
	Size uint16
}{
	{io.MEM_DISPLAY1_ADDR, io.MEM_DISPLAY1_SIZE},
	{io.MEM_DISPLAY2_ADDR, io.MEM_DISPLAY2_SIZE},
	{io.REG_BUZZER_CTRL1, 1},
	{io.REG_R40_R43_BZ_OUTPUT_PORT, 1},
}

// RefreshHardware replays the display and buzzer side effects of the
// values already stored in memory, for instance after a state restore.
func (cpu *Cpu) RefreshHardware() {
	for _, rng := range refreshRanges {
		for addr := rng.Addr; addr < rng.Addr+rng.Size; addr++ {
			cpu.Write(addr, cpu.Memory[addr])
		}
	}
}

// SetInputPin sets the logic level of an input pin. A falling level raises
// the port's interrupt cause for that line.
func (cpu *Cpu) SetInputPin(pin io.Pin, high bool) {
	port := pin.Port()
	line := pin.Line()

	cpu.Input[port] &^= 1 << line
	if high {
		cpu.Input[port] |= 1 << line
	}

	if !high {
		switch port {
		case 0:
			cpu.Raise(INT_K00_K03, line)
		case 1:
			cpu.Raise(INT_K10_K13, line)
		}
	}
}
