package cpu

import (
	"github.com/ezrec/tama/hal"
)

// InterruptSlot is an interrupt source, in priority order.
type InterruptSlot int

//go:generate go tool stringer -linecomment -type=InterruptSlot
const (
	INT_PROG_TIMER  = InterruptSlot(0) // prog_timer
	INT_SERIAL      = InterruptSlot(1) // serial
	INT_K10_K13     = InterruptSlot(2) // k10_k13
	INT_K00_K03     = InterruptSlot(3) // k00_k03
	INT_STOPWATCH   = InterruptSlot(4) // stopwatch
	INT_CLOCK_TIMER = InterruptSlot(5) // clock_timer

	INT_SLOT_COUNT = 6
)

const (
	INTERRUPT_CYCLES = 12 // Cost of an interrupt entry, in ticks.
)

// interruptVector is the step address, in page 1, of each slot's handler.
var interruptVector = [INT_SLOT_COUNT]uint8{0x0C, 0x0A, 0x08, 0x06, 0x04, 0x02}

// Interrupt is the state of an interrupt source.
type Interrupt struct {
	FactorFlags uint8 // Latched causes, cleared when read.
	Mask        uint8 // Enabled causes.
	Triggered   bool  // Pending delivery.
	Vector      uint8 // Handler step address in page 1.
	Events      int   // Number of causes raised since reset.
}

// resetInterrupts clears all interrupt state.
func (cpu *Cpu) resetInterrupts() {
	for n := range cpu.Interrupt {
		cpu.Interrupt[n] = Interrupt{Vector: interruptVector[n]}
	}
}

// Raise latches a cause of an interrupt source. The source becomes pending
// only if the cause is enabled in its mask register at this moment.
func (cpu *Cpu) Raise(slot InterruptSlot, bit uint8) {
	if slot < 0 || slot >= INT_SLOT_COUNT {
		cpu.logf(hal.LOG_ERROR, "raise: %v %v", ErrInterruptSlotInvalid, int(slot))
		return
	}

	it := &cpu.Interrupt[slot]
	cause := uint8(1) << (bit & 0x3)
	it.FactorFlags |= cause
	it.Events++
	if (it.Mask & cause) != 0 {
		it.Triggered = true
	}
}

// Pending returns the highest priority pending interrupt.
func (cpu *Cpu) Pending() (slot InterruptSlot, ok bool) {
	for n := range cpu.Interrupt {
		if cpu.Interrupt[n].Triggered {
			return InterruptSlot(n), true
		}
	}
	return
}

// service delivers the highest priority pending interrupt, if any.
// At most one interrupt is delivered per call.
func (cpu *Cpu) service() (serviced bool) {
	slot, ok := cpu.Pending()
	if !ok {
		return
	}

	it := &cpu.Interrupt[slot]

	cpu.pushPc(cpu.Pc)
	cpu.Flags.Set(FLAG_I, false)
	cpu.Np = makeNp(cpu.Np>>4, 1)
	cpu.Pc = makePc(cpu.Pc>>12, 1, it.Vector)
	cpu.Depth++
	cpu.Halted = false

	cpu.charge(INTERRUPT_CYCLES)
	it.Triggered = false

	cpu.logf(hal.LOG_INFO, "interrupt %v, vector 0x%04X", slot, cpu.Pc)

	return true
}
