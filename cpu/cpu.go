package cpu

import (
	"fmt"

	"github.com/ezrec/tama/hal"
	"github.com/ezrec/tama/io"
)

// Program counter layout: bank:1 page:4 step:8.
const (
	PC_BANK = uint16(0x1000)
	PC_PAGE = uint16(0x0F00)
	PC_STEP = uint16(0x00FF)
	PC_MASK = uint16(0x1FFF)

	NP_MASK = uint8(0x1F)

	RESET_PC = uint16(0x0100) // Power-on program counter.

	HALT_CYCLES = 5 // Ticks charged per step while halted.
)

// makePc builds a program counter from its components.
func makePc(bank uint16, page uint16, step uint8) uint16 {
	return ((bank & 0x1) << 12) | ((page & 0xF) << 8) | uint16(step)
}

// makeNp builds a new page register from its components.
func makeNp(bank uint8, page uint8) uint8 {
	return ((bank & 0x1) << 4) | (page & 0xF)
}

// Cpu is the simulation context of the 4-bit core.
type Cpu struct {
	Host  hal.Host  // Host adapter.
	Pacer hal.Pacer // Real time pacing.

	Program []uint16 // Program image, one 12-bit word per address.

	Pc     uint16 // Program counter.
	NextPc uint16 // Address of the next fetch, staged during execution.
	Np     uint8  // New page register.
	X      uint16 // Index register X (page:4 offset:8).
	Y      uint16 // Index register Y (page:4 offset:8).
	A      uint8  // Accumulator A.
	B      uint8  // Accumulator B.
	Sp     uint8  // Stack pointer.
	Flags  Flags  // Condition flags.

	Memory    [io.MEM_SIZE]uint8        // One nibble per cell.
	Interrupt [INT_SLOT_COUNT]Interrupt // Interrupt controller.
	Input     [2]uint8                  // Input port pin levels.
	ProgTimer ProgTimer                 // Programmable timer.
	LCD       io.LCD                    // LCD driver.
	Buzzer    io.Buzzer                 // Buzzer driver.

	Ticks  uint32 // Oscillator ticks elapsed since reset.
	Depth  int    // Call depth.
	Halted bool   // Set by HALT, cleared by an interrupt.

	clockTimestamp uint32 // Tick of the last clock timer period.
	previousCycles uint8  // Cost of the last executed instruction.
}

// NewCpu creates a CPU running program, reporting to host.
func NewCpu(host hal.Host, program []uint16, freq uint32) (cpu *Cpu) {
	cpu = &Cpu{
		Program: program,
	}
	cpu.Pacer.Frequency = freq
	cpu.Pacer.Speed = 1
	cpu.SetHost(host)
	cpu.Reset()

	return
}

// SetHost replaces the host adapter of the CPU and its peripherals.
func (cpu *Cpu) SetHost(host hal.Host) {
	cpu.Host = host
	cpu.Pacer.Host = host
	cpu.LCD.Host = host
	cpu.Buzzer.Host = host
}

// Reset the CPU to its power-on state. The program is kept.
func (cpu *Cpu) Reset() {
	cpu.logf(hal.LOG_INFO, "cpu: reset")

	cpu.Pc = RESET_PC
	cpu.NextPc = cpu.Pc
	cpu.Np = makeNp(0, 1)
	cpu.X = 0
	cpu.Y = 0
	cpu.A = 0
	cpu.B = 0
	cpu.Sp = 0
	cpu.Flags = 0

	clear(cpu.Memory[:])
	cpu.Memory[io.REG_R40_R43_BZ_OUTPUT_PORT] = 0xF
	cpu.Memory[io.REG_LCD_CTRL] = 0x8

	cpu.Input[0] = 0xF
	cpu.Input[1] = 0xF

	cpu.resetInterrupts()

	cpu.Ticks = 0
	cpu.clockTimestamp = 0
	cpu.ProgTimer = ProgTimer{}
	cpu.previousCycles = 0

	cpu.Depth = 0
	cpu.Halted = false

	cpu.Pacer.Sync()
}

// logf formats and emits a message if the host enables its level.
func (cpu *Cpu) logf(level hal.LogLevel, format string, args ...any) {
	if cpu.Host == nil || !cpu.Host.IsLogEnabled(level) {
		return
	}
	cpu.Host.Log(level, f(format, args...))
}

// charge accounts for cycles spent outside of an instruction.
func (cpu *Cpu) charge(cycles uint32) {
	cpu.Pacer.Wait(cycles)
	cpu.Ticks += cycles
}

// Fetch decodes the instruction at an address of the program image.
func (cpu *Cpu) Fetch(pc uint16) (ins Instruction, err error) {
	if int(pc) >= len(cpu.Program) {
		err = ErrProgramRange
		return
	}

	ins, err = Decode(cpu.Program[pc])
	if err != nil {
		err = ErrOpcode{Word: cpu.Program[pc] & 0xFFF, Pc: pc}
	}

	return
}

// Step executes one instruction, or idles one slot while halted, then
// advances the timers and services a pending interrupt.
// On error, no state was changed.
func (cpu *Cpu) Step() (ins Instruction, err error) {
	pset := false

	if !cpu.Halted {
		ins, err = cpu.Fetch(cpu.Pc)
		if err != nil {
			cpu.logf(hal.LOG_ERROR, "%v", err)
			return
		}

		cpu.NextPc = (cpu.Pc + 1) & PC_MASK

		cpu.logf(hal.LOG_CPU, "0x%04X: %03X %-14v %v", cpu.Pc, ins.Word, ins, cpu)

		cpu.charge(uint32(cpu.previousCycles))

		cpu.execute(ins)

		cpu.Pc = cpu.NextPc & PC_MASK
		cpu.previousCycles = ins.Cycles

		pset = ins.Kind == OP_PSET
		if !pset {
			cpu.Np = uint8(cpu.Pc>>8) & NP_MASK
		}
	} else {
		cpu.charge(HALT_CYCLES)
		cpu.previousCycles = 0
		ins = Instruction{Kind: OP_HALT, Word: opcodeTable[OP_HALT].Code, Cycles: HALT_CYCLES}
	}

	cpu.handleTimers()

	if cpu.Flags.Has(FLAG_I) && !pset {
		cpu.service()
	}

	return
}

// State is a snapshot of the registers, for inspection.
type State struct {
	Pc     uint16
	Np     uint8
	X      uint16
	Y      uint16
	A      uint8
	B      uint8
	Sp     uint8
	Flags  Flags
	Ticks  uint32
	Depth  int
	Halted bool

	Interrupt [INT_SLOT_COUNT]Interrupt
}

// State returns a snapshot of the CPU registers.
func (cpu *Cpu) State() State {
	return State{
		Pc:        cpu.Pc,
		Np:        cpu.Np,
		X:         cpu.X,
		Y:         cpu.Y,
		A:         cpu.A,
		B:         cpu.B,
		Sp:        cpu.Sp,
		Flags:     cpu.Flags,
		Ticks:     cpu.Ticks,
		Depth:     cpu.Depth,
		Halted:    cpu.Halted,
		Interrupt: cpu.Interrupt,
	}
}

// String returns the current register state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("np=%02X x=%03X y=%03X a=%X b=%X sp=%02X f=%v",
		cpu.Np, cpu.X, cpu.Y, cpu.A, cpu.B, cpu.Sp, cpu.Flags)
}

// String returns the state as a multi-line register dump.
func (st State) String() (text string) {
	regs := []string{"pc", "np", "x", "y", "a", "b", "sp", "flags", "ticks", "depth"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%X_%X_%02X", st.Pc>>12, (st.Pc>>8)&0xF, st.Pc&0xFF)
		case "np":
			strval = fmt.Sprintf("%X_%X", st.Np>>4, st.Np&0xF)
		case "x":
			strval = fmt.Sprintf("%X_%02X", st.X>>8, st.X&0xFF)
		case "y":
			strval = fmt.Sprintf("%X_%02X", st.Y>>8, st.Y&0xFF)
		case "a":
			strval = fmt.Sprintf("%X", st.A)
		case "b":
			strval = fmt.Sprintf("%X", st.B)
		case "sp":
			strval = fmt.Sprintf("%02X", st.Sp)
		case "flags":
			strval = st.Flags.String()
			if st.Halted {
				strval += " halted"
			}
		case "ticks":
			strval = fmt.Sprintf("%08X", st.Ticks)
		case "depth":
			strval = fmt.Sprint(st.Depth)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
