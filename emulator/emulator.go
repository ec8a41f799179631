// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"iter"
	"slices"

	"github.com/ezrec/tama/cpu"
	"github.com/ezrec/tama/hal"
	"github.com/ezrec/tama/internal"
	"github.com/ezrec/tama/io"
)

const (
	FRAMERATE_DEFAULT = 30        // Screen updates per second.
	FREQUENCY_DEFAULT = 1_000_000 // Host timestamp ticks per second (microseconds).
)

// ExecMode is the execution mode of the emulator.
type ExecMode int

// Execution modes:
//
//   - pause does not execute.
//   - run executes until a breakpoint.
//   - step executes one instruction.
//   - next executes one instruction, stepping over calls.
//   - to_call executes until the call depth increases.
//   - to_ret executes until the call depth decreases.
//
//go:generate go tool stringer -linecomment -type=ExecMode
const (
	MODE_PAUSE   = ExecMode(iota) // pause
	MODE_RUN                      // run
	MODE_STEP                     // step
	MODE_NEXT                     // next
	MODE_TO_CALL                  // to_call
	MODE_TO_RET                   // to_ret
)

// Defines returns the equates predefined for assembly sources.
func Defines() iter.Seq2[string, string] {
	return internal.Concat2(io.Defines(), cpu.Defines())
}

// Emulator state. CPU, program listing and debugger controls.
type Emulator struct {
	Host    hal.Host     // Host adapter.
	Cpu     *cpu.Cpu     // Reference to the CPU simulation.
	Program *cpu.Program // Reference to the currently running program listing.

	mode        ExecMode
	depth       int // Call depth recorded when the mode was set.
	breakpoints []uint16
	framerate   uint8
	fault       error
}

// NewEmulator creates a new emulator, reporting to host.
func NewEmulator(host hal.Host) (emu *Emulator) {
	emu = &Emulator{
		Host:      host,
		framerate: FRAMERATE_DEFAULT,
	}

	return
}

// logf formats and emits a message if the host enables its level.
func (emu *Emulator) logf(level hal.LogLevel, format string, args ...any) {
	if emu.Host == nil || !emu.Host.IsLogEnabled(level) {
		return
	}
	emu.Host.Log(level, f(format, args...))
}

// Init loads a program, with an initial set of breakpoints.
// freq is the number of host timestamp ticks per second.
// The emulator starts in MODE_RUN.
func (emu *Emulator) Init(program *cpu.Program, breakpoints []uint16, freq uint32) (err error) {
	if program == nil || len(program.Words) == 0 {
		err = cpu.ErrProgramEmpty
		return
	}

	if freq == 0 {
		freq = FREQUENCY_DEFAULT
	}

	emu.Program = program
	emu.Cpu = cpu.NewCpu(emu.Host, program.Words, freq)

	emu.breakpoints = emu.breakpoints[:0]
	for _, addr := range breakpoints {
		emu.AddBreakpoint(addr)
	}

	emu.fault = nil
	err = emu.SetExecMode(MODE_RUN)

	return
}

// Close releases the program and breakpoints.
func (emu *Emulator) Close() (err error) {
	emu.breakpoints = nil
	emu.Program = nil
	emu.Cpu = nil

	return
}

// Reset the CPU to its power-on state. The program and breakpoints are kept.
func (emu *Emulator) Reset() (err error) {
	if emu.Cpu == nil {
		err = ErrNotInitialized
		return
	}

	emu.fault = nil
	emu.Cpu.Reset()
	emu.depth = emu.Cpu.Depth

	return
}

// SetHost replaces the host adapter.
func (emu *Emulator) SetHost(host hal.Host) {
	emu.Host = host
	if emu.Cpu != nil {
		emu.Cpu.SetHost(host)
	}
}

// SetExecMode changes the execution mode, and resynchronizes real time pacing.
func (emu *Emulator) SetExecMode(mode ExecMode) (err error) {
	if emu.Cpu == nil {
		err = ErrNotInitialized
		return
	}

	emu.mode = mode
	emu.depth = emu.Cpu.Depth
	emu.Cpu.Pacer.Sync()

	return
}

// ExecMode returns the current execution mode.
func (emu *Emulator) ExecMode() ExecMode {
	return emu.mode
}

// SetSpeed sets the speed ratio: 0 is unthrottled, 1 is real time.
func (emu *Emulator) SetSpeed(speed uint8) (err error) {
	if emu.Cpu == nil {
		err = ErrNotInitialized
		return
	}

	emu.Cpu.Pacer.Speed = speed
	emu.Cpu.Pacer.Sync()

	return
}

// Speed returns the speed ratio, or 0 before Init.
func (emu *Emulator) Speed() uint8 {
	if emu.Cpu == nil {
		return 0
	}
	return emu.Cpu.Pacer.Speed
}

// SetFramerate sets the number of screen updates per second of Mainloop.
func (emu *Emulator) SetFramerate(framerate uint8) {
	if framerate == 0 {
		framerate = FRAMERATE_DEFAULT
	}
	emu.framerate = framerate
}

// Framerate returns the number of screen updates per second.
func (emu *Emulator) Framerate() uint8 {
	return emu.framerate
}

// AddBreakpoint adds a breakpoint at a program address.
func (emu *Emulator) AddBreakpoint(addr uint16) {
	addr &= cpu.PC_MASK
	if slices.Contains(emu.breakpoints, addr) {
		return
	}
	emu.breakpoints = append(emu.breakpoints, addr)
}

// RemoveBreakpoint removes the breakpoint at a program address.
func (emu *Emulator) RemoveBreakpoint(addr uint16) {
	addr &= cpu.PC_MASK
	emu.breakpoints = slices.DeleteFunc(emu.breakpoints, func(bp uint16) bool {
		return bp == addr
	})
}

// Breakpoints iterates over the breakpoint addresses.
func (emu *Emulator) Breakpoints() iter.Seq[uint16] {
	return slices.Values(emu.breakpoints)
}

// State returns a snapshot of the CPU registers.
// Before Init, the snapshot is empty.
func (emu *Emulator) State() (state cpu.State) {
	if emu.Cpu == nil {
		return
	}
	return emu.Cpu.State()
}

// SetButton presses or releases a button.
func (emu *Emulator) SetButton(btn io.Button, pressed bool) {
	pin, ok := btn.Pin()
	if !ok {
		emu.logf(hal.LOG_ERROR, "%v: %v", ErrButtonInvalid, int(btn))
		return
	}

	if emu.Cpu == nil {
		emu.logf(hal.LOG_ERROR, "%v: %v", ErrNotInitialized, btn)
		return
	}

	emu.Cpu.SetInputPin(pin, io.PinLevel(pressed))
}

// RefreshHardware replays the display and buzzer state from memory.
func (emu *Emulator) RefreshHardware() {
	if emu.Cpu == nil {
		return
	}
	emu.Cpu.RefreshHardware()
}

// Halted returns true if the CPU executed HALT and is waiting for an interrupt.
func (emu *Emulator) Halted() bool {
	return emu.Cpu != nil && emu.Cpu.Halted
}

// Faulted returns the error that stopped the emulator, if any.
// A faulted emulator stays paused until Reset.
func (emu *Emulator) Faulted() error {
	return emu.fault
}

// Line returns the source line of a program address.
func (emu *Emulator) Line(pc uint16) (line cpu.Line) {
	if emu.Program == nil {
		return cpu.Line{Pc: pc}
	}
	line, _ = emu.Program.Debug(pc)
	line.Pc = pc
	return
}

// pause stops execution at the current call depth.
func (emu *Emulator) pause() {
	emu.mode = MODE_PAUSE
	emu.depth = emu.Cpu.Depth
}

// Step executes a single instruction, according to the execution mode.
func (emu *Emulator) Step() (err error) {
	if emu.Cpu == nil {
		err = ErrNotInitialized
		return
	}

	if emu.fault != nil {
		err = emu.fault
		return
	}

	if emu.mode == MODE_PAUSE {
		return
	}

	pc := emu.Cpu.Pc
	_, err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Line: emu.Line(pc), Err: err}
		emu.fault = err
		emu.pause()
		return
	}

	if slices.Contains(emu.breakpoints, emu.Cpu.Pc) {
		emu.logf(hal.LOG_INFO, "breakpoint 0x%04X", emu.Cpu.Pc)
		emu.pause()
		return
	}

	depth := emu.Cpu.Depth
	switch emu.mode {
	case MODE_STEP:
		emu.pause()
	case MODE_NEXT:
		if depth <= emu.depth {
			emu.pause()
		}
	case MODE_TO_CALL:
		if depth > emu.depth {
			emu.pause()
		}
	case MODE_TO_RET:
		if depth < emu.depth {
			emu.pause()
		}
	}

	return
}

// Mainloop runs the emulator until the host handler requests an exit,
// the context is cancelled, or the emulator faults.
func (emu *Emulator) Mainloop(ctx context.Context) (err error) {
	if emu.Cpu == nil {
		err = ErrNotInitialized
		return
	}

	host := emu.Host

	period := hal.Timestamp(emu.Cpu.Pacer.Frequency / uint32(emu.framerate))
	screenTs := host.Timestamp()

	for !host.Handler() {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		if emu.mode == MODE_PAUSE {
			// Idle until the next frame.
			host.SleepUntil(screenTs + period)
		}

		err = emu.Step()
		if err != nil {
			return
		}

		ts := host.Timestamp()
		if ts-screenTs >= period {
			screenTs = ts
			host.UpdateScreen()
		}
	}

	return
}
