package emulator

import (
	"bytes"
	"context"
	"errors"
	"log"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/tama/cpu"
	"github.com/ezrec/tama/hal"
	"github.com/ezrec/tama/io"
)

var callProgram = []string{
	"LD A,0x8",      // 0x100
	"LD SPH,A",      // 0x101
	"CALL sub",      // 0x102
	"LD B,0x1",      // 0x103
	"loop: JP loop", // 0x104
	"sub: LD A,0x7", // 0x105
	"NOP5",          // 0x106
	"RET",           // 0x107
}

func newTestEmulator(t *testing.T, breakpoints []uint16, source ...string) (emu *Emulator, host *hal.Headless) {
	t.Helper()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	require.NoError(t, err)

	host = hal.NewHeadless()
	emu = NewEmulator(host)
	err = emu.Init(prog, breakpoints, 1_000_000)
	require.NoError(t, err)
	require.NoError(t, emu.SetSpeed(0))

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, nil, callProgram...)

	assert.Equal(MODE_RUN, emu.ExecMode())
	assert.Equal(uint8(FRAMERATE_DEFAULT), emu.Framerate())
	assert.Equal(uint8(0), emu.Speed())
	assert.Equal(cpu.RESET_PC, emu.State().Pc)
	assert.False(emu.Halted())
	assert.NoError(emu.Faulted())

	emu.SetFramerate(60)
	assert.Equal(uint8(60), emu.Framerate())
	emu.SetFramerate(0)
	assert.Equal(uint8(FRAMERATE_DEFAULT), emu.Framerate())

	assert.NoError(emu.SetSpeed(4))
	assert.Equal(uint8(4), emu.Speed())

	assert.Equal("to_ret", MODE_TO_RET.String())
	assert.Equal("ExecMode(99)", ExecMode(99).String())

	assert.NoError(emu.Close())
	assert.Nil(emu.Program)
}

func TestInitEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(hal.NewHeadless())
	err := emu.Init(nil, nil, 0)
	assert.ErrorIs(err, cpu.ErrProgramEmpty)

	err = emu.Init(&cpu.Program{}, nil, 0)
	assert.ErrorIs(err, cpu.ErrProgramEmpty)
}

// runUntilPause steps until the emulator pauses, or gives up.
func runUntilPause(t *testing.T, emu *Emulator) {
	t.Helper()

	for range 1000 {
		if emu.ExecMode() == MODE_PAUSE {
			return
		}
		require.NoError(t, emu.Step())
	}
	t.Fatalf("emulator did not pause, pc=0x%04X", emu.Cpu.Pc)
}

func TestExecModes(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, nil, callProgram...)

	// Paused emulator does not advance.
	assert.NoError(emu.SetExecMode(MODE_PAUSE))
	assert.NoError(emu.Step())
	assert.Equal(uint16(0x100), emu.Cpu.Pc)

	// Single steps.
	for _, pc := range []uint16{0x101, 0x102} {
		assert.NoError(emu.SetExecMode(MODE_STEP))
		assert.NoError(emu.Step())
		assert.Equal(MODE_PAUSE, emu.ExecMode())
		assert.Equal(pc, emu.Cpu.Pc)
	}

	// Into the call.
	assert.NoError(emu.SetExecMode(MODE_TO_CALL))
	runUntilPause(t, emu)
	assert.Equal(uint16(0x105), emu.Cpu.Pc)
	assert.Equal(1, emu.Cpu.Depth)

	// Back out of it.
	assert.NoError(emu.SetExecMode(MODE_TO_RET))
	runUntilPause(t, emu)
	assert.Equal(uint16(0x103), emu.Cpu.Pc)
	assert.Equal(0, emu.Cpu.Depth)
	assert.Equal(uint8(0x7), emu.Cpu.A)
}

func TestNextStepsOverCall(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, nil, callProgram...)

	assert.NoError(emu.SetExecMode(MODE_NEXT))
	runUntilPause(t, emu)
	assert.Equal(uint16(0x101), emu.Cpu.Pc)

	assert.NoError(emu.SetExecMode(MODE_NEXT))
	runUntilPause(t, emu)
	assert.Equal(uint16(0x102), emu.Cpu.Pc)

	// The whole subroutine runs, pausing once back at the caller's depth.
	assert.NoError(emu.SetExecMode(MODE_NEXT))
	runUntilPause(t, emu)
	assert.Equal(uint16(0x103), emu.Cpu.Pc)
	assert.Equal(0, emu.Cpu.Depth)
	assert.Equal(uint8(0x7), emu.Cpu.A)
	assert.Equal(uint8(0x0), emu.Cpu.B)
}

func TestBreakpoints(t *testing.T) {
	assert := assert.New(t)

	var logs bytes.Buffer
	emu, host := newTestEmulator(t, []uint16{0x106, 0x104, 0x106}, callProgram...)
	host.Levels |= hal.LOG_INFO
	host.Logger = log.New(&logs, "", 0)

	assert.Equal([]uint16{0x106, 0x104}, slices.Collect(emu.Breakpoints()))

	runUntilPause(t, emu)
	assert.Equal(uint16(0x106), emu.Cpu.Pc)
	assert.Contains(logs.String(), "info: breakpoint 0x0106")

	emu.RemoveBreakpoint(0x106)
	emu.AddBreakpoint(0x104)
	assert.Equal([]uint16{0x104}, slices.Collect(emu.Breakpoints()))

	assert.NoError(emu.SetExecMode(MODE_RUN))
	runUntilPause(t, emu)
	assert.Equal(uint16(0x104), emu.Cpu.Pc)
	assert.Equal(uint8(0x1), emu.Cpu.B)
}

func TestFault(t *testing.T) {
	assert := assert.New(t)

	words := make([]uint16, 0x102)
	words[0x100] = 0xFFF
	words[0x101] = 0xE9C

	host := hal.NewHeadless()
	host.Logger = log.New(&bytes.Buffer{}, "", 0)
	emu := NewEmulator(host)
	err := emu.Init(&cpu.Program{Words: words}, nil, 0)
	require.NoError(t, err)
	require.NoError(t, emu.SetSpeed(0))

	assert.NoError(emu.Step())
	err = emu.Step()
	assert.ErrorIs(err, cpu.ErrOpcode{})

	var rterr *ErrRuntime
	assert.True(errors.As(err, &rterr))
	assert.Equal(uint16(0x101), rterr.Line.Pc)

	assert.Equal(MODE_PAUSE, emu.ExecMode())
	assert.Equal(err, emu.Faulted())

	// Faulted emulator refuses to run.
	assert.NoError(emu.SetExecMode(MODE_RUN))
	assert.Equal(err, emu.Step())
	assert.Equal(uint16(0x101), emu.Cpu.Pc)

	assert.NoError(emu.Reset())
	assert.NoError(emu.Faulted())
	assert.Equal(cpu.RESET_PC, emu.Cpu.Pc)
}

func TestNotInitialized(t *testing.T) {
	assert := assert.New(t)

	var logs bytes.Buffer
	host := hal.NewHeadless()
	host.Logger = log.New(&logs, "", 0)
	emu := NewEmulator(host)

	assert.ErrorIs(emu.SetExecMode(MODE_RUN), ErrNotInitialized)
	assert.ErrorIs(emu.SetSpeed(1), ErrNotInitialized)
	assert.ErrorIs(emu.Reset(), ErrNotInitialized)
	assert.ErrorIs(emu.Step(), ErrNotInitialized)
	assert.ErrorIs(emu.Mainloop(context.Background()), ErrNotInitialized)

	assert.Equal(MODE_PAUSE, emu.ExecMode())
	assert.Equal(uint8(0), emu.Speed())
	assert.Equal(cpu.State{}, emu.State())
	assert.False(emu.Halted())
	emu.RefreshHardware()

	emu.SetButton(io.BUTTON_LEFT, true)
	assert.Contains(logs.String(), "emulator not initialized")

	// Close drops the CPU again.
	emu, _ = newTestEmulator(t, nil, "loop: JP loop")
	assert.NoError(emu.Close())
	assert.ErrorIs(emu.Step(), ErrNotInitialized)
}

func TestMainloop(t *testing.T) {
	assert := assert.New(t)

	emu, host := newTestEmulator(t, nil, "loop: JP loop")
	assert.NoError(emu.SetSpeed(1))
	host.Quit = func() bool {
		return host.Frames >= 3
	}

	err := emu.Mainloop(context.Background())
	assert.NoError(err)
	assert.Equal(3, host.Frames)

	period := hal.Timestamp(1_000_000 / FRAMERATE_DEFAULT)
	assert.GreaterOrEqual(host.Timestamp(), 3*period)
}

func TestMainloopPaused(t *testing.T) {
	assert := assert.New(t)

	emu, host := newTestEmulator(t, nil, "loop: JP loop")
	assert.NoError(emu.SetExecMode(MODE_PAUSE))
	host.Quit = func() bool {
		return host.Frames >= 2
	}

	assert.NoError(emu.Mainloop(context.Background()))
	assert.Equal(cpu.RESET_PC, emu.Cpu.Pc)
	assert.Equal(uint32(0), emu.Cpu.Ticks)
}

func TestMainloopCancel(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, nil, "loop: JP loop")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Mainloop(ctx)
	assert.ErrorIs(err, context.Canceled)
}

func TestMainloopFault(t *testing.T) {
	assert := assert.New(t)

	emu, host := newTestEmulator(t, nil, "NOP5", ".word 0xE9C")
	host.Logger = log.New(&bytes.Buffer{}, "", 0)

	err := emu.Mainloop(context.Background())
	assert.ErrorIs(err, cpu.ErrOpcode{})
}

func TestSetButton(t *testing.T) {
	assert := assert.New(t)

	emu, host := newTestEmulator(t, nil, "loop: JP loop")

	emu.SetButton(io.BUTTON_LEFT, true)
	assert.Equal(uint8(0xB), emu.Cpu.Read(io.REG_K00_K03_INPUT_PORT))
	emu.SetButton(io.BUTTON_RIGHT, true)
	assert.Equal(uint8(0xA), emu.Cpu.Read(io.REG_K00_K03_INPUT_PORT))
	emu.SetButton(io.BUTTON_LEFT, false)
	emu.SetButton(io.BUTTON_RIGHT, false)
	assert.Equal(uint8(0xF), emu.Cpu.Read(io.REG_K00_K03_INPUT_PORT))

	var logs bytes.Buffer
	host.Logger = log.New(&logs, "", 0)
	emu.SetButton(io.Button(7), true)
	assert.Contains(logs.String(), "button invalid")
	assert.Equal(uint8(0xF), emu.Cpu.Read(io.REG_K00_K03_INPUT_PORT))
}

func TestRefreshHardware(t *testing.T) {
	assert := assert.New(t)

	emu, host := newTestEmulator(t, nil, "loop: JP loop")

	emu.Cpu.Memory[io.MEM_DISPLAY1_ADDR] = 0x1
	emu.RefreshHardware()
	assert.True(host.Matrix[0][0])
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal("0x100", defines["RESET_PC"])
	assert.Contains(defines, "FLAG_C")
	assert.Equal("0xF40", defines["REG_K00_K03_INPUT_PORT"])
}
