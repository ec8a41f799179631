package cpu

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tama/hal"
	"github.com/ezrec/tama/io"
)

func TestMemoryRanges(t *testing.T) {
	assert := assert.New(t)

	cpu, host := newTestCpu(t)
	var logs bytes.Buffer
	host.Logger = log.New(&logs, "", 0)

	cpu.Write(0x27F, 0x1F)
	assert.Equal(uint8(0xF), cpu.Read(0x27F))
	assert.Empty(logs.String())

	cpu.Write(0x280, 0x5)
	assert.Equal(uint8(0), cpu.Read(0x280))
	assert.Equal(uint8(0), cpu.Peek(0x280))
	assert.Contains(logs.String(), "invalid memory address")

	logs.Reset()
	cpu.Write(0xF30, 0x5)
	assert.Equal(uint8(0), cpu.Read(0xF30))
	assert.Contains(logs.String(), "unimplemented register")

	// Factor flags are read only.
	logs.Reset()
	cpu.Write(io.REG_CLOCK_INT_FACTOR_FLAGS, 0x5)
	assert.Contains(logs.String(), "unimplemented register")
	assert.Equal(uint8(0), cpu.Interrupt[INT_CLOCK_TIMER].FactorFlags)
}

func TestRegisterReads(t *testing.T) {
	assert := assert.New(t)

	cpu, host := newTestCpu(t)
	var logs bytes.Buffer
	host.Logger = log.New(&logs, "", 0)

	table := []struct {
		reg   uint16
		write uint8
		read  uint8
	}{
		{io.REG_LCD_CONTRAST, 0x8, 0x0},
		{io.REG_SVD_CTRL, 0xF, 0x7},
		{io.REG_BUZZER_CTRL2, 0xF, 0x3},
		{io.REG_CLK_WD_TIMER_CTRL, 0xF, 0x0},
		{io.REG_PROG_TIMER_CTRL, 0x3, 0x1},
		{io.REG_LCD_CTRL, 0x8, 0x8},
	}

	for _, entry := range table {
		cpu.Write(entry.reg, entry.write)
		assert.Equal(entry.read, cpu.Read(entry.reg), "0x%03X", entry.reg)
	}

	assert.Empty(logs.String())
}

func TestMemoryTrace(t *testing.T) {
	assert := assert.New(t)

	cpu, host := newTestCpu(t)
	var logs bytes.Buffer
	host.Logger = log.New(&logs, "", 0)
	host.Levels = hal.LOG_MEMORY

	cpu.Write(0x010, 0x3)
	cpu.Read(0x010)
	assert.Contains(logs.String(), "memory: write 0x3 - address 0x010")
	assert.Contains(logs.String(), "memory: read  0x3 - address 0x010")
}

func TestDisplayMemory(t *testing.T) {
	assert := assert.New(t)

	cpu, host := newTestCpu(t)

	// Segment 0, commons 0-3.
	cpu.Write(io.MEM_DISPLAY1_ADDR, 0x5)
	assert.Equal(uint8(0x5), cpu.Read(io.MEM_DISPLAY1_ADDR))
	assert.True(host.Matrix[0][0])
	assert.False(host.Matrix[1][0])
	assert.True(host.Matrix[2][0])

	// Segment 0, commons 12-15, in the second bank.
	cpu.Write(io.MEM_DISPLAY2_ADDR+1, 0x8)
	assert.True(host.Matrix[15][0])

	// Icon segment 8, commons 0-3.
	cpu.Write(io.MEM_DISPLAY1_ADDR+0x10, 0x2)
	assert.True(host.Icon[1])
}

func TestBuzzerRegisters(t *testing.T) {
	assert := assert.New(t)

	cpu, host := newTestCpu(t)

	cpu.Write(io.REG_BUZZER_CTRL1, 0x3)
	assert.Equal(io.BuzzerFrequency(3), host.Frequency)
	assert.Equal(uint8(0x3), cpu.Read(io.REG_BUZZER_CTRL1))

	cpu.Write(io.REG_R40_R43_BZ_OUTPUT_PORT, 0x0)
	assert.True(host.Playing)
	cpu.Write(io.REG_R40_R43_BZ_OUTPUT_PORT, io.BUZZER_OUTPUT_OFF)
	assert.False(host.Playing)

	cpu.Memory[io.REG_SVD_CTRL] = 0xF
	assert.Equal(uint8(0x7), cpu.Read(io.REG_SVD_CTRL))
	cpu.Memory[io.REG_BUZZER_CTRL2] = 0xF
	assert.Equal(uint8(0x3), cpu.Read(io.REG_BUZZER_CTRL2))
	cpu.Memory[io.REG_SW_TIMER_CTRL] = 0xF
	assert.Equal(uint8(0x0), cpu.Read(io.REG_SW_TIMER_CTRL))
}

func TestRefreshHardware(t *testing.T) {
	assert := assert.New(t)

	cpu, host := newTestCpu(t)

	cpu.Memory[io.MEM_DISPLAY1_ADDR+2] = 0x1
	cpu.Memory[io.REG_BUZZER_CTRL1] = 0x5
	cpu.Memory[io.REG_R40_R43_BZ_OUTPUT_PORT] = 0x0

	cpu.RefreshHardware()

	assert.True(host.Matrix[0][1])
	assert.Equal(io.BuzzerFrequency(5), host.Frequency)
	assert.True(host.Playing)
}

func TestInputPins(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t)
	cpu.Interrupt[INT_K00_K03].Mask = 0x4

	pin, ok := io.BUTTON_LEFT.Pin()
	assert.True(ok)

	cpu.SetInputPin(pin, io.PinLevel(true))
	assert.Equal(uint8(0xB), cpu.Read(io.REG_K00_K03_INPUT_PORT))
	assert.True(cpu.Interrupt[INT_K00_K03].Triggered)
	assert.Equal(uint8(0x4), cpu.Read(io.REG_K00_K03_INT_FACTOR_FLAGS))

	cpu.SetInputPin(pin, io.PinLevel(false))
	assert.Equal(uint8(0xF), cpu.Read(io.REG_K00_K03_INPUT_PORT))
	assert.Equal(uint8(0x0), cpu.Read(io.REG_K00_K03_INT_FACTOR_FLAGS))

	cpu.SetInputPin(io.PIN_K11, false)
	assert.Equal(uint8(0xD), cpu.Read(io.REG_K10_K13_INPUT_PORT))
	assert.Equal(uint8(0x2), cpu.Read(io.REG_K10_K13_INT_FACTOR_FLAGS))
}
