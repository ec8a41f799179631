package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTerminalRender(t *testing.T) {
	assert := assert.New(t)

	ctl := newTestController(t, "loop: JP loop")
	var out bytes.Buffer
	tty := &terminal{controller: ctl, Out: &out}

	tty.SetPixel(0, 0, true)
	tty.SetPixel(31, 15, true)
	tty.SetIcon(0, true)
	tty.SetIcon(7, true)

	tty.UpdateScreen()
	text := out.String()

	assert.True(strings.HasPrefix(text, "\x1b[H"))
	lines := strings.Split(text, "\r\n")
	// Icons, 16 rows, icons, status, trailing empty.
	assert.Len(lines, 1+16+1+1+1)
	assert.Contains(lines[0], "[food ]")
	assert.Contains(lines[0], " light ")
	assert.Equal("██"+strings.Repeat("  ", 31), lines[1])
	assert.Equal(strings.Repeat("  ", 31)+"██", lines[16])
	assert.Contains(lines[17], "[attn ]")
	assert.Contains(lines[18], "pc=0100")
}

func TestTerminalKeys(t *testing.T) {
	assert := assert.New(t)

	ctl := newTestController(t, "loop: JP loop")
	tty := &terminal{controller: ctl}

	tty.readKeys(strings.NewReader("ap"))
	assert.True(ctl.quit.Load())
	ctl.quit.Store(false)

	ctl.Handler()
	assert.Equal(uint8(0xB), ctl.Emu.Cpu.Input[0])
	assert.Equal("pause", ctl.Emu.ExecMode().String())

	assert.Eventually(func() bool {
		ctl.Handler()
		return ctl.Emu.Cpu.Input[0] == 0xF
	}, time.Second, 10*time.Millisecond)

	tty.key('q')
	assert.True(ctl.Handler())
}
