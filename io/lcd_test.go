package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/tama/hal"
)

func TestLCDWriteMatrix(t *testing.T) {
	assert := assert.New(t)

	host := hal.NewHeadless()
	lcd := &LCD{Host: host}

	// Segment 0, commons 0-3.
	lcd.Write(MEM_DISPLAY1_ADDR, 0x5)
	assert.True(host.Matrix[0][0])
	assert.False(host.Matrix[1][0])
	assert.True(host.Matrix[2][0])
	assert.False(host.Matrix[3][0])

	// Odd address selects commons 4-7.
	lcd.Write(MEM_DISPLAY1_ADDR+1, 0xF)
	for com := 4; com < 8; com++ {
		assert.True(host.Matrix[com][0], "com %d", com)
	}

	// Second bank selects commons 8-15.
	lcd.Write(MEM_DISPLAY2_ADDR+1, 0x8)
	assert.True(host.Matrix[15][0])
	assert.False(host.Matrix[12][0])

	// Segment 20 is column 31.
	lcd.Write(MEM_DISPLAY1_ADDR+40, 0x1)
	assert.True(host.Matrix[0][31])
}

func TestLCDIcons(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		addr uint16
		val  uint8
		icon int
	}{
		{"seg 8 com 0", MEM_DISPLAY1_ADDR + 16, 0x1, 0},
		{"seg 8 com 3", MEM_DISPLAY1_ADDR + 16, 0x8, 3},
		{"seg 28 com 12", MEM_DISPLAY2_ADDR + 57, 0x1, 4},
		{"seg 28 com 15", MEM_DISPLAY2_ADDR + 57, 0x8, 7},
	}

	for _, entry := range table {
		host := hal.NewHeadless()
		lcd := &LCD{Host: host}
		lcd.Write(entry.addr, entry.val)
		assert.True(host.Icon[entry.icon], entry.name)

		lcd.Write(entry.addr, 0)
		assert.False(host.Icon[entry.icon], entry.name)
	}
}

func TestLCDIgnored(t *testing.T) {
	assert := assert.New(t)

	host := hal.NewHeadless()
	lcd := &LCD{Host: host}

	// Segment 17 (column 33) is neither matrix nor icon.
	lcd.Write(MEM_DISPLAY1_ADDR+34, 0xF)
	assert.Equal([hal.ICON_COUNT]bool{}, host.Icon)
	assert.Equal([hal.SCREEN_HEIGHT][hal.SCREEN_WIDTH]bool{}, host.Matrix)

	// Out of range segments do nothing.
	lcd.SetPin(LCD_SEGMENTS, 0, true)
	lcd.SetPin(-1, 0, true)
	assert.Equal([hal.SCREEN_HEIGHT][hal.SCREEN_WIDTH]bool{}, host.Matrix)

	// No host attached.
	(&LCD{}).Write(MEM_DISPLAY1_ADDR, 0xF)
}

func TestSegmentColumnTable(t *testing.T) {
	assert := assert.New(t)

	seen := map[uint8]bool{}
	for _, column := range segmentColumn {
		assert.False(seen[column], "column %d duplicated", column)
		seen[column] = true
	}
	for column := range uint8(hal.SCREEN_WIDTH) {
		assert.True(seen[column], "column %d missing", column)
	}
}
