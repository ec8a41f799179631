package io

import (
	"github.com/ezrec/tama/hal"
)

const (
	LCD_SEGMENTS = 40 // Segment lines driven by the display memory.
	LCD_COMMONS  = 16 // Common lines.
)

// segmentColumn maps a segment line to an LCD matrix column.
// Values at or above hal.SCREEN_WIDTH are not part of the matrix.
var segmentColumn = [LCD_SEGMENTS]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 32, 8,
	9, 10, 11, 12, 13, 14, 15, 33, 34, 35,
	31, 30, 29, 28, 27, 26, 25, 24, 36, 23,
	22, 21, 20, 19, 18, 17, 16, 37, 38, 39,
}

// Icon segments, and the commons they use.
const (
	ICON_SEGMENT_TOP    = 8  // Commons 0-3 are icons 0-3.
	ICON_SEGMENT_BOTTOM = 28 // Commons 12-15 are icons 4-7.
)

// LCD translates display memory writes into matrix dots and icons.
type LCD struct {
	Host hal.Host
}

// Write decodes a nibble stored at a display memory address. Each bit of
// the nibble drives one common line of the addressed segment.
func (lcd *LCD) Write(addr uint16, value uint8) {
	seg := int((addr & 0x7F) >> 1)
	com0 := int(((addr&0x80)>>7)*8 + (addr&0x1)*4)

	for i := range 4 {
		lcd.SetPin(seg, com0+i, ((value>>i)&0x1) != 0)
	}
}

// SetPin drives a single segment/common crossing.
func (lcd *LCD) SetPin(seg int, com int, on bool) {
	if lcd.Host == nil || seg < 0 || seg >= LCD_SEGMENTS {
		return
	}

	column := int(segmentColumn[seg])
	if column < hal.SCREEN_WIDTH {
		lcd.Host.SetPixel(column, com, on)
		return
	}

	switch {
	case seg == ICON_SEGMENT_TOP && com < 4:
		lcd.Host.SetIcon(com, on)
	case seg == ICON_SEGMENT_BOTTOM && com >= 12:
		lcd.Host.SetIcon(com-8, on)
	}
}
