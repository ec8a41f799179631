package io

import (
	"github.com/ezrec/tama/hal"
)

// buzzerFrequency is the tone for each frequency select code, in decihertz.
var buzzerFrequency = [8]uint32{
	40960, // 4096.0 Hz
	32768, // 3276.8 Hz
	27307, // 2730.7 Hz
	23406, // 2340.6 Hz
	20480, // 2048.0 Hz
	16384, // 1638.4 Hz
	13653, // 1365.3 Hz
	11703, // 1170.3 Hz
}

// BuzzerFrequency returns the tone of a 3-bit frequency select code.
func BuzzerFrequency(sel uint8) uint32 {
	return buzzerFrequency[sel&0x7]
}

// Buzzer forwards the buzzer controls to the host audio.
type Buzzer struct {
	Host hal.Host

	Select  uint8 // Last frequency select code.
	Enabled bool  // Buzzer output enabled.
}

// SetFrequency selects the buzzer tone.
func (bz *Buzzer) SetFrequency(sel uint8) {
	bz.Select = sel & 0x7
	if bz.Host != nil {
		bz.Host.SetFrequency(BuzzerFrequency(bz.Select))
	}
}

// Enable turns the buzzer output on or off.
func (bz *Buzzer) Enable(on bool) {
	bz.Enabled = on
	if bz.Host != nil {
		bz.Host.Play(on)
	}
}
