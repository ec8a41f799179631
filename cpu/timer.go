package cpu

const (
	TIMER_1HZ_PERIOD   = 32768 // Clock timer period, in ticks.
	TIMER_256HZ_PERIOD = 128   // Programmable timer period, in ticks.
)

// ProgTimer is the programmable timer state.
type ProgTimer struct {
	Enabled bool
	Data    uint8 // Countdown.
	Reload  uint8 // Value loaded when the countdown expires.

	timestamp uint32 // Tick of the last period boundary.
}

// handleTimers advances both timers to the current tick counter.
// A single instruction may span several timer periods; each period crossed
// is accounted for.
func (cpu *Cpu) handleTimers() {
	for cpu.Ticks-cpu.clockTimestamp >= TIMER_1HZ_PERIOD {
		cpu.clockTimestamp += TIMER_1HZ_PERIOD
		cpu.Raise(INT_CLOCK_TIMER, 3)
	}

	pt := &cpu.ProgTimer
	if !pt.Enabled {
		return
	}
	for cpu.Ticks-pt.timestamp >= TIMER_256HZ_PERIOD {
		pt.timestamp += TIMER_256HZ_PERIOD
		pt.Data--
		if pt.Data == 0 {
			pt.Data = pt.Reload
			cpu.Raise(INT_PROG_TIMER, 0)
		}
	}
}

// writeProgTimerCtrl handles a write to the programmable timer control register.
func (cpu *Cpu) writeProgTimerCtrl(value uint8) {
	pt := &cpu.ProgTimer
	if (value & 0x2) != 0 {
		pt.Data = pt.Reload
	}
	enable := (value & 0x1) != 0
	if enable && !pt.Enabled {
		pt.timestamp = cpu.Ticks
	}
	pt.Enabled = enable
}
