package hal

const (
	TICK_FREQUENCY = 32768 // Emulated oscillator frequency, in Hz.
)

// Pacer throttles emulated cycles to the host clock.
type Pacer struct {
	Host      Host   // Host providing the clock.
	Frequency uint32 // Host timestamp ticks per second.
	Speed     uint8  // 0: unthrottled, 1: real time, N: N times real time.

	ref Timestamp // Reference point of the next deadline.
}

// Sync re-seeds the reference timestamp from the host clock.
func (p *Pacer) Sync() {
	if p.Host == nil {
		return
	}
	p.ref = p.Host.Timestamp()
}

// Reference returns the timestamp the next wait is computed from.
func (p *Pacer) Reference() Timestamp {
	return p.ref
}

// Deadline computes when the given number of cycles, started at since,
// have elapsed at the current speed.
func (p *Pacer) Deadline(since Timestamp, cycles uint32) Timestamp {
	if p.Speed == 0 {
		return since
	}
	delay := uint64(cycles) * uint64(p.Frequency) / (TICK_FREQUENCY * uint64(p.Speed))
	return since + Timestamp(delay)
}

// Wait blocks until the given number of cycles have elapsed since the
// previous wait, and advances the reference point.
// When unthrottled, it never sleeps and tracks the host clock instead.
func (p *Pacer) Wait(cycles uint32) {
	if p.Host == nil {
		return
	}

	if p.Speed == 0 {
		p.ref = p.Host.Timestamp()
		return
	}

	deadline := p.Deadline(p.ref, cycles)
	p.Host.SleepUntil(deadline)
	p.ref = deadline
}
