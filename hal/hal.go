// Package hal defines the host adapter the emulator core calls out to, and
// the pacing service converting emulated cycles into wall-clock delays.
//
// The core never touches a screen, an audio device or the clock directly;
// every host visible effect flows one way outward through a Host.
package hal

// Timestamp is a host clock reading, in host ticks (see Pacer.Frequency).
type Timestamp uint64

// DECIHERTZ is the number of frequency units per hertz passed to
// Host.SetFrequency.
const DECIHERTZ = 10

// LogLevel selects a class of log messages.
type LogLevel int

// Log levels: recoverable errors, informational messages, the memory
// access trace and the instruction trace.
//
//go:generate go tool stringer -linecomment -type=LogLevel
const (
	LOG_ERROR  = LogLevel(0x1) // error
	LOG_INFO   = LogLevel(0x2) // info
	LOG_MEMORY = LogLevel(0x4) // memory
	LOG_CPU    = LogLevel(0x8) // cpu

	LOG_ALL = LOG_ERROR | LOG_INFO | LOG_MEMORY | LOG_CPU // all
)

// Host is the set of capabilities the core requires from its embedder.
type Host interface {
	// Halt is called when the CPU executes the HALT instruction.
	Halt()

	// IsLogEnabled reports if messages at level should be formatted at all.
	IsLogEnabled(level LogLevel) bool
	// Log emits an already formatted message.
	Log(level LogLevel, msg string)

	// Timestamp returns the current host clock.
	Timestamp() Timestamp
	// SleepUntil blocks the caller until the host clock reaches ts.
	SleepUntil(ts Timestamp)

	// UpdateScreen is called at the configured frame rate from the mainloop.
	UpdateScreen()
	// SetPixel sets a dot of the LCD matrix.
	SetPixel(x, y int, on bool)
	// SetIcon sets one of the LCD icons.
	SetIcon(icon int, on bool)

	// SetFrequency sets the buzzer frequency, in decihertz (tenths of a
	// hertz, see DECIHERTZ): 4096 Hz is passed as 40960.
	SetFrequency(decihertz uint32)
	// Play enables or disables the buzzer.
	Play(enable bool)

	// Handler is polled once per mainloop iteration; returning true
	// requests the mainloop to terminate.
	Handler() bool
}
