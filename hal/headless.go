package hal

import (
	"log"
	"strings"
	"sync"
	"time"
)

const (
	SCREEN_WIDTH  = 32 // LCD dot matrix columns.
	SCREEN_HEIGHT = 16 // LCD dot matrix rows.
	ICON_COUNT    = 8  // LCD icons around the matrix.
)

// Headless is a Host without any device attached. It keeps the LCD and
// buzzer state in memory and logs through the standard logger.
//
// With Virtual set the clock only moves when the core sleeps, which makes
// runs deterministic and instantaneous.
type Headless struct {
	Levels  LogLevel    // Enabled log levels.
	Logger  *log.Logger // Destination for log messages; nil uses the standard logger.
	Virtual bool        // Use a virtual clock (microseconds).

	// Quit, if set, is polled by Handler.
	Quit func() bool

	Lock      sync.Mutex
	Matrix    [SCREEN_HEIGHT][SCREEN_WIDTH]bool
	Icon      [ICON_COUNT]bool
	Frequency uint32
	Playing   bool

	Halts  int // Number of HALT notifications.
	Frames int // Number of UpdateScreen calls.

	now   Timestamp
	start time.Time
}

var _ Host = (*Headless)(nil)

// NewHeadless creates a headless host with a virtual clock.
func NewHeadless() *Headless {
	return &Headless{
		Levels:  LOG_ERROR,
		Virtual: true,
	}
}

func (h *Headless) Halt() {
	h.Halts++
}

func (h *Headless) IsLogEnabled(level LogLevel) bool {
	return (h.Levels & level) != 0
}

func (h *Headless) Log(level LogLevel, msg string) {
	msg = strings.TrimRight(msg, "\n")
	if h.Logger != nil {
		h.Logger.Printf("%v: %v", level, msg)
		return
	}
	log.Printf("%v: %v", level, msg)
}

// Timestamp returns microseconds since the host was first used.
func (h *Headless) Timestamp() Timestamp {
	if h.Virtual {
		return h.now
	}
	if h.start.IsZero() {
		h.start = time.Now()
	}
	return Timestamp(time.Since(h.start).Microseconds())
}

func (h *Headless) SleepUntil(ts Timestamp) {
	if h.Virtual {
		if ts > h.now {
			h.now = ts
		}
		return
	}
	now := h.Timestamp()
	if ts > now {
		time.Sleep(time.Duration(ts-now) * time.Microsecond)
	}
}

// Advance moves the virtual clock forward.
func (h *Headless) Advance(us uint64) {
	h.now += Timestamp(us)
}

func (h *Headless) UpdateScreen() {
	h.Frames++
}

func (h *Headless) SetPixel(x, y int, on bool) {
	if x < 0 || x >= SCREEN_WIDTH || y < 0 || y >= SCREEN_HEIGHT {
		return
	}
	h.Lock.Lock()
	h.Matrix[y][x] = on
	h.Lock.Unlock()
}

func (h *Headless) SetIcon(icon int, on bool) {
	if icon < 0 || icon >= ICON_COUNT {
		return
	}
	h.Lock.Lock()
	h.Icon[icon] = on
	h.Lock.Unlock()
}

func (h *Headless) SetFrequency(decihertz uint32) {
	h.Frequency = decihertz
}

func (h *Headless) Play(enable bool) {
	h.Playing = enable
}

func (h *Headless) Handler() bool {
	if h.Quit == nil {
		return false
	}
	return h.Quit()
}

// String renders the LCD matrix as text, one row per line.
func (h *Headless) String() string {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	var sb strings.Builder
	for _, row := range h.Matrix {
		for _, dot := range row {
			if dot {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
