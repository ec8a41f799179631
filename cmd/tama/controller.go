package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/ezrec/tama/emulator"
	"github.com/ezrec/tama/hal"
	tamaio "github.com/ezrec/tama/io"
	"github.com/ezrec/tama/translate"
)

var f = translate.From

const (
	COMMAND_QUEUE = 64 // Pending commands from the user interface.
)

// action is a debugger or user interface request.
type action int

const (
	ACTION_NONE = action(iota)
	ACTION_PAUSE
	ACTION_STEP
	ACTION_NEXT
	ACTION_TO_CALL
	ACTION_TO_RET
	ACTION_RESET
	ACTION_TURBO
	ACTION_INFO
	ACTION_QUIT
)

// runeAction maps terminal keys to actions. The window host uses the same letters.
var runeAction = map[rune]action{
	'p':  ACTION_PAUSE,
	' ':  ACTION_STEP,
	'n':  ACTION_NEXT,
	'c':  ACTION_TO_CALL,
	'o':  ACTION_TO_RET,
	'r':  ACTION_RESET,
	'\t': ACTION_TURBO,
	'i':  ACTION_INFO,
	'q':  ACTION_QUIT,
	0x03: ACTION_QUIT, // Ctrl-C in raw mode.
}

var runeButton = map[rune]tamaio.Button{
	'a': tamaio.BUTTON_LEFT,
	's': tamaio.BUTTON_MIDDLE,
	'd': tamaio.BUTTON_RIGHT,
}

var iconName = [hal.ICON_COUNT]string{
	"food", "light", "game", "medic",
	"bath", "stats", "disc", "attn",
}

// command runs on the emulator goroutine.
type command func(emu *emulator.Emulator)

// controller is the host shared by the window and terminal front ends.
// The LCD state lives in the embedded Headless host, the clock is real
// time at the configured frequency, and user interface requests are
// queued until the mainloop polls Handler.
type controller struct {
	*hal.Headless
	Emu    *emulator.Emulator
	Buzzer *buzzer

	frequency uint32
	start     time.Time
	speed     uint8 // Speed restored when turbo is toggled off.
	commands  chan command
	quit      atomic.Bool
	status    atomic.Pointer[string]
}

var _ hal.Host = (*controller)(nil)

func newController(freq uint32, speed uint8) (ctl *controller) {
	ctl = &controller{
		Headless:  &hal.Headless{Levels: hal.LOG_ERROR},
		frequency: freq,
		start:     time.Now(),
		speed:     max(speed, 1),
		commands:  make(chan command, COMMAND_QUEUE),
	}

	return
}

func (ctl *controller) Timestamp() hal.Timestamp {
	elapsed := time.Since(ctl.start)
	secs := uint64(elapsed / time.Second)
	frac := uint64(elapsed % time.Second)
	freq := uint64(ctl.frequency)
	return hal.Timestamp(secs*freq + frac*freq/uint64(time.Second))
}

func (ctl *controller) SleepUntil(ts hal.Timestamp) {
	now := ctl.Timestamp()
	if ts <= now {
		return
	}
	delay := uint64(ts-now) * uint64(time.Second) / uint64(ctl.frequency)
	time.Sleep(time.Duration(delay))
}

func (ctl *controller) SetFrequency(decihertz uint32) {
	ctl.Headless.SetFrequency(decihertz)
	if ctl.Buzzer != nil {
		ctl.Buzzer.SetFrequency(decihertz)
	}
}

func (ctl *controller) Play(enable bool) {
	ctl.Headless.Play(enable)
	if ctl.Buzzer != nil {
		ctl.Buzzer.Play(enable)
	}
}

func (ctl *controller) UpdateScreen() {
	ctl.Headless.UpdateScreen()
	status := ctl.statusLine()
	ctl.status.Store(&status)
}

// Handler runs the queued commands, and reports if a quit was requested.
func (ctl *controller) Handler() bool {
	for {
		select {
		case cmd := <-ctl.commands:
			cmd(ctl.Emu)
		default:
			return ctl.quit.Load()
		}
	}
}

// Status returns the most recent status line.
func (ctl *controller) Status() string {
	status := ctl.status.Load()
	if status == nil {
		return ""
	}
	return *status
}

func (ctl *controller) statusLine() string {
	emu := ctl.Emu
	if emu == nil {
		return ""
	}
	st := emu.State()
	mode := emu.ExecMode().String()
	if emu.Faulted() != nil {
		mode = "fault"
	} else if emu.Halted() {
		mode += "/halt"
	}
	return f("%-10v pc=%04X a=%X b=%X x=%03X y=%03X sp=%02X x%v",
		mode, st.Pc, st.A, st.B, st.X, st.Y, st.Sp, emu.Speed())
}

// Post queues a command for the emulator goroutine.
func (ctl *controller) Post(cmd command) {
	select {
	case ctl.commands <- cmd:
	default:
		ctl.Log(hal.LOG_ERROR, f("command queue full"))
	}
}

// Press presses or releases a button.
func (ctl *controller) Press(btn tamaio.Button, pressed bool) {
	ctl.Post(func(emu *emulator.Emulator) {
		emu.SetButton(btn, pressed)
	})
}

// Do requests an action.
func (ctl *controller) Do(act action) {
	if act == ACTION_QUIT {
		ctl.quit.Store(true)
		return
	}

	ctl.Post(func(emu *emulator.Emulator) {
		ctl.apply(emu, act)
	})
}

func (ctl *controller) apply(emu *emulator.Emulator, act action) {
	var err error

	switch act {
	case ACTION_PAUSE:
		mode := emulator.MODE_PAUSE
		if emu.ExecMode() == emulator.MODE_PAUSE {
			mode = emulator.MODE_RUN
		}
		err = emu.SetExecMode(mode)
	case ACTION_STEP:
		err = emu.SetExecMode(emulator.MODE_STEP)
	case ACTION_NEXT:
		err = emu.SetExecMode(emulator.MODE_NEXT)
	case ACTION_TO_CALL:
		err = emu.SetExecMode(emulator.MODE_TO_CALL)
	case ACTION_TO_RET:
		err = emu.SetExecMode(emulator.MODE_TO_RET)
	case ACTION_RESET:
		err = emu.Reset()
		emu.RefreshHardware()
	case ACTION_TURBO:
		if emu.Speed() == 0 {
			err = emu.SetSpeed(ctl.speed)
		} else {
			ctl.speed = emu.Speed()
			err = emu.SetSpeed(0)
		}
	case ACTION_INFO:
		st := emu.State()
		log.Printf("%v\n%v", emu.Line(st.Pc), st)
	}

	if err != nil {
		ctl.Log(hal.LOG_ERROR, f("%v", err))
	}
}
