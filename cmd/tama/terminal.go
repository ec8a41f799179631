package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/tama/hal"
)

const (
	TERMINAL_PRESS = 150 * time.Millisecond // Terminals have no key release.
)

var ErrNotTerminal = errors.New(f("standard input is not a terminal"))

// terminal is the text front end. It renders the LCD with block
// characters and reads single keys in raw mode.
type terminal struct {
	*controller
	Out io.Writer

	fd    int
	state *term.State
}

func newTerminal(ctl *controller) *terminal {
	return &terminal{
		controller: ctl,
		Out:        os.Stdout,
		fd:         int(os.Stdin.Fd()),
	}
}

// Start puts the terminal in raw mode, and starts reading keys.
func (t *terminal) Start() (err error) {
	if !term.IsTerminal(t.fd) {
		err = ErrNotTerminal
		return
	}

	t.state, err = term.MakeRaw(t.fd)
	if err != nil {
		return
	}

	fmt.Fprint(t.Out, "\x1b[2J")

	go t.readKeys(os.Stdin)

	return
}

// Stop restores the terminal.
func (t *terminal) Stop() {
	if t.state != nil {
		_ = term.Restore(t.fd, t.state)
		t.state = nil
	}
	fmt.Fprint(t.Out, "\r\n")
}

func (t *terminal) readKeys(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			t.key(rune(buf[0]))
		}
		if err != nil {
			t.quit.Store(true)
			return
		}
	}
}

func (t *terminal) key(r rune) {
	if btn, ok := runeButton[r]; ok {
		t.Press(btn, true)
		time.AfterFunc(TERMINAL_PRESS, func() {
			t.Press(btn, false)
		})
		return
	}

	if act, ok := runeAction[r]; ok {
		t.Do(act)
	}
}

func (t *terminal) UpdateScreen() {
	t.controller.UpdateScreen()
	fmt.Fprint(t.Out, t.render())
}

func (t *terminal) renderIcons(sb *strings.Builder, icons []bool, first int) {
	for n, on := range icons {
		name := iconName[first+n]
		if on {
			fmt.Fprintf(sb, "[%-5s]", name)
		} else {
			fmt.Fprintf(sb, " %-5s ", name)
		}
	}
	sb.WriteString("\x1b[K\r\n")
}

// render draws the LCD, icons and status line from the top left corner.
func (t *terminal) render() string {
	t.Lock.Lock()
	matrix := t.Matrix
	icons := t.Icon
	t.Lock.Unlock()

	var sb strings.Builder
	sb.WriteString("\x1b[H")

	t.renderIcons(&sb, icons[:4], 0)
	for _, row := range matrix {
		for _, on := range row {
			if on {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\r\n")
	}
	t.renderIcons(&sb, icons[4:], 4)

	sb.WriteString(t.Status())
	sb.WriteString("\x1b[K\r\n")

	return sb.String()
}

var _ hal.Host = (*terminal)(nil)
