package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/ezrec/tama/hal"
	tamaio "github.com/ezrec/tama/io"
)

const (
	WINDOW_MARGIN = 8
	ICON_ROW      = 20 // Height of each icon row.
	STATUS_ROW    = 18 // Height of the status line.
	STATUS_WIDTH  = 64 // Characters in the status line.
)

var (
	colorBackground = color.RGBA{0xC8, 0xD0, 0xB0, 0xFF}
	colorDotOn      = color.RGBA{0x20, 0x28, 0x20, 0xFF}
	colorDotOff     = color.RGBA{0xB8, 0xC0, 0xA0, 0xFF}
	colorIconOff    = color.RGBA{0xA0, 0xA8, 0x90, 0xFF}
	colorStatus     = color.RGBA{0x40, 0x40, 0x40, 0xFF}
)

var windowButton = map[ebiten.Key]tamaio.Button{
	ebiten.KeyA:          tamaio.BUTTON_LEFT,
	ebiten.KeyS:          tamaio.BUTTON_MIDDLE,
	ebiten.KeyD:          tamaio.BUTTON_RIGHT,
	ebiten.KeyArrowLeft:  tamaio.BUTTON_LEFT,
	ebiten.KeyArrowDown:  tamaio.BUTTON_MIDDLE,
	ebiten.KeyArrowRight: tamaio.BUTTON_RIGHT,
}

var windowAction = map[ebiten.Key]action{
	ebiten.KeyP:      ACTION_PAUSE,
	ebiten.KeySpace:  ACTION_STEP,
	ebiten.KeyN:      ACTION_NEXT,
	ebiten.KeyC:      ACTION_TO_CALL,
	ebiten.KeyO:      ACTION_TO_RET,
	ebiten.KeyR:      ACTION_RESET,
	ebiten.KeyTab:    ACTION_TURBO,
	ebiten.KeyI:      ACTION_INFO,
	ebiten.KeyEscape: ACTION_QUIT,
}

// window is the ebiten front end. It draws the LCD and icons, and maps
// the keyboard to buttons and debugger actions.
type window struct {
	*controller
	Scale int

	dotOn  *ebiten.Image
	dotOff *ebiten.Image
}

func newWindow(ctl *controller, scale int) (w *window) {
	scale = max(scale, 2)

	w = &window{
		controller: ctl,
		Scale:      scale,
		dotOn:      ebiten.NewImage(scale-1, scale-1),
		dotOff:     ebiten.NewImage(scale-1, scale-1),
	}
	w.dotOn.Fill(colorDotOn)
	w.dotOff.Fill(colorDotOff)

	return
}

func (w *window) size() (width, height int) {
	face := basicfont.Face7x13
	width = max(hal.SCREEN_WIDTH*w.Scale, STATUS_WIDTH*face.Advance) + 2*WINDOW_MARGIN
	height = 2*WINDOW_MARGIN + 2*ICON_ROW + hal.SCREEN_HEIGHT*w.Scale + STATUS_ROW
	return
}

// Run blocks until the window is closed, or a quit is requested.
func (w *window) Run() (err error) {
	width, height := w.size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("tama")
	ebiten.SetRunnableOnUnfocused(true)

	err = ebiten.RunGame(w)
	w.quit.Store(true)

	return
}

func (w *window) Update() error {
	if w.quit.Load() {
		return ebiten.Termination
	}

	for key, btn := range windowButton {
		if inpututil.IsKeyJustPressed(key) {
			w.Press(btn, true)
		} else if inpututil.IsKeyJustReleased(key) {
			w.Press(btn, false)
		}
	}

	for key, act := range windowAction {
		if inpututil.IsKeyJustPressed(key) {
			w.Do(act)
		}
	}

	return nil
}

func (w *window) drawIcons(screen *ebiten.Image, icons []bool, first int, baseline int) {
	face := basicfont.Face7x13
	width, _ := w.size()
	column := (width - 2*WINDOW_MARGIN) / len(icons)

	for n, on := range icons {
		clr := color.Color(colorIconOff)
		if on {
			clr = colorDotOn
		}
		text.Draw(screen, iconName[first+n], face, WINDOW_MARGIN+n*column, baseline, clr)
	}
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	w.Lock.Lock()
	matrix := w.Matrix
	icons := w.Icon
	w.Lock.Unlock()

	width, height := w.size()
	left := (width - hal.SCREEN_WIDTH*w.Scale) / 2
	top := WINDOW_MARGIN + ICON_ROW

	w.drawIcons(screen, icons[:4], 0, top-6)

	for y, row := range matrix {
		for x, on := range row {
			dot := w.dotOff
			if on {
				dot = w.dotOn
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(left+x*w.Scale), float64(top+y*w.Scale))
			screen.DrawImage(dot, op)
		}
	}

	bottom := top + hal.SCREEN_HEIGHT*w.Scale
	w.drawIcons(screen, icons[4:], 4, bottom+ICON_ROW-6)

	text.Draw(screen, w.Status(), basicfont.Face7x13, WINDOW_MARGIN, height-WINDOW_MARGIN, colorStatus)
}

func (w *window) Layout(_, _ int) (int, int) {
	return w.size()
}
