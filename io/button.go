package io

// Pin is an input port pin. Bit 2 selects the port (K0x or K1x),
// bits 0-1 the line within the port.
type Pin int

const (
	PIN_K00 = Pin(0x0)
	PIN_K01 = Pin(0x1)
	PIN_K02 = Pin(0x2)
	PIN_K03 = Pin(0x3)
	PIN_K10 = Pin(0x4)
	PIN_K11 = Pin(0x5)
	PIN_K12 = Pin(0x6)
	PIN_K13 = Pin(0x7)
)

// Port returns the input port index of the pin.
func (pin Pin) Port() int {
	return int(pin>>2) & 0x1
}

// Line returns the bit of the pin within its port.
func (pin Pin) Line() uint8 {
	return uint8(pin) & 0x3
}

// Button is one of the momentary buttons of the toy.
type Button int

//go:generate go tool stringer -linecomment -type=Button
const (
	BUTTON_LEFT   = Button(0) // left
	BUTTON_MIDDLE = Button(1) // middle
	BUTTON_RIGHT  = Button(2) // right
	BUTTON_COUNT  = 3
)

var buttonPin = [BUTTON_COUNT]Pin{
	BUTTON_LEFT:   PIN_K02,
	BUTTON_MIDDLE: PIN_K01,
	BUTTON_RIGHT:  PIN_K00,
}

// Pin returns the input pin wired to the button.
func (btn Button) Pin() (pin Pin, ok bool) {
	if btn < 0 || btn >= BUTTON_COUNT {
		return
	}
	return buttonPin[btn], true
}

// PinLevel returns the logic level of a button pin. Buttons are active low.
func PinLevel(pressed bool) (high bool) {
	return !pressed
}
