package cpu

// Flags is the 4-bit flag register.
type Flags uint8

const (
	FLAG_C = Flags(0x1) // Carry
	FLAG_Z = Flags(0x2) // Zero
	FLAG_D = Flags(0x4) // Decimal adjust
	FLAG_I = Flags(0x8) // Interrupt enable
)

// Has returns true if every bit of flag is set.
func (fl Flags) Has(flag Flags) bool {
	return (fl & flag) == flag
}

// Set sets or clears flag.
func (fl *Flags) Set(flag Flags, on bool) {
	if on {
		*fl |= flag
	} else {
		*fl &^= flag
	}
}

// Carry returns 1 if the carry flag is set.
func (fl Flags) Carry() uint8 {
	return uint8(fl & FLAG_C)
}

func (fl Flags) String() string {
	out := []byte("czdi")
	for n, flag := range []Flags{FLAG_C, FLAG_Z, FLAG_D, FLAG_I} {
		if fl.Has(flag) {
			out[n] -= 'a' - 'A'
		}
	}
	return string(out)
}
