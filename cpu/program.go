package cpu

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"slices"
)

const (
	PROGRAM_SIZE_MAX = 0x2000 // Words addressable by the 13-bit program counter.
	PROGRAM_FILL     = 0xFFF  // Word of unassembled addresses (NOP7).
)

// Line is the source of one program word.
type Line struct {
	Pc     uint16 // Address of the word.
	LineNo int    // Source line number, 0 if unknown.
	Text   string // Source text.
}

func (line Line) String() string {
	if line.LineNo == 0 {
		return fmt.Sprintf("%04X: %v", line.Pc, line.Text)
	}
	return fmt.Sprintf("%04X: %v: %v", line.Pc, line.LineNo, line.Text)
}

// Program is a program image, with optional source listing.
type Program struct {
	Words []uint16 // One 12-bit word per address.
	Lines []Line   // Source lines, sorted by address.
}

// Debug returns the source line of the word at pc.
func (prog *Program) Debug(pc uint16) (line Line, ok bool) {
	n, ok := slices.BinarySearchFunc(prog.Lines, pc, func(line Line, pc uint16) int {
		return int(line.Pc) - int(pc)
	})
	if ok {
		line = prog.Lines[n]
		return
	}

	if int(pc) < len(prog.Words) {
		ins, err := Decode(prog.Words[pc])
		text := ins.String()
		if err != nil {
			text = fmt.Sprintf(".word 0x%03X", prog.Words[pc])
		}
		line = Line{Pc: pc, Text: text}
		ok = true
	}

	return
}

// Codes iterates over the program words.
func (prog *Program) Codes() iter.Seq2[uint16, uint16] {
	return func(yield func(pc uint16, word uint16) bool) {
		for pc, word := range prog.Words {
			if !yield(uint16(pc), word) {
				return
			}
		}
	}
}

// Binary returns the program image as big-endian 16-bit words.
func (prog *Program) Binary() (bin []byte) {
	bin = make([]byte, 0, len(prog.Words)*2)
	for _, word := range prog.Codes() {
		bin = binary.BigEndian.AppendUint16(bin, word&0xFFF)
	}

	return
}

// LoadProgram reads a binary program image: big-endian 16-bit words, of
// which the top nibble is ignored.
func LoadProgram(r io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	switch {
	case len(data) == 0:
		err = ErrProgramEmpty
		return
	case len(data)%2 != 0:
		err = ErrProgramPartialWord
		return
	case len(data)/2 > PROGRAM_SIZE_MAX:
		err = ErrProgramTooLarge
		return
	}

	prog = &Program{
		Words: make([]uint16, len(data)/2),
	}
	for n := range prog.Words {
		prog.Words[n] = binary.BigEndian.Uint16(data[n*2:]) & 0xFFF
	}

	return
}
