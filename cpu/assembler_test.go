package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(source ...string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(source, "\n")))
}

func TestAssemblerDefines(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LEVEL", "0x4")

	prog, err := asm.Parse(strings.NewReader("LD A,LEVEL ; comment"))
	assert.NoError(err)
	assert.Equal(uint16(0xE04), prog.Words[0x100])

	assert.Equal("1", asm.Equate["LINENO"])
	assert.Equal("0xF10", asm.Equate["REG_CLOCK_INT_MASKS"])
	assert.Equal("0xE80", asm.Equate["MEM_DISPLAY2_ADDR"])
	assert.Equal("0x8", asm.Equate["FLAG_I"])
	assert.Equal("0x100", asm.Equate["RESET_PC"])
	assert.Equal("0x1", asm.Equate["FLAG_C"])
	assert.Equal("0x2", asm.Equate["FLAG_Z"])
	assert.Equal("0x4", asm.Equate["FLAG_D"])
}

func TestAssemblerFlagDefines(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		"SET F,FLAG_I",
		"SET F,$(FLAG_C | FLAG_Z)",
		"RST F,FLAG_D",
	)
	require.NoError(t, err)

	assert.Equal([]uint16{0xF48, 0xF43, 0xF54}, prog.Words[0x100:])
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		".equ COUNT 3",
		".equ MASK $(COUNT * 2)",
		"start: LD A,COUNT",
		"  LD B,MASK",
		"  JP start",
		".org 0x120",
		"far: .word 0xABC",
		"  CALL far",
		"  LD A,$(far & 0xF)",
	)
	require.NoError(t, err)

	assert.Equal(0x123, len(prog.Words))
	assert.Equal(uint16(0xE03), prog.Words[0x100])
	assert.Equal(uint16(0xE16), prog.Words[0x101])
	assert.Equal(uint16(0x000), prog.Words[0x102])
	assert.Equal(uint16(PROGRAM_FILL), prog.Words[0x110])
	assert.Equal(uint16(0xABC), prog.Words[0x120])
	assert.Equal(uint16(0x420), prog.Words[0x121])
	assert.Equal(uint16(0xE00), prog.Words[0x122])

	line, ok := prog.Debug(0x121)
	assert.True(ok)
	assert.Equal(Line{Pc: 0x121, LineNo: 8, Text: "CALL far"}, line)
	assert.Equal("0121: 8: CALL far", line.String())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(
		".macro SETM addr, val",
		"  LD A,val",
		"  LD M(addr),A",
		"@loop: JP @loop",
		".endm",
		"SETM 0x3, 0x7",
		"SETM 0x4, 0x8",
	)
	require.NoError(t, err)

	assert.Equal([]uint16{0xE07, 0xF83, 0x002, 0xE08, 0xF84, 0x005}, prog.Words[0x100:])
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		source []string
		err    error
		lineno int
	}{
		{"empty", []string{"; nothing"}, ErrProgramEmpty, 1},
		{"opcode", []string{"NOP5", "FOO A"}, ErrOpcodeInvalid, 2},
		{"range", []string{"LD A,0x10"}, ErrOperandRange, 1},
		{"operand", []string{"PUSH X"}, ErrOperandInvalid, 1},
		{"label_dup", []string{"a: NOP5", "a: NOP5"}, ErrLabelDuplicate, 2},
		{"equ_syntax", []string{".equ X"}, ErrEquateSyntax, 1},
		{"equ_dup", []string{".equ X 1", ".equ X 2"}, ErrEquateDuplicate, 2},
		{"org", []string{".org 0x4000"}, ErrOrgSyntax, 1},
		{"word", []string{".word"}, ErrWordSyntax, 1},
		{"word_range", []string{".word 0x1000"}, ErrOperandRange, 1},
		{"overlap", []string{"NOP5", ".org 0x100", "NOP7"}, ErrAddressOverlap, 3},
		{"macro_lonely", []string{".macro M", "NOP5"}, ErrMacroLonely, 2},
		{"macro_endm", []string{".endm"}, ErrMacroLonelyEndm, 1},
		{"macro_nest", []string{".macro M", ".macro N"}, ErrMacroNesting, 2},
		{"macro_args", []string{".macro M a", "NOP5", ".endm", "M"}, ErrMacroSyntax, 4},
	}

	for _, entry := range table {
		_, err := assemble(entry.source...)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntaxErr *ErrSyntax
		if assert.True(errors.As(err, &syntaxErr), entry.name) {
			assert.Equal(entry.lineno, syntaxErr.LineNo, entry.name)
		}
	}
}

func TestAssemblerLabelMissing(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble("JP nowhere")

	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal(ErrLabelMissing("nowhere"), missing)

	_, err = assemble("LD A,$(1 +)")
	var expr ErrParseExpression
	assert.True(errors.As(err, &expr))
}

func TestAssemblerDisassembly(t *testing.T) {
	assert := assert.New(t)

	var source []string
	for word := range uint16(0x1000) {
		ins, err := Decode(word)
		if err != nil {
			continue
		}
		source = append(source, ins.String())
	}

	prog, err := assemble(source...)
	require.NoError(t, err)

	for n, text := range source {
		pc := uint16(ORIGIN_DEFAULT + n)
		ins, err := Decode(prog.Words[pc])
		assert.NoError(err, text)
		assert.Equal(text, ins.String(), fmt.Sprintf("0x%04X", pc))
	}
}
