package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word   uint16
		kind   Kind
		arg0   uint8
		arg1   uint8
		cycles uint8
		text   string
	}{
		{0xB05, OP_LD_X, 0x05, 0, 5, "LD X,0x05"},
		{0xE03, OP_LD_R_I, R_A, 0x3, 5, "LD A,0x3"},
		{0xEC8, OP_LD_R_Q, R_MX, R_A, 5, "LD MX,A"},
		{0xFF8, OP_HALT, 0, 0, 5, "HALT"},
		{0xF48, OP_EI, 0, 0, 7, "EI"},
		{0xF4C, OP_SET, 0xC, 0, 7, "SET F,0xC"},
		{0xFA5, OP_LD_A_MN, 0x5, 0, 5, "LD A,M(0x5)"},
		{0xE52, OP_PSET, 0x12, 0, 5, "PSET 0x12"},
		{0x4A0, OP_CALL, 0xA0, 0, 7, "CALL 0xA0"},
		{0xD1F, OP_NOT, R_B, 0, 7, "NOT B"},
		{0xD1E, OP_XOR_R_I, R_B, 0xE, 7, "XOR B,0xE"},
		{0xAF5, OP_RLC, 0x5, 0, 7, "RLC B"},
		{0xEE0, OP_INC_X, 0, 0, 5, "INC X"},
		{0xEE7, OP_LDPX_R, R_B, R_MY, 5, "LDPX B,MY"},
		{0xF2B, OP_ACPX, R_MY, 0, 7, "ACPX MX,MY"},
		{0x1C3, OP_RETD, 0xC3, 0, 12, "RETD 0xC3"},
		{0xFDE, OP_RETS, 0, 0, 12, "RETS"},
		{0xA1F, OP_ADC_XL, 0xF, 0, 7, "ADC XL,0xF"},
	}

	for _, entry := range table {
		ins, err := Decode(entry.word)
		assert.NoError(err, entry.text)
		assert.Equal(entry.kind, ins.Kind, entry.text)
		assert.Equal(entry.arg0, ins.Arg0, entry.text)
		assert.Equal(entry.arg1, ins.Arg1, entry.text)
		assert.Equal(entry.cycles, ins.Cycles, entry.text)
		assert.Equal(entry.text, ins.String())
	}
}

func TestDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint16{0xE9C, 0xEAC, 0xED0, 0xFFA} {
		_, err := Decode(word)
		assert.ErrorIs(err, ErrOpcode{}, "0x%03X", word)
	}
}

func TestEncodeDecode(t *testing.T) {
	assert := assert.New(t)

	valid := 0
	for word := range uint16(0x1000) {
		ins, err := Decode(word)
		if err != nil {
			continue
		}
		valid++

		again, err := Encode(ins.Kind, ins.Arg0, ins.Arg1)
		assert.NoError(err, "0x%03X", word)
		assert.Equal(word, again.Word, "0x%03X", word)
		assert.Equal(ins.Kind.Cost(), ins.Cycles)
	}

	assert.Greater(valid, 0xC00)
}

func TestEncodeShadowed(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		kind    Kind
		arg0    uint8
		arg1    uint8
		decoded Kind
	}{
		{OP_LDPX_R, R_A, R_A, OP_INC_X},
		{OP_LDPY_R, R_A, R_A, OP_INC_Y},
		{OP_XOR_R_I, R_A, 0xF, OP_NOT},
		{OP_SET, 0x1, 0, OP_SCF},
		{OP_RST, 0x7, 0, OP_DI},
	}

	for _, entry := range table {
		ins, err := Encode(entry.kind, entry.arg0, entry.arg1)
		assert.Equal(ErrInstructionShadowed{Kind: entry.kind, Word: ins.Word, Decoded: entry.decoded}, err)
		assert.Equal(entry.decoded, ins.Kind)
	}

	_, err := Encode(OP_COUNT, 0, 0)
	assert.ErrorIs(err, ErrInstructionInvalid)
}

func TestKindNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("LD", OP_LD_R_Q.Mnemonic())
	assert.Equal("JPBA", OP_JPBA.Mnemonic())
	assert.Equal("LD_R_Q", OP_LD_R_Q.String())
	assert.Equal("Kind(-1)", Kind(-1).String())
	assert.Equal("SCPY", OP_SCPY.String())
	assert.Equal("?", OP_COUNT.Mnemonic())
	assert.Equal(uint8(0), OP_COUNT.Cost())
}

func FuzzDecode(f *testing.F) {
	for _, word := range []uint16{0x000, 0xB05, 0xE03, 0xFF8, 0xE9C, 0xAF5} {
		f.Add(word)
	}

	f.Fuzz(func(t *testing.T, word uint16) {
		ins, err := Decode(word)
		if err != nil {
			assert.ErrorIs(t, err, ErrOpcode{})
			return
		}
		assert.Equal(t, word&0xFFF, ins.Word)
		assert.NotEmpty(t, ins.String())
		assert.NotZero(t, ins.Cycles)
		assert.Less(t, ins.Kind, OP_COUNT)
	})
}
