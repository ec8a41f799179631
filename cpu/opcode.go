package cpu

import (
	"fmt"
)

// Kind is the decoded instruction type.
type Kind int

// Instruction kinds, in decode priority order.
// The first entry whose pattern matches a word wins, so more specific
// patterns must precede the general ones they overlap.
//
//go:generate go tool stringer -trimprefix=OP_ -type=Kind
const (
	OP_PSET Kind = iota
	OP_JP
	OP_JP_C
	OP_JP_NC
	OP_JP_Z
	OP_JP_NZ
	OP_JPBA
	OP_CALL
	OP_CALZ
	OP_RET
	OP_RETS
	OP_RETD
	OP_NOP5
	OP_NOP7
	OP_HALT
	OP_SLP
	OP_INC_X
	OP_INC_Y
	OP_LD_X
	OP_LD_Y
	OP_LD_XP_R
	OP_LD_XH_R
	OP_LD_XL_R
	OP_LD_YP_R
	OP_LD_YH_R
	OP_LD_YL_R
	OP_LD_R_XP
	OP_LD_R_XH
	OP_LD_R_XL
	OP_LD_R_YP
	OP_LD_R_YH
	OP_LD_R_YL
	OP_ADC_XH
	OP_ADC_XL
	OP_ADC_YH
	OP_ADC_YL
	OP_CP_XH
	OP_CP_XL
	OP_CP_YH
	OP_CP_YL
	OP_LD_R_I
	OP_LD_R_Q
	OP_LD_A_MN
	OP_LD_B_MN
	OP_LD_MN_A
	OP_LD_MN_B
	OP_LDPX_MX
	OP_LDPX_R
	OP_LDPY_MY
	OP_LDPY_R
	OP_LBPX
	OP_SCF
	OP_SZF
	OP_SDF
	OP_EI
	OP_RCF
	OP_RZF
	OP_RDF
	OP_DI
	OP_SET
	OP_RST
	OP_INC_SP
	OP_DEC_SP
	OP_PUSH_R
	OP_PUSH_XP
	OP_PUSH_XH
	OP_PUSH_XL
	OP_PUSH_YP
	OP_PUSH_YH
	OP_PUSH_YL
	OP_PUSH_F
	OP_POP_R
	OP_POP_XP
	OP_POP_XH
	OP_POP_XL
	OP_POP_YP
	OP_POP_YH
	OP_POP_YL
	OP_POP_F
	OP_LD_SPH_R
	OP_LD_SPL_R
	OP_LD_R_SPH
	OP_LD_R_SPL
	OP_ADD_R_I
	OP_ADD_R_Q
	OP_ADC_R_I
	OP_ADC_R_Q
	OP_SUB
	OP_SBC_R_I
	OP_SBC_R_Q
	OP_AND_R_I
	OP_AND_R_Q
	OP_OR_R_I
	OP_OR_R_Q
	OP_NOT
	OP_XOR_R_I
	OP_XOR_R_Q
	OP_CP_R_I
	OP_CP_R_Q
	OP_FAN_R_I
	OP_FAN_R_Q
	OP_RLC
	OP_RRC
	OP_INC_MN
	OP_DEC_MN
	OP_ACPX
	OP_ACPY
	OP_SCPX
	OP_SCPY

	OP_COUNT
)

// Opcode fixed-bit masks.
const (
	MASK_4B  = 0xF00
	MASK_6B  = 0xFC0
	MASK_7B  = 0xFE0
	MASK_8B  = 0xFF0
	MASK_10B = 0xFFC
	MASK_12B = 0xFFF
)

// Operand formats, used for disassembly and assembly.
type format int

const (
	FMT_NONE  format = iota // no operand
	FMT_R                   // r
	FMT_I                   // #i (4 bits)
	FMT_S                   // s (8 bit step)
	FMT_E                   // #e (8 bits)
	FMT_P                   // p (5 bit page)
	FMT_N                   // M(n)
	FMT_R_I                 // r, #i
	FMT_R_Q                 // r, q
	FMT_R_RR                // r, with r repeated in the low nibble (RLC)
	FMT_FLAGS               // #i applied to F
)

// opcode is an entry of the decode table.
type opcode struct {
	Kind    Kind
	Code    uint16 // Value of the fixed bits.
	Mask    uint16 // Fixed bits.
	SubMask uint16 // Mask of the first operand, when there are two.
	Shift   uint8  // Shift of the first operand.
	Cycles  uint8  // Execution time, in oscillator ticks.

	Syntax string // Mnemonic, with operand placeholders.
	Format format
}

// opcodeTable is ordered by decode priority.
var opcodeTable = [OP_COUNT]opcode{
	{OP_PSET, 0xE40, MASK_7B, 0, 0, 5, "PSET %v", FMT_P},
	{OP_JP, 0x000, MASK_4B, 0, 0, 5, "JP %v", FMT_S},
	{OP_JP_C, 0x200, MASK_4B, 0, 0, 5, "JP C,%v", FMT_S},
	{OP_JP_NC, 0x300, MASK_4B, 0, 0, 5, "JP NC,%v", FMT_S},
	{OP_JP_Z, 0x600, MASK_4B, 0, 0, 5, "JP Z,%v", FMT_S},
	{OP_JP_NZ, 0x700, MASK_4B, 0, 0, 5, "JP NZ,%v", FMT_S},
	{OP_JPBA, 0xFE8, MASK_12B, 0, 0, 5, "JPBA", FMT_NONE},
	{OP_CALL, 0x400, MASK_4B, 0, 0, 7, "CALL %v", FMT_S},
	{OP_CALZ, 0x500, MASK_4B, 0, 0, 7, "CALZ %v", FMT_S},
	{OP_RET, 0xFDF, MASK_12B, 0, 0, 7, "RET", FMT_NONE},
	{OP_RETS, 0xFDE, MASK_12B, 0, 0, 12, "RETS", FMT_NONE},
	{OP_RETD, 0x100, MASK_4B, 0, 0, 12, "RETD %v", FMT_E},
	{OP_NOP5, 0xFFB, MASK_12B, 0, 0, 5, "NOP5", FMT_NONE},
	{OP_NOP7, 0xFFF, MASK_12B, 0, 0, 7, "NOP7", FMT_NONE},
	{OP_HALT, 0xFF8, MASK_12B, 0, 0, 5, "HALT", FMT_NONE},
	{OP_SLP, 0xFF9, MASK_12B, 0, 0, 5, "SLP", FMT_NONE},
	{OP_INC_X, 0xEE0, MASK_12B, 0, 0, 5, "INC X", FMT_NONE},
	{OP_INC_Y, 0xEF0, MASK_12B, 0, 0, 5, "INC Y", FMT_NONE},
	{OP_LD_X, 0xB00, MASK_4B, 0, 0, 5, "LD X,%v", FMT_E},
	{OP_LD_Y, 0x800, MASK_4B, 0, 0, 5, "LD Y,%v", FMT_E},
	{OP_LD_XP_R, 0xE80, MASK_10B, 0, 0, 5, "LD XP,%v", FMT_R},
	{OP_LD_XH_R, 0xE84, MASK_10B, 0, 0, 5, "LD XH,%v", FMT_R},
	{OP_LD_XL_R, 0xE88, MASK_10B, 0, 0, 5, "LD XL,%v", FMT_R},
	{OP_LD_YP_R, 0xE90, MASK_10B, 0, 0, 5, "LD YP,%v", FMT_R},
	{OP_LD_YH_R, 0xE94, MASK_10B, 0, 0, 5, "LD YH,%v", FMT_R},
	{OP_LD_YL_R, 0xE98, MASK_10B, 0, 0, 5, "LD YL,%v", FMT_R},
	{OP_LD_R_XP, 0xEA0, MASK_10B, 0, 0, 5, "LD %v,XP", FMT_R},
	{OP_LD_R_XH, 0xEA4, MASK_10B, 0, 0, 5, "LD %v,XH", FMT_R},
	{OP_LD_R_XL, 0xEA8, MASK_10B, 0, 0, 5, "LD %v,XL", FMT_R},
	{OP_LD_R_YP, 0xEB0, MASK_10B, 0, 0, 5, "LD %v,YP", FMT_R},
	{OP_LD_R_YH, 0xEB4, MASK_10B, 0, 0, 5, "LD %v,YH", FMT_R},
	{OP_LD_R_YL, 0xEB8, MASK_10B, 0, 0, 5, "LD %v,YL", FMT_R},
	{OP_ADC_XH, 0xA00, MASK_8B, 0, 0, 7, "ADC XH,%v", FMT_I},
	{OP_ADC_XL, 0xA10, MASK_8B, 0, 0, 7, "ADC XL,%v", FMT_I},
	{OP_ADC_YH, 0xA20, MASK_8B, 0, 0, 7, "ADC YH,%v", FMT_I},
	{OP_ADC_YL, 0xA30, MASK_8B, 0, 0, 7, "ADC YL,%v", FMT_I},
	{OP_CP_XH, 0xA40, MASK_8B, 0, 0, 7, "CP XH,%v", FMT_I},
	{OP_CP_XL, 0xA50, MASK_8B, 0, 0, 7, "CP XL,%v", FMT_I},
	{OP_CP_YH, 0xA60, MASK_8B, 0, 0, 7, "CP YH,%v", FMT_I},
	{OP_CP_YL, 0xA70, MASK_8B, 0, 0, 7, "CP YL,%v", FMT_I},
	{OP_LD_R_I, 0xE00, MASK_6B, 0x030, 4, 5, "LD %v,%v", FMT_R_I},
	{OP_LD_R_Q, 0xEC0, MASK_8B, 0x00C, 2, 5, "LD %v,%v", FMT_R_Q},
	{OP_LD_A_MN, 0xFA0, MASK_8B, 0, 0, 5, "LD A,%v", FMT_N},
	{OP_LD_B_MN, 0xFB0, MASK_8B, 0, 0, 5, "LD B,%v", FMT_N},
	{OP_LD_MN_A, 0xF80, MASK_8B, 0, 0, 5, "LD %v,A", FMT_N},
	{OP_LD_MN_B, 0xF90, MASK_8B, 0, 0, 5, "LD %v,B", FMT_N},
	{OP_LDPX_MX, 0xE60, MASK_8B, 0, 0, 5, "LDPX MX,%v", FMT_I},
	{OP_LDPX_R, 0xEE0, MASK_8B, 0x00C, 2, 5, "LDPX %v,%v", FMT_R_Q},
	{OP_LDPY_MY, 0xE70, MASK_8B, 0, 0, 5, "LDPY MY,%v", FMT_I},
	{OP_LDPY_R, 0xEF0, MASK_8B, 0x00C, 2, 5, "LDPY %v,%v", FMT_R_Q},
	{OP_LBPX, 0x900, MASK_4B, 0, 0, 5, "LBPX MX,%v", FMT_E},
	{OP_SCF, 0xF41, MASK_12B, 0, 0, 7, "SCF", FMT_NONE},
	{OP_SZF, 0xF42, MASK_12B, 0, 0, 7, "SZF", FMT_NONE},
	{OP_SDF, 0xF44, MASK_12B, 0, 0, 7, "SDF", FMT_NONE},
	{OP_EI, 0xF48, MASK_12B, 0, 0, 7, "EI", FMT_NONE},
	{OP_RCF, 0xF5E, MASK_12B, 0, 0, 7, "RCF", FMT_NONE},
	{OP_RZF, 0xF5D, MASK_12B, 0, 0, 7, "RZF", FMT_NONE},
	{OP_RDF, 0xF5B, MASK_12B, 0, 0, 7, "RDF", FMT_NONE},
	{OP_DI, 0xF57, MASK_12B, 0, 0, 7, "DI", FMT_NONE},
	{OP_SET, 0xF40, MASK_8B, 0, 0, 7, "SET F,%v", FMT_FLAGS},
	{OP_RST, 0xF50, MASK_8B, 0, 0, 7, "RST F,%v", FMT_FLAGS},
	{OP_INC_SP, 0xFDB, MASK_12B, 0, 0, 5, "INC SP", FMT_NONE},
	{OP_DEC_SP, 0xFCB, MASK_12B, 0, 0, 5, "DEC SP", FMT_NONE},
	{OP_PUSH_R, 0xFC0, MASK_10B, 0, 0, 5, "PUSH %v", FMT_R},
	{OP_PUSH_XP, 0xFC4, MASK_12B, 0, 0, 5, "PUSH XP", FMT_NONE},
	{OP_PUSH_XH, 0xFC5, MASK_12B, 0, 0, 5, "PUSH XH", FMT_NONE},
	{OP_PUSH_XL, 0xFC6, MASK_12B, 0, 0, 5, "PUSH XL", FMT_NONE},
	{OP_PUSH_YP, 0xFC7, MASK_12B, 0, 0, 5, "PUSH YP", FMT_NONE},
	{OP_PUSH_YH, 0xFC8, MASK_12B, 0, 0, 5, "PUSH YH", FMT_NONE},
	{OP_PUSH_YL, 0xFC9, MASK_12B, 0, 0, 5, "PUSH YL", FMT_NONE},
	{OP_PUSH_F, 0xFCA, MASK_12B, 0, 0, 5, "PUSH F", FMT_NONE},
	{OP_POP_R, 0xFD0, MASK_10B, 0, 0, 5, "POP %v", FMT_R},
	{OP_POP_XP, 0xFD4, MASK_12B, 0, 0, 5, "POP XP", FMT_NONE},
	{OP_POP_XH, 0xFD5, MASK_12B, 0, 0, 5, "POP XH", FMT_NONE},
	{OP_POP_XL, 0xFD6, MASK_12B, 0, 0, 5, "POP XL", FMT_NONE},
	{OP_POP_YP, 0xFD7, MASK_12B, 0, 0, 5, "POP YP", FMT_NONE},
	{OP_POP_YH, 0xFD8, MASK_12B, 0, 0, 5, "POP YH", FMT_NONE},
	{OP_POP_YL, 0xFD9, MASK_12B, 0, 0, 5, "POP YL", FMT_NONE},
	{OP_POP_F, 0xFDA, MASK_12B, 0, 0, 5, "POP F", FMT_NONE},
	{OP_LD_SPH_R, 0xFE0, MASK_10B, 0, 0, 5, "LD SPH,%v", FMT_R},
	{OP_LD_SPL_R, 0xFF0, MASK_10B, 0, 0, 5, "LD SPL,%v", FMT_R},
	{OP_LD_R_SPH, 0xFE4, MASK_10B, 0, 0, 5, "LD %v,SPH", FMT_R},
	{OP_LD_R_SPL, 0xFF4, MASK_10B, 0, 0, 5, "LD %v,SPL", FMT_R},
	{OP_ADD_R_I, 0xC00, MASK_6B, 0x030, 4, 7, "ADD %v,%v", FMT_R_I},
	{OP_ADD_R_Q, 0xA80, MASK_8B, 0x00C, 2, 7, "ADD %v,%v", FMT_R_Q},
	{OP_ADC_R_I, 0xC40, MASK_6B, 0x030, 4, 7, "ADC %v,%v", FMT_R_I},
	{OP_ADC_R_Q, 0xA90, MASK_8B, 0x00C, 2, 7, "ADC %v,%v", FMT_R_Q},
	{OP_SUB, 0xAA0, MASK_8B, 0x00C, 2, 7, "SUB %v,%v", FMT_R_Q},
	{OP_SBC_R_I, 0xD40, MASK_6B, 0x030, 4, 7, "SBC %v,%v", FMT_R_I},
	{OP_SBC_R_Q, 0xAB0, MASK_8B, 0x00C, 2, 7, "SBC %v,%v", FMT_R_Q},
	{OP_AND_R_I, 0xC80, MASK_6B, 0x030, 4, 7, "AND %v,%v", FMT_R_I},
	{OP_AND_R_Q, 0xAC0, MASK_8B, 0x00C, 2, 7, "AND %v,%v", FMT_R_Q},
	{OP_OR_R_I, 0xCC0, MASK_6B, 0x030, 4, 7, "OR %v,%v", FMT_R_I},
	{OP_OR_R_Q, 0xAD0, MASK_8B, 0x00C, 2, 7, "OR %v,%v", FMT_R_Q},
	{OP_NOT, 0xD0F, 0xFCF, 0, 4, 7, "NOT %v", FMT_R},
	{OP_XOR_R_I, 0xD00, MASK_6B, 0x030, 4, 7, "XOR %v,%v", FMT_R_I},
	{OP_XOR_R_Q, 0xAE0, MASK_8B, 0x00C, 2, 7, "XOR %v,%v", FMT_R_Q},
	{OP_CP_R_I, 0xDC0, MASK_6B, 0x030, 4, 7, "CP %v,%v", FMT_R_I},
	{OP_CP_R_Q, 0xF00, MASK_8B, 0x00C, 2, 7, "CP %v,%v", FMT_R_Q},
	{OP_FAN_R_I, 0xD80, MASK_6B, 0x030, 4, 7, "FAN %v,%v", FMT_R_I},
	{OP_FAN_R_Q, 0xF10, MASK_8B, 0x00C, 2, 7, "FAN %v,%v", FMT_R_Q},
	{OP_RLC, 0xAF0, MASK_8B, 0, 0, 7, "RLC %v", FMT_R_RR},
	{OP_RRC, 0xE8C, MASK_10B, 0, 0, 5, "RRC %v", FMT_R},
	{OP_INC_MN, 0xF60, MASK_8B, 0, 0, 7, "INC %v", FMT_N},
	{OP_DEC_MN, 0xF70, MASK_8B, 0, 0, 7, "DEC %v", FMT_N},
	{OP_ACPX, 0xF28, MASK_10B, 0, 0, 7, "ACPX MX,%v", FMT_R},
	{OP_ACPY, 0xF2C, MASK_10B, 0, 0, 7, "ACPY MY,%v", FMT_R},
	{OP_SCPX, 0xF38, MASK_10B, 0, 0, 7, "SCPX MX,%v", FMT_R},
	{OP_SCPY, 0xF3C, MASK_10B, 0, 0, 7, "SCPY MY,%v", FMT_R},
}

// decodeIndex caches the first matching table entry of every word,
// -1 when no entry matches.
var decodeIndex [0x1000]int8

func init() {
	for n := range opcodeTable {
		if opcodeTable[n].Kind != Kind(n) {
			panic(fmt.Sprintf("opcode table entry %d out of order", n))
		}
	}

	for word := range len(decodeIndex) {
		decodeIndex[word] = int8(lookup(uint16(word)))
	}
}

// lookup scans the decode table in priority order.
func lookup(word uint16) int {
	for n, op := range opcodeTable {
		if (word & op.Mask) == op.Code {
			return n
		}
	}
	return -1
}

// Register operand names, as encoded in the r and q fields.
const (
	R_A  = 0 // A register
	R_B  = 1 // B register
	R_MX = 2 // Memory at X
	R_MY = 3 // Memory at Y
)

var registerName = [4]string{"A", "B", "MX", "MY"}

// Instruction is a decoded program word.
type Instruction struct {
	Kind   Kind
	Word   uint16 // Encoded word.
	Arg0   uint8  // First (or only) operand.
	Arg1   uint8  // Second operand, for two operand kinds.
	Cycles uint8  // Execution time, in oscillator ticks.
}

// Decode returns the instruction encoded by a 12-bit program word.
func Decode(word uint16) (ins Instruction, err error) {
	word &= 0xFFF

	n := decodeIndex[word]
	if n < 0 {
		err = ErrOpcode{Word: word}
		return
	}

	op := &opcodeTable[n]
	ins = Instruction{
		Kind:   op.Kind,
		Word:   word,
		Cycles: op.Cycles,
	}

	if op.SubMask != 0 {
		ins.Arg0 = uint8((word & op.SubMask) >> op.Shift)
		ins.Arg1 = uint8(word & ^(op.Mask | op.SubMask))
	} else {
		ins.Arg0 = uint8((word & ^op.Mask) >> op.Shift)
	}

	return
}

// Encode builds the word for an instruction kind and its operands.
// Operands are truncated to their field widths.
func Encode(kind Kind, arg0, arg1 uint8) (ins Instruction, err error) {
	if kind < 0 || kind >= OP_COUNT {
		err = ErrInstructionInvalid
		return
	}

	op := &opcodeTable[kind]
	word := op.Code
	if op.SubMask != 0 {
		word |= (uint16(arg0) << op.Shift) & op.SubMask
		word |= uint16(arg1) & ^(op.Mask | op.SubMask) & 0xFFF
	} else {
		word |= (uint16(arg0) << op.Shift) & ^op.Mask & 0xFFF
	}

	ins, err = Decode(word)
	if err != nil {
		return
	}

	if ins.Kind != kind {
		err = ErrInstructionShadowed{Kind: kind, Word: word, Decoded: ins.Kind}
	}

	return
}

// Cost returns the execution time of an instruction kind, in ticks.
func (kind Kind) Cost() uint8 {
	if kind < 0 || kind >= OP_COUNT {
		return 0
	}
	return opcodeTable[kind].Cycles
}

// Mnemonic returns the mnemonic of the instruction kind.
func (kind Kind) Mnemonic() string {
	if kind < 0 || kind >= OP_COUNT {
		return "?"
	}
	syntax := opcodeTable[kind].Syntax
	for n, c := range syntax {
		if c == ' ' {
			return syntax[:n]
		}
	}
	return syntax
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	if ins.Kind < 0 || ins.Kind >= OP_COUNT {
		return fmt.Sprintf(".word 0x%03X", ins.Word)
	}

	op := &opcodeTable[ins.Kind]
	switch op.Format {
	case FMT_R:
		return fmt.Sprintf(op.Syntax, registerName[ins.Arg0&0x3])
	case FMT_R_RR:
		return fmt.Sprintf(op.Syntax, registerName[ins.Arg0&0x3])
	case FMT_I, FMT_FLAGS:
		return fmt.Sprintf(op.Syntax, fmt.Sprintf("0x%X", ins.Arg0))
	case FMT_S, FMT_E:
		return fmt.Sprintf(op.Syntax, fmt.Sprintf("0x%02X", ins.Arg0))
	case FMT_P:
		return fmt.Sprintf(op.Syntax, fmt.Sprintf("0x%02X", ins.Arg0))
	case FMT_N:
		return fmt.Sprintf(op.Syntax, fmt.Sprintf("M(0x%X)", ins.Arg0))
	case FMT_R_I:
		return fmt.Sprintf(op.Syntax, registerName[ins.Arg0&0x3], fmt.Sprintf("0x%X", ins.Arg1))
	case FMT_R_Q:
		return fmt.Sprintf(op.Syntax, registerName[ins.Arg0&0x3], registerName[ins.Arg1&0x3])
	}

	return op.Syntax
}
