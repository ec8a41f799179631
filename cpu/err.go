package cpu

import (
	"errors"

	"github.com/ezrec/tama/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrProgramRange          = errors.New(f("program counter outside of program"))
	ErrRegisterUnimplemented = errors.New(f("unimplemented register"))
	ErrMemoryInvalid         = errors.New(f("invalid memory address"))
	ErrInstructionInvalid    = errors.New(f("instruction invalid"))
	ErrInterruptSlotInvalid  = errors.New(f("interrupt slot invalid"))
	ErrProgramEmpty          = errors.New(f("program empty"))
	ErrProgramTooLarge       = errors.New(f("program too large"))
	ErrProgramPartialWord    = errors.New(f("program has a partial word"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOrgSyntax       = errors.New(f(".org syntax"))
	ErrWordSyntax      = errors.New(f(".word syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandInvalid  = errors.New(f("operand invalid"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrAddressOverlap  = errors.New(f("address already assembled"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro nesting not permitted"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
)

// ErrOpcode is returned when a program word matches no instruction.
type ErrOpcode struct {
	Word uint16 // Program word.
	Pc   uint16 // Address of the word.
}

func (eo ErrOpcode) Error() string {
	return f("unknown opcode 0x%03X at pc 0x%04X", eo.Word, eo.Pc)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrInstructionShadowed is returned by Encode when the word built for an
// instruction kind decodes as an earlier, more specific kind.
type ErrInstructionShadowed struct {
	Kind    Kind
	Word    uint16
	Decoded Kind
}

func (err ErrInstructionShadowed) Error() string {
	return f("%v encodes as 0x%03X which decodes as %v", err.Kind, err.Word, err.Decoded)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro wraps an error found while expanding a macro.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %d: %v", err.Macro, err.Line, err.Err)
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
