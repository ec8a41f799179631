// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tama/internal"
	tamaio "github.com/ezrec/tama/io"
)

const (
	ORIGIN_DEFAULT = 0x100 // Default assembly origin, the reset vector.
	EQUATE_DEPTH   = 16    // Maximum nesting of equates.
)

var _cpu_defines = map[string]string{
	"FLAG_C":   fmt.Sprintf("0x%X", uint8(FLAG_C)),
	"FLAG_Z":   fmt.Sprintf("0x%X", uint8(FLAG_Z)),
	"FLAG_D":   fmt.Sprintf("0x%X", uint8(FLAG_D)),
	"FLAG_I":   fmt.Sprintf("0x%X", uint8(FLAG_I)),
	"RESET_PC": fmt.Sprintf("0x%X", RESET_PC),
}

// Defines returns the CPU equates predefined in the assembler.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// statement is an instruction or data word waiting for label resolution.
type statement struct {
	LineNo   int
	Pc       uint16
	Text     string
	Mnemonic string
	Operands []string
}

// Assembler is a macro assembler for the E0C6S46 instruction set.
// Label references are resolved once the whole source has been read.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to program addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	pc        uint16
	statement []statement
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// valueOf returns the value of a single operand word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	return asm.valueOfDepth(word, 0)
}

func (asm *Assembler) valueOfDepth(word string, depth int) (value int, err error) {
	word = strings.TrimSpace(word)
	if len(word) == 0 {
		err = ErrOperandInvalid
		return
	}

	if depth > EQUATE_DEPTH {
		err = ErrParseExpression(word)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	if equate, ok := asm.Equate[word]; ok {
		return asm.valueOfDepth(equate, depth+1)
	}

	if pc, ok := asm.Label[word]; ok {
		value = int(pc)
		return
	}

	v64, perr := strconv.ParseInt(word, 0, 32)
	if perr != nil {
		if reIdentifier.MatchString(word) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
		return
	}

	value = int(v64)
	return
}

// parenEval does $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		if strings.Contains(str, "$(") {
			continue
		}
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, pc := range asm.Label {
		pred[key] = starlark.MakeInt(int(pc))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// splitOperands splits an operand list on commas outside of parentheses.
func splitOperands(text string) (operands []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	depth := 0
	start := 0
	for n, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				operands = append(operands, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	operands = append(operands, strings.TrimSpace(text[start:]))

	return
}

// splitWord splits the first whitespace delimited word from a line.
func splitWord(line string) (word string, rest string) {
	line = strings.TrimSpace(line)
	n := strings.IndexAny(line, " \t")
	if n < 0 {
		return line, ""
	}
	return line[:n], strings.TrimSpace(line[n+1:])
}

// parseLine parses a single line of source.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	for {
		word, rest := splitWord(line)
		if !strings.HasSuffix(word, ":") {
			break
		}
		label := word[:len(word)-1]
		if !reIdentifier.MatchString(label) {
			err = ErrOperandInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.pc
		line = rest
	}

	word, rest := splitWord(line)
	if len(word) == 0 {
		return
	}

	switch strings.ToLower(word) {
	case ".equ":
		name, value := splitWord(rest)
		if len(name) == 0 || len(value) == 0 || !reIdentifier.MatchString(name) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = value
		return
	case ".org":
		var value int
		value, err = asm.valueOf(rest)
		if err != nil || value < 0 || value >= PROGRAM_SIZE_MAX {
			err = ErrOrgSyntax
			return
		}
		asm.pc = uint16(value)
		return
	case ".word":
		if len(rest) == 0 {
			err = ErrWordSyntax
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[word]
	if ok {
		return asm.expandMacro(word, macro, splitOperands(rest))
	}

	if int(asm.pc) >= PROGRAM_SIZE_MAX {
		err = ErrProgramTooLarge
		return
	}

	asm.statement = append(asm.statement, statement{
		LineNo:   lineno,
		Pc:       asm.pc,
		Text:     strings.TrimSpace(line),
		Mnemonic: strings.ToUpper(word),
		Operands: splitOperands(rest),
	})
	asm.pc++

	return
}

// expandMacro expands a macro invocation.
// '@' in the macro text is replaced by a prefix unique to the invocation.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	local := fmt.Sprintf("%v_%X_", name, asm.pc)
	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", local)
		for a, arg := range macro.Args {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(arg) + `\b`)
			line = re.ReplaceAllLiteralString(line, args[a])
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			var syntaxErr *ErrSyntax
			if !errors.As(err, &syntaxErr) {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			}
		}
	}()

	asm.pc = ORIGIN_DEFAULT
	asm.statement = asm.statement[:0]
	asm.Label = make(map[string]uint16, 16)
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Collect(internal.Concat2(tamaio.Defines(), Defines()))
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		word, rest := splitWord(line)

		// .macro NAME arg...
		if strings.ToLower(word) == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			name, args := splitWord(rest)
			if len(name) == 0 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[name]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   splitOperands(args),
			}
			asm.Macro[name] = macro
			continue
		}

		if strings.ToLower(word) == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	if err = scanner.Err(); err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if len(asm.statement) == 0 {
		err = ErrProgramEmpty
		return
	}

	// Final linking of labels.
	prog = &Program{}
	assembled := map[uint16]bool{}
	for _, st := range asm.statement {
		lineno = st.LineNo
		line = st.Text

		if assembled[st.Pc] {
			err = ErrAddressOverlap
			return
		}
		assembled[st.Pc] = true

		var word uint16
		word, err = asm.encode(st)
		if err != nil {
			return
		}

		for len(prog.Words) <= int(st.Pc) {
			prog.Words = append(prog.Words, PROGRAM_FILL)
		}
		prog.Words[st.Pc] = word
		prog.Lines = append(prog.Lines, Line{Pc: st.Pc, LineNo: st.LineNo, Text: st.Text})

		if asm.Verbose {
			log.Printf("%04X: %03X %v\n", st.Pc, word, st.Text)
		}
	}

	slices.SortFunc(prog.Lines, func(a, b Line) int {
		return int(a.Pc) - int(b.Pc)
	})

	return
}

// operandTemplate returns the operand list of an instruction kind's syntax.
// Placeholders are "%v", other entries are literal operands.
func operandTemplate(kind Kind) (template []string) {
	_, rest := splitWord(opcodeTable[kind].Syntax)
	return splitOperands(rest)
}

// errorRank orders operand errors from least to most informative.
func errorRank(err error) int {
	var label ErrLabelMissing
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrOperandInvalid):
		return 1
	case errors.As(err, new(ErrParseNumber)):
		return 2
	case errors.As(err, &label):
		return 3
	default:
		return 4
	}
}

// encode assembles a statement into a program word.
func (asm *Assembler) encode(st statement) (word uint16, err error) {
	if st.Mnemonic == ".WORD" {
		if len(st.Operands) != 1 {
			err = ErrWordSyntax
			return
		}
		var value int
		value, err = asm.valueOf(st.Operands[0])
		if err != nil {
			return
		}
		if value < 0 || value > 0xFFF {
			err = ErrOperandRange
			return
		}
		word = uint16(value)
		return
	}

	found := false
	for n := range opcodeTable {
		kind := Kind(n)
		if kind.Mnemonic() != st.Mnemonic {
			continue
		}
		found = true

		var ins Instruction
		var kerr error
		ins, kerr = asm.encodeKind(kind, st)
		if kerr == nil {
			word = ins.Word
			err = nil
			return
		}
		if errorRank(kerr) > errorRank(err) {
			err = kerr
		}
	}

	if !found {
		err = ErrOpcodeInvalid
	}

	return
}

// registerOf returns the r or q field value of a register operand.
func registerOf(word string) (rq uint8, err error) {
	n := slices.Index(registerName[:], strings.ToUpper(word))
	if n < 0 {
		err = ErrOperandInvalid
		return
	}
	rq = uint8(n)
	return
}

// numberOf returns the value of a numeric operand in [0, limit].
func (asm *Assembler) numberOf(word string, limit int) (value uint8, err error) {
	if _, rerr := registerOf(word); rerr == nil {
		err = ErrOperandInvalid
		return
	}
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v < 0 || v > limit {
		err = ErrOperandRange
		return
	}
	value = uint8(v)
	return
}

// memoryOf returns the address of a M(n) operand.
func (asm *Assembler) memoryOf(word string) (value uint8, err error) {
	upper := strings.ToUpper(word)
	if !strings.HasPrefix(upper, "M(") || !strings.HasSuffix(upper, ")") {
		err = ErrOperandInvalid
		return
	}
	return asm.numberOf(word[2:len(word)-1], 0xF)
}

// encodeKind attempts to assemble a statement as a specific instruction kind.
func (asm *Assembler) encodeKind(kind Kind, st statement) (ins Instruction, err error) {
	template := operandTemplate(kind)
	if len(template) != len(st.Operands) {
		err = ErrOperandInvalid
		return
	}

	var args []string
	for n, tmpl := range template {
		if tmpl == "%v" {
			args = append(args, st.Operands[n])
			continue
		}
		if !strings.EqualFold(tmpl, st.Operands[n]) {
			err = ErrOperandInvalid
			return
		}
	}

	var arg0, arg1 uint8
	switch opcodeTable[kind].Format {
	case FMT_NONE:
	case FMT_R:
		arg0, err = registerOf(args[0])
	case FMT_R_RR:
		arg0, err = registerOf(args[0])
		arg0 |= arg0 << 2
	case FMT_I, FMT_FLAGS:
		arg0, err = asm.numberOf(args[0], 0xF)
	case FMT_S:
		// Labels are program addresses; only the step is encoded.
		var v int
		if _, rerr := registerOf(args[0]); rerr == nil {
			err = ErrOperandInvalid
			break
		}
		v, err = asm.valueOf(args[0])
		if err == nil && (v < 0 || v > int(PC_MASK)) {
			err = ErrOperandRange
		}
		arg0 = uint8(v)
	case FMT_E:
		arg0, err = asm.numberOf(args[0], 0xFF)
	case FMT_P:
		arg0, err = asm.numberOf(args[0], 0x1F)
	case FMT_N:
		arg0, err = asm.memoryOf(args[0])
	case FMT_R_I:
		arg0, err = registerOf(args[0])
		if err == nil {
			arg1, err = asm.numberOf(args[1], 0xF)
		}
	case FMT_R_Q:
		arg0, err = registerOf(args[0])
		if err == nil {
			arg1, err = registerOf(args[1])
		}
	}
	if err != nil {
		return
	}

	ins, err = Encode(kind, arg0, arg1)
	var shadowed ErrInstructionShadowed
	if errors.As(err, &shadowed) {
		// Shadowing instructions have the same semantics.
		err = nil
	}

	return
}
