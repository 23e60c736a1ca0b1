// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// sysEquate returns the predefined system equates.
func sysEquate() (equ map[string]string) {
	equ = maps.Clone(_cpu_defines)
	equ["LINENO"] = "0"
	return
}

// Assembler is a single pass macro assembler for the pagecpu system.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to ROM addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	addr int // Address of the next generated word.
	end  int // Address following the last generated statement.
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to operands.
var regMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
}

// condMap maps condition names to operands.
var condMap = map[string]uint8{
	COND_ZERO.String():      uint8(COND_ZERO),
	COND_NOT_ZERO.String():  uint8(COND_NOT_ZERO),
	COND_MSB.String():       uint8(COND_MSB),
	COND_NOT_MSB.String():   uint8(COND_NOT_MSB),
	COND_CARRY.String():     uint8(COND_CARRY),
	COND_NOT_CARRY.String(): uint8(COND_NOT_CARRY),
	COND_ALWAYS.String():    uint8(COND_ALWAYS),
}

// portMap maps port names to operands.
var portMap = map[string]uint8{
	"console": PORT_CONSOLE,
}

// opMap maps mnemonics to opcodes.
var opMap = func() (ops map[string]Opcode) {
	ops = map[string]Opcode{}
	for op := OP_NOP; op <= OP_HLT; op++ {
		if op.Valid() {
			ops[op.String()] = op
		}
	}
	return
}()

var labelRegexp = regexp.MustCompile(`^[A-Za-z_@][A-Za-z0-9_@.]*$`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	invert := false
	if len(word) > 0 && word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	if invert {
		value = ^value
	}

	return
}

// byteOf returns the value of a word as a byte. Negative values down to
// -128 are stored as their two's complement.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v < -128 || v > 0xff {
		err = ErrImmediateRange
		return
	}

	value = uint8(v)
	return
}

// fieldOf returns the value of a 3-bit operand, either by name or number.
func (asm *Assembler) fieldOf(word string, names map[string]uint8, invalid error) (value uint8, err error) {
	value, ok := names[word]
	if ok {
		return
	}

	v, err := asm.valueOf(word)
	if err != nil {
		err = errors.Join(invalid, err)
		return
	}

	if v < 0 || v > OPERAND_MASK {
		err = invalid
		return
	}

	value = uint8(v)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, addr := range asm.Label {
		if _, ok := pred[key]; !ok {
			pred[key] = starlark.MakeInt(addr)
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
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

// parseLine parses a single line, expanding equates, labels and macros.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\x00"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing statements.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		var syn ErrSyntax
		if err != nil && !errors.As(err, &syn) {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statement = asm.Statement[:0]
	asm.addr = 0
	asm.end = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = sysEquate()
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
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

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}

// link resolves the label references of all statements.
func (asm *Assembler) link() (err error) {
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if len(st.LinkLabel) == 0 {
			continue
		}

		addr, ok := asm.Label[st.LinkLabel]
		if !ok {
			err = ErrLabelMissing(st.LinkLabel)
		} else if addr >= ROM_SIZE {
			err = ErrTargetInvalid
		}

		if err == nil {
			imm := &st.Codes[len(st.Codes)-1]
			pc := addr % PAGE_SIZE
			switch st.LinkKind {
			case LINK_PAGE:
				*imm = Code((addr / PAGE_SIZE) << OPCODE_SHIFT)
			case LINK_BRANCH:
				if pc > (0b11111 >> OPCODE_SHIFT) {
					err = ErrTargetInvalid
				} else {
					*imm = Code(pc << OPCODE_SHIFT)
				}
			case LINK_PC:
				*imm = Code(pc)
			}
		}

		if err != nil {
			err = ErrSyntax{LineNo: st.LineNo, Line: strings.Join(st.Words, " "), Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("asm: %03x: link %v to %03x", st.Addr, st.LinkLabel, addr)
		}
	}

	return
}

// immediate encodes the immediate word of an LDI, ICS or BRC.
// A word that is not a number is linked as a label.
func (asm *Assembler) immediate(op Opcode, word string) (imm Code, kind LinkKind, err error) {
	switch op {
	case OP_LDI:
		kind = LINK_PC
	case OP_ICS:
		kind = LINK_PAGE
	case OP_BRC:
		kind = LINK_BRANCH
	default:
		err = ErrInstructionInvalid
		return
	}

	value, err := asm.valueOf(word)
	if err != nil {
		if !labelRegexp.MatchString(word) {
			return
		}
		// Resolved at link time.
		err = nil
		return
	}

	switch op {
	case OP_LDI:
		var b uint8
		b, err = asm.byteOf(word)
		imm = Code(b)
	case OP_ICS:
		if value < 0 || value >= PAGE_COUNT {
			err = ErrTargetInvalid
			return
		}
		imm = Code(value << OPCODE_SHIFT)
	case OP_BRC:
		if value < 0 || value > (0b11111>>OPCODE_SHIFT) {
			err = ErrTargetInvalid
			return
		}
		imm = Code(value << OPCODE_SHIFT)
	}

	kind = LINK_NONE
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var label string
	var kind LinkKind
	var straddle bool

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)
	args := words[1:]

	switch words[0] {
	case ".org", ".page":
		if len(args) != 1 {
			err = ErrDirectiveSyntax
			return
		}
		var addr int
		addr, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if words[0] == ".page" {
			if addr < 0 || addr >= PAGE_COUNT {
				err = ErrOperandRange
				return
			}
			addr *= PAGE_SIZE
		}
		if addr < asm.addr {
			err = ErrOrgBackwards
			return
		}
		if addr > ROM_SIZE {
			err = ErrRomFull
			return
		}
		if asm.Verbose {
			log.Printf("asm: %v: %03x", words[0], addr)
		}
		asm.addr = addr
		return
	case ".byte":
		if len(args) == 0 {
			err = ErrDirectiveSyntax
			return
		}
		for _, arg := range args {
			var value uint8
			value, err = asm.byteOf(arg)
			if err != nil {
				return
			}
			codes = append(codes, Code(value))
		}
	default:
		op, ok := opMap[words[0]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}

		need := op.ImmediateNeed()
		if op.Operand() != OPERAND_NONE {
			need++
		}
		if len(args) > need {
			err = ErrOpcodeExtraArgs
			return
		}
		if len(args) < need {
			err = ErrOpcodeMissingArgs
			return
		}

		var operand uint8
		switch op.Operand() {
		case OPERAND_REG:
			operand, err = asm.fieldOf(args[0], regMap, ErrRegisterInvalid)
		case OPERAND_RAM, OPERAND_SHIFT:
			operand, err = asm.fieldOf(args[0], nil, ErrOperandRange)
		case OPERAND_PORT:
			operand, err = asm.fieldOf(args[0], portMap, ErrOperandRange)
		case OPERAND_COND:
			operand, err = asm.fieldOf(args[0], condMap, ErrConditionInvalid)
			if err == nil && Cond(operand) == COND_INVALID {
				err = ErrConditionInvalid
			}
		}
		if err != nil {
			return
		}

		codes = append(codes, MakeCode(op, operand))

		straddle = op.ImmediateNeed() > 0
		if straddle {
			var imm Code
			imm, kind, err = asm.immediate(op, args[len(args)-1])
			if err != nil {
				return
			}
			if kind != LINK_NONE {
				label = args[len(args)-1]
			}
			codes = append(codes, imm)
		}
	}

	// Falling through from pc 31 fetches the first word of the next page
	// twice, once as pc 32 and again as pc 0, so it must be a NOP.
	if asm.addr > 0 && asm.addr%PAGE_SIZE == 0 && asm.addr == asm.end {
		if asm.addr+1+len(codes) > ROM_SIZE {
			err = ErrRomFull
			return
		}
		if asm.Verbose {
			log.Printf("asm: %03x: page pad", asm.addr)
		}
		asm.Statement = append(asm.Statement, Statement{
			LineNo: lineno,
			Addr:   asm.addr,
			Words:  []string{OP_NOP.String()},
			Codes:  []Code{MakeCode(OP_NOP, 0)},
		})
		asm.addr++
	}

	// The immediate at pc 32 would be fetched again as an opcode.
	if straddle && asm.addr%PAGE_SIZE == PAGE_SIZE-1 {
		err = ErrPageStraddle
		return
	}

	if asm.addr+len(codes) > ROM_SIZE {
		err = ErrRomFull
		return
	}

	if asm.Verbose {
		log.Printf("asm: %03x: %v", asm.addr, codes)
	}

	asm.Statement = append(asm.Statement, Statement{
		LineNo:    lineno,
		Addr:      asm.addr,
		Words:     initial_words,
		Codes:     codes,
		LinkLabel: label,
		LinkKind:  kind,
	})
	asm.addr += len(codes)
	asm.end = asm.addr

	return
}
