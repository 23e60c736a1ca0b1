package cpu

import (
	"errors"

	"github.com/ezrec/pagecpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted     = errors.New(f("halted"))
	ErrImageSize  = errors.New(f("image larger than rom"))
	ErrFetchRange = errors.New(f("fetch outside of rom"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrDirectiveSyntax    = errors.New(f("directive syntax"))
	ErrOrgBackwards       = errors.New(f(".org before current address"))
	ErrRomFull            = errors.New(f("program exceeds rom"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissingArgs  = errors.New(f("missing arguments"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrConditionInvalid   = errors.New(f("condition invalid"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrPageStraddle       = errors.New(f("instruction crosses page boundary"))
)

// ErrOpcode is an instruction word whose opcode has no defined effect.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("illegal opcode %v in word 0b%08b", Code(eo).Opcode(), uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrCondition is a condition operand outside of 1..7.
type ErrCondition Cond

func (ec ErrCondition) Error() string {
	return f("illegal condition %d", int(ec))
}

func (ec ErrCondition) Is(err error) (ok bool) {
	_, ok = err.(ErrCondition)
	return
}

// ErrFault is a non-recoverable execution fault, located at the
// effective address the faulting word was fetched from.
type ErrFault struct {
	Addr int   // Effective address of the word.
	Pc   uint8 // Program counter at fetch.
	Page uint8 // Page register at fetch.
	Code Code  // Raw instruction word.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("fault at 0x%03x (page %d pc %d) word 0b%08b: %v",
		err.Addr, err.Page, err.Pc, uint8(err.Code), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
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

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
