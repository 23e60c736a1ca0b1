package emulator

import (
	"github.com/ezrec/pagecpu/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   int // ROM address of the faulting word, or -1 if unknown.
	LineNo int // Source line of the faulting word, or 0 if unknown.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("rom 0x%03x %v", err.Addr, err.Err)
	}
	return f("line %d (rom 0x%03x) %v", err.LineNo, err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
