package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// LinkKind is how a label address is encoded into an immediate.
type LinkKind int

const (
	LINK_NONE   = LinkKind(iota)
	LINK_PAGE   // ICS: page of the label, in the top 5 bits.
	LINK_BRANCH // BRC: PC of the label, in bits 3..4.
	LINK_PC     // LDI: PC of the label, for JID.
)

// Statement represents a line of assembled code with its source location and generated words.
type Statement struct {
	LineNo    int
	Addr      int
	Words     []string
	Codes     []Code
	LinkLabel string
	LinkKind  LinkKind
}

// Program is the output of the assembler.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the word at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+len(st.Codes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     addr - st.Addr,
			}
			break
		}
	}

	return
}

// Codes iterates over every assembled word and its address.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(addr int, code Code) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(st.Addr+n, code) {
					return
				}
			}
		}
	}
}

// Binary returns the ROM image. Gaps between statements are filled with NOP.
func (prog *Program) Binary() (bins []byte) {
	for addr, code := range prog.Codes() {
		for len(bins) <= addr {
			bins = append(bins, byte(MakeCode(OP_NOP, 0)))
		}
		bins[addr] = byte(code)
	}

	return
}

// Comments returns the source text of each statement, by address.
func (prog *Program) Comments() (comments map[int]string) {
	comments = make(map[int]string, len(prog.Statements))
	for _, st := range prog.Statements {
		if len(st.Codes) == 0 {
			continue
		}
		comments[st.Addr] = fmt.Sprintf("%d: %v", st.LineNo, strings.Join(st.Words, " "))
	}

	return
}
