package cpu

import (
	"fmt"
)

// Opcode is the 5-bit instruction selector in the top bits of a word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP  = Opcode(0)  // nop
	OP_ADD  = Opcode(1)  // add
	OP_SUB  = Opcode(2)  // sub
	OP_BSUB = Opcode(3)  // bsub
	OP_OR   = Opcode(4)  // or
	OP_NOR  = Opcode(5)  // nor
	OP_AND  = Opcode(6)  // and
	OP_NAND = Opcode(7)  // nand
	OP_XOR  = Opcode(8)  // xor
	OP_XNOR = Opcode(9)  // xnor
	OP_LDI  = Opcode(10) // ldi
	OP_ADR  = Opcode(11) // adr
	OP_RLD  = Opcode(12) // rld
	OP_RST  = Opcode(13) // rst
	OP_MST  = Opcode(14) // mst
	OP_MLD  = Opcode(15) // mld
	OP_ICS  = Opcode(16) // ics
	OP_JID  = Opcode(17) // jid
	OP_BRC  = Opcode(18) // brc
	OP_DEC  = Opcode(19) // dec
	OP_CMP  = Opcode(20) // cmp
	OP_BSR  = Opcode(21) // bsr
	OP_BSL  = Opcode(22) // bsl
	OP_PST  = Opcode(23) // pst
	OP_PLD  = Opcode(24) // pld
	OP_INC  = Opcode(25) // inc
	OP_HLT  = Opcode(31) // hlt
)

// Cond is a branch condition, carried in the operand of ICS and BRC.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_INVALID   = Cond(0) // ?
	COND_ZERO      = Cond(1) // z
	COND_NOT_ZERO  = Cond(2) // nz
	COND_MSB       = Cond(3) // m
	COND_NOT_MSB   = Cond(4) // nm
	COND_CARRY     = Cond(5) // c
	COND_NOT_CARRY = Cond(6) // nc
	COND_ALWAYS    = Cond(7) // al
)

// OperandKind is how an opcode interprets its 3-bit operand.
type OperandKind int

const (
	OPERAND_NONE  = OperandKind(iota) // Ignored.
	OPERAND_REG                       // Register index.
	OPERAND_RAM                       // RAM address.
	OPERAND_COND                      // Condition code.
	OPERAND_SHIFT                     // Shift count.
	OPERAND_PORT                      // Port index.
)

const (
	OPCODE_SHIFT = 3          // Position of the opcode in a word.
	OPERAND_MASK = 0b0000_0111 // Mask of the operand in a word.
)

// Valid returns true if the opcode has a defined effect.
func (op Opcode) Valid() bool {
	return (op >= OP_NOP && op <= OP_INC) || op == OP_HLT
}

// Operand returns how the opcode interprets its operand field.
func (op Opcode) Operand() OperandKind {
	switch op {
	case OP_ADD, OP_SUB, OP_BSUB,
		OP_OR, OP_NOR, OP_AND, OP_NAND, OP_XOR, OP_XNOR,
		OP_LDI, OP_ADR, OP_RLD, OP_RST, OP_JID, OP_CMP:
		return OPERAND_REG
	case OP_MST, OP_MLD:
		return OPERAND_RAM
	case OP_ICS, OP_BRC:
		return OPERAND_COND
	case OP_BSR, OP_BSL:
		return OPERAND_SHIFT
	case OP_PST, OP_PLD:
		return OPERAND_PORT
	}
	return OPERAND_NONE
}

// ImmediateNeed returns the number of instruction words consumed after the opcode.
func (op Opcode) ImmediateNeed() int {
	switch op {
	case OP_LDI, OP_ICS, OP_BRC:
		return 1
	}
	return 0
}

// Code is a single 8-bit instruction word.
type Code uint8

// MakeCode encodes an opcode and operand into an instruction word.
func MakeCode(op Opcode, operand uint8) Code {
	return Code((uint8(op) << OPCODE_SHIFT) | (operand & OPERAND_MASK))
}

// Opcode returns the top 5 bits of the word.
func (code Code) Opcode() Opcode {
	return Opcode(uint8(code) >> OPCODE_SHIFT)
}

// Operand returns the low 3 bits of the word.
func (code Code) Operand() uint8 {
	return uint8(code) & OPERAND_MASK
}

// String returns the assembly language representation of this word.
func (code Code) String() string {
	op := code.Opcode()
	operand := code.Operand()

	if !op.Valid() {
		return fmt.Sprintf("%v.%d", op, operand)
	}

	switch op.Operand() {
	case OPERAND_REG:
		return fmt.Sprintf("%v r%d", op, operand)
	case OPERAND_COND:
		return fmt.Sprintf("%v %v", op, Cond(operand))
	case OPERAND_PORT:
		if operand == PORT_CONSOLE {
			return fmt.Sprintf("%v console", op)
		}
		return fmt.Sprintf("%v %d", op, operand)
	case OPERAND_RAM, OPERAND_SHIFT:
		return fmt.Sprintf("%v %d", op, operand)
	}

	return op.String()
}
