// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/pagecpu/io"
)

// Port is an I/O port interface.
type Port io.Port

// Address space constants.
const (
	PAGE_SIZE  = 32                     // Words per ROM page.
	PAGE_COUNT = 32                     // Pages of ROM.
	ROM_SIZE   = PAGE_SIZE * PAGE_COUNT // Bytes of ROM.
	RAM_SIZE   = 32                     // Bytes of RAM. Only 0..7 are reachable by an operand.
	PORT_COUNT = 8                      // I/O port slots.

	PORT_CONSOLE = io.PORT_CONSOLE // Console output port.

	PC_WRAP = 32 // PC value at which the page advances.
)

var _cpu_defines = map[string]string{
	"PAGE_SIZE":    fmt.Sprintf("%d", PAGE_SIZE),
	"PAGE_COUNT":   fmt.Sprintf("%d", PAGE_COUNT),
	"ROM_SIZE":     fmt.Sprintf("%d", ROM_SIZE),
	"RAM_SIZE":     fmt.Sprintf("%d", RAM_SIZE),
	"PORT_CONSOLE": fmt.Sprintf("%d", PORT_CONSOLE),
}

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Rom      [ROM_SIZE]uint8 // Instruction memory.
	Ram      [RAM_SIZE]uint8 // Data memory.
	Register Registers       // Register file.
	Acc      uint8           // Accumulator.
	Flags    Flags           // Condition flags.
	Pc       uint8           // Program counter within the page.
	Page     uint8           // Page register. Not clamped to PAGE_COUNT.
	Halted   bool            // Set by HLT.

	Ticks int // Instructions executed since reset.

	port [PORT_COUNT]Port // I/O ports.
}

// State is a plain copy of the architectural state.
type State struct {
	Addr     int
	Page     uint8
	Pc       uint8
	Acc      uint8
	Register [REGISTER_COUNT]uint8
	Ram      [RAM_SIZE]uint8
	Flags    Flags
	Halted   bool
	Ticks    int
}

// NewCpu creates a new CPU with all state zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Addr returns the effective instruction address.
func (cpu *Cpu) Addr() int {
	return int(cpu.Page)*PAGE_SIZE + int(cpu.Pc)
}

// IsHalted returns true once HLT has executed.
func (cpu *Cpu) IsHalted() bool {
	return cpu.Halted
}

// Snapshot returns a copy of the architectural state.
func (cpu *Cpu) Snapshot() (state State) {
	state = State{
		Addr:   cpu.Addr(),
		Page:   cpu.Page,
		Pc:     cpu.Pc,
		Acc:    cpu.Acc,
		Ram:    cpu.Ram,
		Flags:  cpu.Flags,
		Halted: cpu.Halted,
		Ticks:  cpu.Ticks,
	}
	for n := range REGISTER_COUNT {
		state.Register[n] = cpu.Register.Read(uint8(n))
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"addr", "page", "pc",
		"acc",
		"r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"flags",
		"halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "addr":
			strval = fmt.Sprintf("%03X", cpu.Addr())
		case "page":
			strval = fmt.Sprintf("%02X", cpu.Page)
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "acc":
			strval = fmt.Sprintf("%02X", cpu.Acc)
		case "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%02X", cpu.Register.Read(reg[1]-'0'))
		case "flags":
			strval = ""
			for _, flag := range []struct {
				set  bool
				name string
			}{{cpu.Flags.Zero, "z"}, {cpu.Flags.Msb, "m"}, {cpu.Flags.Carry, "c"}} {
				if flag.set {
					strval += flag.name
				} else {
					strval += "-"
				}
			}
		case "halt":
			strval = fmt.Sprintf("%v", cpu.Halted)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Clears the registers, accumulator, flags and RAM.
// - Moves execution to page 0, PC 0.
// - Zeros statistics counters.
// - Rewinds all ports.
//
// The ROM is left intact.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Ram[:])
	cpu.Register.Reset()
	cpu.Acc = 0
	cpu.Flags = Flags{}
	cpu.Pc = 0
	cpu.Page = 0
	cpu.Halted = false
	cpu.Ticks = 0

	for _, port := range cpu.port {
		if port == nil {
			continue
		}
		port.Rewind()
	}
}

// Load copies a program image into ROM, starting at address 0.
// ROM past the end of the image is not modified.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > len(cpu.Rom) {
		err = ErrImageSize
		return
	}

	copy(cpu.Rom[:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	return
}

// SetPort attaches a port model to a port index. A nil port detaches it.
func (cpu *Cpu) SetPort(index uint8, port Port) {
	cpu.port[index&OPERAND_MASK] = port
}

// GetPort gets the port model attached to an index.
func (cpu *Cpu) GetPort(index uint8) (port Port, ok bool) {
	port = cpu.port[index&OPERAND_MASK]
	ok = port != nil
	return
}

// incPc advances the program counter. The wrap check is against 32, so PC
// holds 32 for one instruction before the page advances.
func (cpu *Cpu) incPc() {
	if cpu.Pc == PC_WRAP {
		cpu.Pc = 0
		cpu.Page++
	} else {
		cpu.Pc++
	}
}

// fetch reads the word at the effective address and advances the PC.
func (cpu *Cpu) fetch() (code Code, err error) {
	addr := cpu.Addr()
	if addr >= len(cpu.Rom) {
		err = ErrFetchRange
		return
	}

	code = Code(cpu.Rom[addr])
	cpu.incPc()

	return
}

// Step executes the instruction at the effective address.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted {
		return ErrHalted
	}

	addr := cpu.Addr()
	pc := cpu.Pc
	page := cpu.Page

	var code Code
	defer func() {
		if err != nil {
			err = &ErrFault{Addr: addr, Pc: pc, Page: page, Code: code, Err: err}
		}
	}()

	code, err = cpu.fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %03x: %v", addr, code)
	}

	err = cpu.Execute(code)

	return
}

// Execute executes a single fetched instruction word. The PC must already
// point past the word.
func (cpu *Cpu) Execute(code Code) (err error) {
	operand := code.Operand()
	reg := cpu.Register.Read(operand)

	switch code.Opcode() {
	case OP_NOP:
		// pass
	case OP_ADD:
		cpu.Acc = cpu.Flags.doAdd(reg, cpu.Acc)
	case OP_SUB:
		// Carry compares against reg-acc, not the stored acc-reg.
		res := cpu.Acc - reg
		cpu.Flags.set(isOverflowSub(reg, cpu.Acc, res), res)
		cpu.Acc = res
	case OP_BSUB:
		cpu.Acc = cpu.Flags.doSub(reg, cpu.Acc)
	case OP_OR:
		cpu.Acc = cpu.Flags.doLogic(cpu.Acc | reg)
	case OP_NOR:
		cpu.Acc = cpu.Flags.doLogic(^(cpu.Acc | reg))
	case OP_AND:
		cpu.Acc = cpu.Flags.doLogic(cpu.Acc & reg)
	case OP_NAND:
		cpu.Acc = cpu.Flags.doLogic(^(cpu.Acc & reg))
	case OP_XOR:
		cpu.Acc = cpu.Flags.doLogic(cpu.Acc ^ reg)
	case OP_XNOR:
		cpu.Acc = cpu.Flags.doLogic(^(cpu.Acc ^ reg))
	case OP_LDI:
		var imm Code
		imm, err = cpu.fetch()
		if err != nil {
			return
		}
		cpu.Register.Write(operand, uint8(imm))
	case OP_ADR:
		cpu.Register.Write(operand, cpu.Flags.doAdd(reg, cpu.Acc))
	case OP_RLD:
		cpu.Acc = reg
	case OP_RST:
		cpu.Register.Write(operand, cpu.Acc)
	case OP_MST:
		cpu.Ram[operand] = cpu.Acc
	case OP_MLD:
		cpu.Acc = cpu.Ram[operand]
	case OP_ICS:
		var imm *Code
		imm, err = cpu.branch(Cond(operand))
		if err == nil && imm != nil {
			cpu.Page = uint8(*imm) >> 3
		}
	case OP_JID:
		cpu.Pc = reg & 0b11111
	case OP_BRC:
		var imm *Code
		imm, err = cpu.branch(Cond(operand))
		if err == nil && imm != nil {
			cpu.Pc = (uint8(*imm) & 0b11111) >> 3
		}
	case OP_DEC:
		cpu.Acc = cpu.Flags.doSub(cpu.Acc, 1)
	case OP_CMP:
		cpu.Flags.doSub(reg, cpu.Acc)
	case OP_BSR:
		cpu.Acc = cpu.Flags.doLogic(cpu.Acc >> operand)
	case OP_BSL:
		cpu.Acc = cpu.Flags.doLogic(cpu.Acc << operand)
	case OP_PST:
		port, ok := cpu.GetPort(operand)
		if ok {
			err = port.Send(cpu.Acc)
		}
	case OP_PLD:
		cpu.Acc = 0
		port, ok := cpu.GetPort(operand)
		if ok {
			cpu.Acc = port.Receive()
		}
	case OP_INC:
		cpu.Acc = cpu.Flags.doAdd(cpu.Acc, 1)
	case OP_HLT:
		cpu.Halted = true
		if cpu.Verbose {
			log.Printf("cpu: halted after %d ticks", cpu.Ticks+1)
		}
	default:
		err = ErrOpcode(code)
	}

	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// branch evaluates a condition. If it holds, the immediate is fetched and
// returned. Otherwise the immediate is skipped and nil is returned.
func (cpu *Cpu) branch(cond Cond) (imm *Code, err error) {
	taken, err := cpu.Flags.Test(cond)
	if err != nil {
		return
	}

	if !taken {
		cpu.incPc()
		return
	}

	code, err := cpu.fetch()
	if err != nil {
		return
	}
	imm = &code

	return
}
