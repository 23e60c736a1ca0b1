package cpu

const (
	REGISTER_COUNT = 8 // Addressable registers, including the zero register.
)

// Registers is the register file. Register 0 is hard-wired to zero, so only
// registers 1 through 7 have storage.
type Registers struct {
	Data [REGISTER_COUNT - 1]uint8
}

// Read returns the value of register reg. Register 0 always reads zero.
func (r *Registers) Read(reg uint8) uint8 {
	reg &= OPERAND_MASK
	if reg == 0 {
		return 0
	}
	return r.Data[reg-1]
}

// Write sets register reg. Writes to register 0 are discarded.
func (r *Registers) Write(reg uint8, value uint8) {
	reg &= OPERAND_MASK
	if reg == 0 {
		return
	}
	r.Data[reg-1] = value
}

func (r *Registers) Reset() {
	clear(r.Data[:])
}
