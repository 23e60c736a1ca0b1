package cpu

// Flags are the condition flags, set by arithmetic and logical instructions.
type Flags struct {
	Zero  bool // Result was zero.
	Msb   bool // Bit 7 of the result was set.
	Carry bool // Unbounded result did not fit in 8 bits.
}

// set updates all three flags from a stored result.
func (fl *Flags) set(carry bool, result uint8) {
	fl.Carry = carry
	fl.Msb = (result & 0x80) != 0
	fl.Zero = result == 0
}

// Test evaluates a branch condition against the flags.
func (fl Flags) Test(cond Cond) (ok bool, err error) {
	switch cond {
	case COND_ZERO:
		ok = fl.Zero
	case COND_NOT_ZERO:
		ok = !fl.Zero
	case COND_MSB:
		ok = fl.Msb
	case COND_NOT_MSB:
		ok = !fl.Msb
	case COND_CARRY:
		ok = fl.Carry
	case COND_NOT_CARRY:
		ok = !fl.Carry
	case COND_ALWAYS:
		ok = true
	default:
		err = ErrCondition(cond)
	}
	return
}

// isOverflowAdd is true if a+b does not equal the wrapped sum.
func isOverflowAdd(a, b, sum uint8) bool {
	return int(a)+int(b) != int(sum)
}

// isOverflowSub is true if a-b does not equal the wrapped difference.
func isOverflowSub(a, b, diff uint8) bool {
	return int(a)-int(b) != int(diff)
}

// doAdd returns a+b, updating the flags.
func (fl *Flags) doAdd(a, b uint8) (sum uint8) {
	sum = a + b
	fl.set(isOverflowAdd(a, b, sum), sum)
	return
}

// doSub returns a-b, updating the flags.
func (fl *Flags) doSub(a, b uint8) (diff uint8) {
	diff = a - b
	fl.set(isOverflowSub(a, b, diff), diff)
	return
}

// doLogic stores a bitwise or shift result, clearing the carry.
func (fl *Flags) doLogic(result uint8) uint8 {
	fl.set(false, result)
	return result
}
