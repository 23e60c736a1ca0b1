package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_Write(t *testing.T) {
	assert := assert.New(t)

	r := &Registers{}
	for reg := uint8(1); reg < REGISTER_COUNT; reg++ {
		r.Write(reg, 0x10+reg)
	}

	for reg := uint8(1); reg < REGISTER_COUNT; reg++ {
		assert.Equal(0x10+reg, r.Read(reg))
	}
	assert.Equal([REGISTER_COUNT - 1]uint8{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17}, r.Data)
}

func TestRegisters_Zero(t *testing.T) {
	assert := assert.New(t)

	r := &Registers{}
	r.Write(0, 0xff)
	assert.Equal(uint8(0), r.Read(0))
	assert.Equal([REGISTER_COUNT - 1]uint8{}, r.Data)
}

func TestRegisters_Reset(t *testing.T) {
	assert := assert.New(t)

	r := &Registers{}
	r.Write(3, 0x12)
	r.Write(7, 0x34)

	r.Reset()
	for reg := uint8(0); reg < REGISTER_COUNT; reg++ {
		assert.Equal(uint8(0), r.Read(reg))
	}
}
