package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Statements: []Statement{
			{LineNo: 1, Addr: 0, Words: []string{"ldi", "r1", "0x10"},
				Codes: []Code{MakeCode(OP_LDI, 1), 0x10}},
			{LineNo: 2, Addr: 2, Words: []string{"rld", "r1"},
				Codes: []Code{MakeCode(OP_RLD, 1)}},
			{LineNo: 4, Addr: 5, Words: []string{"hlt"},
				Codes: []Code{MakeCode(OP_HLT, 0)}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Statement)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(1)
	assert.NotNil(dbg.Statement)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(2)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(5)
	assert.Equal(4, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, addr := range []int{3, 4, 6, ROM_SIZE} {
		dbg := prog.Debug(addr)
		assert.Nil(dbg.Statement)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal([]byte{
		byte(MakeCode(OP_LDI, 1)), 0x10,
		byte(MakeCode(OP_RLD, 1)),
		0, 0,
		byte(MakeCode(OP_HLT, 0)),
	}, prog.Binary())

	assert.Empty((&Program{}).Binary())
}

func TestProgram_Comments(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(map[int]string{
		0: "1: ldi r1 0x10",
		2: "2: rld r1",
		5: "4: hlt",
	}, prog.Comments())
}
