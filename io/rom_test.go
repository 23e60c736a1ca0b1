package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Parse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		image string
		data  []uint8
	}){
		{"halt", "00000000 11111000\n", []uint8{0x00, 0xf8}},
		{"comment", "/ 11111111\n00000001\n", []uint8{0x01}},
		{"comment_indented", " / 1\n", []uint8{0x01}},
		{"lines", "1\n10\n\n11 100\n", []uint8{1, 2, 3, 4}},
		{"plus", "+101", []uint8{5}},
		{"junk", "0102 hello 11 100000000 -1 ", []uint8{3}},
		{"tabs", "\t1111\t0000\r\n", []uint8{15, 0}},
	}

	for _, entry := range table {
		rom := &Rom{}
		err := rom.Parse(strings.NewReader(entry.image))
		assert.NoError(err, entry.name)
		assert.Equal(entry.data, rom.Data, entry.name)
	}
}

func TestRom_ParseEmpty(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint8{1, 2, 3}}
	err := rom.Parse(strings.NewReader("/ nothing here\n"))
	assert.NoError(err)
	assert.Equal(0, len(rom.Data))
}

func TestRom_ParseLongLine(t *testing.T) {
	assert := assert.New(t)

	const count = 700_000

	image := "/ " + strings.Repeat("x", 2<<20) + "\n" +
		strings.Repeat("101 ", count) + "\n" +
		"11111000"

	rom := &Rom{}
	err := rom.Parse(strings.NewReader(image))
	assert.NoError(err)
	if assert.Equal(count+1, len(rom.Data)) {
		assert.Equal(uint8(5), rom.Data[0])
		assert.Equal(uint8(5), rom.Data[count-1])
		assert.Equal(uint8(0xf8), rom.Data[count])
	}
}

func TestRom_WriteTo(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{
		Data: []uint8{0x51, 0x03, 0xf8},
		Comment: map[int]string{
			0: "2: ldi r1 3",
			2: "3: hlt",
			9: "past the end",
		},
	}

	var buf bytes.Buffer
	n, err := rom.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), n)

	expected := strings.Join([]string{
		"/ 3 bytes",
		"/ 2: ldi r1 3",
		"01010001",
		"00000011",
		"/ 3: hlt",
		"11111000",
		"",
	}, "\n")
	assert.Equal(expected, buf.String())

	other := &Rom{}
	err = other.Parse(&buf)
	assert.NoError(err)
	assert.Equal(rom.Data, other.Data)
}
