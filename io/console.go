package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
)

// Console is the console output port. Bytes sent to it are buffered,
// without limit, until flushed, and it always reads as zero.
type Console struct {
	Data []uint8 // Buffered output, oldest first.
}

var _ Port = (*Console)(nil)

// Defines returns an iter of defines for the port.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"PORT_CONSOLE": fmt.Sprintf("%d", PORT_CONSOLE),
	})
}

// Rewind discards any buffered output.
func (con *Console) Rewind() {
	con.Data = con.Data[:0]
}

// Receive always returns zero; the console has no input.
func (con *Console) Receive() uint8 {
	return 0
}

// Send appends a byte to the output buffer. It never fails.
func (con *Console) Send(value uint8) (err error) {
	con.Data = append(con.Data, value)

	return
}

// Flush writes each buffered byte to w as a decimal number on its own
// line, in the order sent, then empties the buffer.
func (con *Console) Flush(w io.Writer) (err error) {
	if len(con.Data) == 0 {
		return
	}

	var text []byte
	for _, value := range con.Data {
		text = strconv.AppendUint(text, uint64(value), 10)
		text = append(text, '\n')
	}

	_, err = w.Write(text)
	if err != nil {
		return
	}

	con.Data = con.Data[:0]

	return
}
