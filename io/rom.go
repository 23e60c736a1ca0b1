package io

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ROM_COMMENT starts a full-line comment in a ROM image.
const ROM_COMMENT = '/'

// Rom is a program image in the binary-literal text format: one or more
// base-2 byte values per line, separated by whitespace. A line starting
// with '/' is a comment.
type Rom struct {
	Data    []uint8        // Image bytes, from ROM address 0.
	Comment map[int]string // Optional comments, emitted before the byte at an address.
}

// Parse replaces the image with the one read from r. Tokens that are not
// a base-2 value in 0..255 are skipped. Lines may be of any length, and no
// capacity check is done.
func (rom *Rom) Parse(r io.Reader) (err error) {
	br := bufio.NewReader(r)

	rom.Data = rom.Data[:0]
	clear(rom.Comment)

	for {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 && line[0] != ROM_COMMENT {
			for _, word := range strings.Fields(line) {
				value, ok := parseBinary(word)
				if !ok {
					continue
				}
				rom.Data = append(rom.Data, value)
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			err = rerr
			return
		}
	}

	return
}

// parseBinary parses a base-2 byte value, with an optional leading '+'.
func parseBinary(word string) (value uint8, ok bool) {
	word = strings.TrimPrefix(word, "+")
	v64, err := strconv.ParseUint(word, 2, 8)
	if err != nil {
		return
	}

	return uint8(v64), true
}

// WriteTo writes the image to w, one byte per line.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)

	write := func(format string, args ...any) {
		if err != nil {
			return
		}
		var count int
		count, err = fmt.Fprintf(bw, format, args...)
		n += int64(count)
	}

	write("%c %d bytes\n", ROM_COMMENT, len(rom.Data))

	addrs := slices.Sorted(maps.Keys(rom.Comment))

	for addr, value := range rom.Data {
		for len(addrs) > 0 && addrs[0] <= addr {
			if addrs[0] == addr {
				comment := strings.ReplaceAll(rom.Comment[addr], "\n", " ")
				write("%c %s\n", ROM_COMMENT, comment)
			}
			addrs = addrs[1:]
		}
		write("%08b\n", value)
	}

	if err != nil {
		return
	}

	err = bw.Flush()

	return
}
