// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	stdio "io"
	"iter"
	"log"
	"time"

	"github.com/ezrec/pagecpu/cpu"
	"github.com/ezrec/pagecpu/internal"
	"github.com/ezrec/pagecpu/io"
)

const (
	THROTTLE_DEFAULT = 100 * time.Millisecond // Instruction interval for interactive runs.
)

// Emulator state. CPU + console + ROM image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the assembled program, if any.

	Console io.Console   // Console port.
	Rom     io.Rom       // ROM image, used when Program is empty.
	Output  stdio.Writer // Destination of flushed console output.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Output:  stdio.Discard,
	}

	emu.Cpu.SetPort(cpu.PORT_CONSOLE, &emu.Console)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Console.Defines(),
	)
}

// Reset the CPU and load the ROM.
// If a program has been assembled, its binary replaces the ROM image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Program != nil && len(emu.Program.Statements) != 0 {
		emu.Rom.Data = emu.Program.Binary()
		emu.Rom.Comment = emu.Program.Comments()
	}

	emu.Cpu.Reset()
	clear(emu.Cpu.Rom[:])

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d byte image", len(emu.Rom.Data))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction word at the current address.
func (emu *Emulator) Code() cpu.Code {
	addr := emu.Cpu.Addr()
	if addr >= len(emu.Cpu.Rom) {
		return cpu.Code(0)
	}

	return cpu.Code(emu.Cpu.Rom[addr])
}

// LineNo returns the source line number for the word at addr, or 0 when
// there is no program listing.
func (emu *Emulator) LineNo(addr int) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(addr)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction, then flushes the console.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Cpu.Addr()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: emu.LineNo(addr), Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	err = emu.Console.Flush(emu.Output)
	if err != nil {
		return
	}

	done = emu.Cpu.IsHalted()

	return
}

// Run ticks the emulator until it halts, faults, or ctx is done.
// A positive throttle is the interval between instructions.
func (emu *Emulator) Run(ctx context.Context, throttle time.Duration) (err error) {
	var tick <-chan time.Time
	if throttle > 0 {
		ticker := time.NewTicker(throttle)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if tick == nil {
			err = ctx.Err()
			if err != nil {
				return
			}
			continue
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-tick:
		}
	}
}
