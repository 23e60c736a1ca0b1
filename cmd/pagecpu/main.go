// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/ezrec/pagecpu/cpu"
	"github.com/ezrec/pagecpu/emulator"
)

func main() {
	var compile string
	var rom string
	var save bool
	var output string
	var throttle time.Duration
	var verbose bool
	var dump bool

	// Throttle only when someone is watching.
	throttleDefault := time.Duration(0)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		throttleDefault = emulator.THROTTLE_DEFAULT
	}

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&rom, "r", "out.b", "ROM image to load, or to save with -s")
	flag.BoolVar(&save, "s", false, "Save compiled program to ROM image, do not execute")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.DurationVar(&throttle, "t", throttleDefault, "Interval between instructions")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump machine state on exit")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if save && len(compile) == 0 {
		log.Fatalf("%v: -s requires -c", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for equ, value := range emu.Defines() {
			asm.Predefine(equ, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Rom.Data = emu.Program.Binary()
		emu.Rom.Comment = emu.Program.Comments()
	} else {
		inf, err := os.Open(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer inf.Close()

		err = emu.Rom.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	if save {
		ouf, err := os.Create(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer ouf.Close()

		_, err = emu.Rom.WriteTo(ouf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		return
	}

	if output == "-" {
		emu.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Output = ouf
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", rom, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx, throttle)
	if dump || (err != nil && verbose) {
		pp.Fprintln(os.Stderr, emu.Cpu.Snapshot())
	}
	if err != nil {
		log.Fatal(err)
	}
}
