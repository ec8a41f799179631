// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/tama/cpu"
	"github.com/ezrec/tama/emulator"
	"github.com/ezrec/tama/hal"
	"github.com/ezrec/tama/translate"
)

// breakpointList is a repeatable flag of program addresses.
type breakpointList []uint16

func (bl *breakpointList) String() string {
	var addrs []string
	for _, addr := range *bl {
		addrs = append(addrs, strconv.FormatUint(uint64(addr), 16))
	}
	return strings.Join(addrs, ",")
}

func (bl *breakpointList) Set(value string) (err error) {
	addr, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return
	}
	*bl = append(*bl, uint16(addr))
	return
}

func loadProgram(rom string, compile string, verbose bool) (prog *cpu.Program, err error) {
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			return nil, err
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		return asm.Parse(inf)
	}

	inf, err := os.Open(rom)
	if err != nil {
		return
	}
	defer inf.Close()

	return cpu.LoadProgram(inf)
}

func main() {
	var rom string
	var compile string
	var output string
	var speed uint
	var fps uint
	var scale int
	var freq uint
	var breakpoints breakpointList
	var pause bool
	var useTerm bool
	var verbose bool
	var trace bool
	var defines bool
	var lang string

	flag.StringVar(&rom, "rom", "", "ROM image to run")
	flag.StringVar(&compile, "c", "", "Assembly source to compile and run")
	flag.StringVar(&output, "o", "", "Save the compiled ROM image, do not execute")
	flag.UintVar(&speed, "speed", 1, "Speed ratio, 0 is unthrottled")
	flag.UintVar(&fps, "fps", emulator.FRAMERATE_DEFAULT, "Screen updates per second")
	flag.IntVar(&scale, "scale", 8, "Window pixels per LCD dot")
	flag.UintVar(&freq, "freq", emulator.FREQUENCY_DEFAULT, "Host timestamp frequency")
	flag.Var(&breakpoints, "b", "Breakpoint address (repeatable)")
	flag.BoolVar(&pause, "pause", false, "Start paused")
	flag.BoolVar(&useTerm, "term", false, "Run in the terminal instead of a window")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "trace", false, "Trace instructions and memory accesses")
	flag.BoolVar(&defines, "defines", false, "List the predefined assembler equates")
	flag.StringVar(&lang, "lang", "", "Message language, instead of the host locale")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	if defines {
		equ := maps.Collect(emulator.Defines())
		for _, name := range slices.Sorted(maps.Keys(equ)) {
			fmt.Printf("%v = %v\n", name, equ[name])
		}
		return
	}

	if len(rom) == 0 && len(compile) == 0 {
		log.Fatalf("%v: one of -rom or -c is required", os.Args[0])
	}

	prog, err := loadProgram(rom, compile, verbose)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(output) != 0 {
		err = os.WriteFile(output, prog.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	if freq == 0 {
		freq = emulator.FREQUENCY_DEFAULT
	}

	ctl := newController(uint32(freq), uint8(speed))
	if verbose {
		ctl.Levels |= hal.LOG_INFO
	}
	if trace {
		ctl.Levels |= hal.LOG_CPU | hal.LOG_MEMORY
	}

	ctl.Buzzer, err = openBuzzer(SAMPLE_RATE)
	if err != nil {
		log.Printf("buzzer: %v", err)
		ctl.Buzzer = nil
	} else {
		defer ctl.Buzzer.Close()
	}

	var host hal.Host = ctl
	var tty *terminal
	if useTerm {
		tty = newTerminal(ctl)
		host = tty
	}

	emu := emulator.NewEmulator(host)
	err = emu.Init(prog, breakpoints, uint32(freq))
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	defer emu.Close()

	ctl.Emu = emu
	err = emu.SetSpeed(uint8(speed))
	if err == nil && pause {
		err = emu.SetExecMode(emulator.MODE_PAUSE)
	}
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.SetFramerate(uint8(fps))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	done := make(chan error, 1)
	run := func() {
		err := emu.Mainloop(ctx)
		ctl.quit.Store(true)
		done <- err
	}

	if tty != nil {
		err = tty.Start()
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		run()
		tty.Stop()
	} else {
		go run()
		err = newWindow(ctl, scale).Run()
		if err != nil {
			log.Printf("%v: %v", os.Args[0], err)
		}
		cancel()
	}

	err = <-done
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
