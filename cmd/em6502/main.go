package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/nevisdale/em6502/internal/bus"
	"github.com/nevisdale/em6502/internal/cpu"
	"github.com/nevisdale/em6502/internal/machine"
	"github.com/nevisdale/em6502/internal/ui"
	"github.com/pkg/profile"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so that deferred profile writers still
// get to flush.
func run() int {
	cfg := machine.DefaultConfig()

	rom1Path := flag.String("rom1", "rom1.img", "ROM bank 1 image")
	rom2Path := flag.String("rom2", "rom2.img", "ROM bank 2 image")
	charsPath := flag.String("chars", "chars.img", "character glyph ROM, needed with -ui")
	flag.IntVar(&cfg.RAMSize, "ram", cfg.RAMSize, "general RAM size in bytes")
	traceStr := flag.String("trace", "", "trace channels: instr,read,write,fetch, all or a numeric mask")
	withUI := flag.Bool("ui", false, "show the screen in a window")
	profileMode := flag.String("profile", "", "profile the run: cpu or mem")
	flag.Uint64Var(&cfg.MaxCycles, "max-cycles", 0, "stop after this many cycles, 0 for no limit")
	flag.Parse()

	trace, err := bus.ParseTraceMask(*traceStr)
	if err != nil {
		log.Fatalf("bad -trace: %s\n", err)
	}
	cfg.Trace = trace

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("bad -profile %q: want cpu or mem\n", *profileMode)
	}

	var roms machine.ROMs
	if roms.ROM1, err = machine.LoadROM(*rom1Path, cfg.ROMSize); err != nil {
		log.Fatalf("couldn't load ROM bank 1: %s\n", err)
	}
	if roms.ROM2, err = machine.LoadROM(*rom2Path, cfg.ROMSize); err != nil {
		log.Fatalf("couldn't load ROM bank 2: %s\n", err)
	}
	if *withUI {
		if roms.Chars, err = machine.LoadROM(*charsPath, cfg.CharROMSize); err != nil {
			log.Fatalf("couldn't load the character ROM: %s\n", err)
		}
	}

	m, err := machine.New(cfg, roms)
	if err != nil {
		log.Fatalf("couldn't create the machine: %s\n", err)
	}
	m.Reset()

	if *withUI {
		w := ui.New(m, nil)
		if err := ui.RunUI(w); err != nil {
			log.Fatalf("ui: %s\n", err)
		}
		return exitCode(w.Err())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = m.Run(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		log.Printf("interrupted\n%s", m.DebugInfo())
	default:
		log.Printf("fault: %s\n%s", err, m.DebugInfo())
	}
	return exitCode(err)
}

// exitCode is 1 when the guest program hit an illegal opcode.
func exitCode(err error) int {
	var illegal *cpu.IllegalOpcodeError
	if errors.As(err, &illegal) {
		return 1
	}
	return 0
}
