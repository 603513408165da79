package machine

import (
	"errors"
	"fmt"

	"github.com/nevisdale/em6502/internal/bus"
	"github.com/nevisdale/em6502/internal/display"
)

// Peripheral window sizes. They are fixed by the hardware.
const (
	VideoWindowSize = 16
	IOWindowSize    = 32
	ColorWindowSize = 0x400

	ScreenSize = display.Cols * display.Rows
)

var ErrBadConfig = errors.New("machine: bad config")

// Config describes the memory map of the machine.
//
// $0000-$7FFF: general RAM
// $8000-$BFFF: unmapped, except for
//   $A000-$A00F: video controller registers
//   $A100-$A11F: I/O controller #1
//   $A200-$A21F: I/O controller #2
//   $A400-$A7FF: color attribute RAM
// $C000-$DFFF: ROM bank 1
// $E000-$FFFF: ROM bank 2
//
// The character ROM is only seen by the video output, not by the CPU.
type Config struct {
	RAMSize int

	VideoBase uint16
	IO1Base   uint16
	IO2Base   uint16
	ColorBase uint16

	ROM1Base    uint16
	ROM2Base    uint16
	ROMSize     int // size of each bank
	CharROMSize int

	// ScreenBase is the address of the 40x25 text screen in RAM.
	ScreenBase uint16

	// ClockHz sets how many cycles RunFrame executes per 1/60 s.
	ClockHz int
	// MaxCycles stops Run once reached. 0 means no limit.
	MaxCycles uint64

	Trace bus.TraceMask
}

func DefaultConfig() Config {
	return Config{
		RAMSize:     0x8000,
		VideoBase:   0xa000,
		IO1Base:     0xa100,
		IO2Base:     0xa200,
		ColorBase:   0xa400,
		ROM1Base:    0xc000,
		ROM2Base:    0xe000,
		ROMSize:     0x2000,
		CharROMSize: 0x1000,
		ScreenBase:  0x0400,
		ClockHz:     1_000_000,
	}
}

type window struct {
	name  string
	start int
	size  int
}

func (w window) end() int {
	return w.start + w.size
}

// Validate checks that the windows are in decode order, do not overlap
// and fit into the 16-bit address space.
func (c Config) Validate() error {
	if c.RAMSize <= 0 || c.RAMSize > 0x10000 {
		return fmt.Errorf("%w: RAM size %d", ErrBadConfig, c.RAMSize)
	}
	if c.ROMSize <= 0 {
		return fmt.Errorf("%w: ROM size %d", ErrBadConfig, c.ROMSize)
	}
	if c.CharROMSize < 0 {
		return fmt.Errorf("%w: char ROM size %d", ErrBadConfig, c.CharROMSize)
	}
	if c.ClockHz <= 0 {
		return fmt.Errorf("%w: clock %d Hz", ErrBadConfig, c.ClockHz)
	}
	if int(c.ScreenBase)+ScreenSize > c.RAMSize {
		return fmt.Errorf("%w: screen at $%04X is outside RAM", ErrBadConfig, c.ScreenBase)
	}

	windows := []window{
		{"ram", 0, c.RAMSize},
		{"video", int(c.VideoBase), VideoWindowSize},
		{"io1", int(c.IO1Base), IOWindowSize},
		{"io2", int(c.IO2Base), IOWindowSize},
		{"color", int(c.ColorBase), ColorWindowSize},
		{"rom1", int(c.ROM1Base), c.ROMSize},
		{"rom2", int(c.ROM2Base), c.ROMSize},
	}
	for i, w := range windows {
		if w.end() > 0x10000 {
			return fmt.Errorf("%w: %s window $%04X+%d runs past $FFFF", ErrBadConfig, w.name, w.start, w.size)
		}
		if i == 0 {
			continue
		}
		if prev := windows[i-1]; w.start < prev.end() {
			return fmt.Errorf("%w: %s window at $%04X overlaps %s", ErrBadConfig, w.name, w.start, prev.name)
		}
	}
	return nil
}
