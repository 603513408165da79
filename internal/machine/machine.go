package machine

import (
	"context"
	"fmt"
	"log"

	"github.com/nevisdale/em6502/internal/bus"
	"github.com/nevisdale/em6502/internal/cpu"
	"github.com/nevisdale/em6502/internal/display"
)

// ROMs are the images the machine boots from. A nil bank is left
// zero filled.
type ROMs struct {
	ROM1  []uint8
	ROM2  []uint8
	Chars []uint8
}

type Option func(*Machine)

func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTracer adds t to the instruction observers.
func WithTracer(t cpu.Tracer) Option {
	return func(m *Machine) {
		m.tracers = append(m.tracers, t)
	}
}

// Machine owns the CPU, the bus and everything mapped on it.
type Machine struct {
	cfg    Config
	logger *log.Logger

	bus   *bus.Bus
	cpu   *cpu.CPU
	ram   *bus.RAM
	video *VideoController
	io1   *IOController
	io2   *IOController
	color *ColorRAM
	rom1  *bus.ROM
	rom2  *bus.ROM
	chars []uint8

	tracers []cpu.Tracer

	paused   bool
	stepOnce bool
}

func New(cfg Config, roms ROMs, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Default()
	}

	m.bus = bus.New(m.logger)
	m.bus.SetTrace(cfg.Trace)
	m.ram = bus.NewRAM(cfg.RAMSize)
	m.video = NewVideoController()
	m.io1 = NewIOController("io1", m.logger)
	m.io2 = NewIOController("io2", m.logger)
	m.color = NewColorRAM()
	m.rom1 = bus.NewROM("rom1", cfg.ROMSize, m.logger)
	m.rom2 = bus.NewROM("rom2", cfg.ROMSize, m.logger)

	for _, img := range []struct {
		rom  *bus.ROM
		data []uint8
	}{{m.rom1, roms.ROM1}, {m.rom2, roms.ROM2}} {
		if img.data == nil {
			continue
		}
		if err := img.rom.Load(img.data); err != nil {
			return nil, err
		}
	}
	if roms.Chars != nil && len(roms.Chars) != cfg.CharROMSize {
		return nil, fmt.Errorf("%w: char ROM is %d bytes, want %d", ErrShortROM, len(roms.Chars), cfg.CharROMSize)
	}
	m.chars = roms.Chars

	// decode order: RAM, peripherals by base address, the unmapped
	// gap below the ROM split, then the ROM banks
	if err := m.mapDevices(); err != nil {
		return nil, err
	}

	m.cpu = cpu.NewCPU(m.bus)
	if cfg.Trace&bus.TraceInstr != 0 {
		m.tracers = append(m.tracers, cpu.TracerFunc(func(rec cpu.Record) {
			m.logger.Print(rec.String())
		}))
	}
	switch len(m.tracers) {
	case 0:
	case 1:
		m.cpu.SetTracer(m.tracers[0])
	default:
		tracers := m.tracers
		m.cpu.SetTracer(cpu.TracerFunc(func(rec cpu.Record) {
			for _, t := range tracers {
				t.Trace(rec)
			}
		}))
	}

	return m, nil
}

func (m *Machine) mapDevices() error {
	if err := m.bus.Map("ram", 0, m.ram); err != nil {
		return err
	}
	if err := m.bus.Map("video", m.cfg.VideoBase, m.video); err != nil {
		return err
	}
	if err := m.bus.Map("io1", m.cfg.IO1Base, m.io1); err != nil {
		return err
	}
	if err := m.bus.Map("io2", m.cfg.IO2Base, m.io2); err != nil {
		return err
	}
	if err := m.bus.Map("color", m.cfg.ColorBase, m.color); err != nil {
		return err
	}
	if m.cfg.RAMSize < int(m.cfg.ROM1Base) {
		if err := m.bus.Hole("unmapped", uint16(m.cfg.RAMSize), m.cfg.ROM1Base-1); err != nil {
			return err
		}
	}
	if err := m.bus.Map("rom1", m.cfg.ROM1Base, m.rom1); err != nil {
		return err
	}
	return m.bus.Map("rom2", m.cfg.ROM2Base, m.rom2)
}

// Reset starts the CPU from the reset vector and clears the pause state.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.paused = false
	m.stepOnce = false
}

// Step executes one instruction. See cpu.CPU.Step.
func (m *Machine) Step() (uint8, error) {
	return m.cpu.Step()
}

// Run steps the CPU until it halts, ctx is done or the configured
// cycle limit is reached. Reaching the limit is not an error.
func (m *Machine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.cfg.MaxCycles > 0 && m.cpu.Cycles() >= m.cfg.MaxCycles {
			return nil
		}
		if _, err := m.cpu.Step(); err != nil {
			return err
		}
	}
}

// RunFrame executes 1/60 s worth of cycles. When paused it executes
// nothing, or a single instruction after OneStepAndStop.
func (m *Machine) RunFrame() error {
	if m.cpu.Halted() {
		return nil
	}
	if m.paused {
		if !m.stepOnce {
			return nil
		}
		m.stepOnce = false
		_, err := m.cpu.Step()
		return err
	}

	budget := m.cfg.ClockHz / 60
	for spent := 0; spent < budget; {
		n, err := m.cpu.Step()
		if err != nil {
			return err
		}
		spent += int(n)
	}
	return nil
}

func (m *Machine) TogglePause() {
	m.paused = !m.paused
	m.stepOnce = false
}

// OneStepAndStop pauses the machine and lets the next RunFrame
// execute exactly one instruction.
func (m *Machine) OneStepAndStop() {
	m.paused = true
	m.stepOnce = true
}

func (m *Machine) Paused() bool {
	return m.paused
}

func (m *Machine) Halted() bool {
	return m.cpu.Halted()
}

func (m *Machine) DebugInfo() cpu.DebugInfo {
	return m.cpu.DebugInfo()
}

// Disassemble decodes the memory between from and to without side
// effects.
func (m *Machine) Disassemble(from, to uint16) map[uint16]string {
	return m.cpu.Disassemble(m.bus, from, to)
}

// Peek8 reads addr without touching traces or diagnostics.
func (m *Machine) Peek8(addr uint16) uint8 {
	return m.bus.Peek8(addr)
}

func (m *Machine) Bus() *bus.Bus {
	return m.bus
}

// Frame returns the inputs of the video output. The slices alias
// machine memory and are only valid until the next step.
func (m *Machine) Frame() display.Frame {
	screen := int(m.cfg.ScreenBase)
	return display.Frame{
		Screen:     m.ram.Bytes()[screen : screen+ScreenSize],
		Color:      m.color.data[:ScreenSize],
		Chars:      m.chars,
		Border:     m.video.Register(VideoRegBorder),
		Background: m.video.Register(VideoRegBackground),
		Charset:    m.video.Register(VideoRegCharset),
	}
}
