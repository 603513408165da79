package cpu

import (
	"errors"
	"fmt"
)

const (
	stackStartAddr = uint16(0x100)

	vectorReset = uint16(0xfffc)
	// this machine routes BRK through the reset vector
	vectorBRK = vectorReset
)

const (
	flagC = uint8(1 << iota) // Carry
	flagZ                    // Zero
	flagI                    // Interrupt Disable
	flagD                    // Decimal Mode
	flagB                    // Break Command
	flagU                    // Unused
	flagV                    // Overflow
	flagN                    // Negative
)

// Memory is the view of the bus the CPU executes against.
//
// Fetch8 is used for bytes that belong to the instruction stream and
// Read8 for everything the instruction points at. The CPU advances the
// program counter after every Fetch8.
type Memory interface {
	Read8(addr uint16) uint8
	Fetch8(addr uint16) uint8
	Write8(addr uint16, data uint8)
	FetchCount() int
	ResetFetchCount()
}

// ErrHalted is returned by Step once the CPU has stopped.
var ErrHalted = errors.New("cpu: halted")

// IllegalOpcodeError reports an opcode with no instruction behind it.
type IllegalOpcodeError struct {
	Opcode uint8
	Addr   uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode $%02X at $%04X", e.Opcode, e.Addr)
}

type CPU struct {
	a      uint8
	x      uint8
	y      uint8
	p      uint8
	sp     uint8
	pc     uint16
	mem    Memory
	instrs [0x100]instr
	cycles uint64
	halted bool
	tracer Tracer

	// per instruction state
	addrMode     addrMode
	operandAddr  uint16
	operandValue uint8
	operandReady bool
	extraCycles  uint8
	fetched      [3]uint8
}

func NewCPU(mem Memory) *CPU {
	c := &CPU{
		mem: mem,
		p:   flagU,
	}
	c.initInstructions()
	return c
}

// SetTracer installs t as the instruction observer. nil removes it.
func (c *CPU) SetTracer(t Tracer) {
	c.tracer = t
}

func (c *CPU) read8(addr uint16) uint8 {
	return c.mem.Read8(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write8(addr uint16, data uint8) {
	c.mem.Write8(addr, data)
}

// fetch8 consumes the next byte of the instruction stream.
func (c *CPU) fetch8() uint8 {
	data := c.mem.Fetch8(c.pc)
	c.pc++
	if n := c.mem.FetchCount(); n > 0 && n <= len(c.fetched) {
		c.fetched[n-1] = data
	}
	return data
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return lo | hi<<8
}

func (c *CPU) getFlag(flag uint8) bool {
	return c.p&flag > 0
}

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.p |= flag
		return
	}
	c.p &= ^flag
}

func (c *CPU) setFlagsZN(value uint8) {
	c.setFlag(flagZ, value == 0)
	c.setFlag(flagN, value&flagN > 0)
}

func (c *CPU) stackPop8() uint8 {
	c.sp++
	return c.read8(stackStartAddr | uint16(c.sp))
}

func (c *CPU) stackPop16() uint16 {
	lo := uint16(c.stackPop8())
	hi := uint16(c.stackPop8())
	return lo | hi<<8
}

func (c *CPU) stackPush8(data uint8) {
	c.write8(stackStartAddr|uint16(c.sp), data)
	c.sp--
}

func (c *CPU) stackPush16(data uint16) {
	lo := uint8(data & 0xff)
	hi := uint8(data >> 8)
	c.stackPush8(hi)
	c.stackPush8(lo)
}

// Reset loads the program counter from the reset vector and puts the
// CPU back into the running state. A, X and Y keep their values.
func (c *CPU) Reset() {
	c.sp = 0xfd
	c.pc = c.read16(vectorReset)
	c.p |= flagU | flagI
	c.cycles = 0
	c.halted = false
}

// Halted reports whether an illegal opcode stopped the CPU.
func (c *CPU) Halted() bool {
	return c.halted
}

// Cycles is the number of cycles executed since the last reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// SetPC moves the program counter, e.g. to start a test program
// without going through the reset vector.
func (c *CPU) SetPC(addr uint16) {
	c.pc = addr
}

// Step executes one instruction and returns the cycles it took.
//
// An opcode without an instruction halts the CPU: the returned error is
// an *IllegalOpcodeError, PC is left just past the opcode and nothing
// else changes. Every later call returns ErrHalted.
func (c *CPU) Step() (uint8, error) {
	if c.halted {
		return 0, ErrHalted
	}

	addr := c.pc
	c.mem.ResetFetchCount()
	c.fetched = [3]uint8{}
	opcode := c.fetch8()
	in := c.instrs[opcode]
	if !in.legal() {
		c.halted = true
		return 0, &IllegalOpcodeError{Opcode: opcode, Addr: addr}
	}

	c.resolve(in.mode)
	in.fn()
	spent := in.cycles + c.extraCycles
	c.cycles += uint64(spent)

	if c.tracer != nil {
		c.tracer.Trace(c.record(addr, opcode, in))
	}

	c.addrMode = 0
	c.operandAddr = 0
	c.operandValue = 0
	c.operandReady = false
	c.extraCycles = 0
	return spent, nil
}
