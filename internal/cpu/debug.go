package cpu

import (
	"fmt"
	"strings"
)

// DebugInfo is a snapshot of the processor state.
type DebugInfo struct {
	PC     uint16
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	P      uint8
	Cycles uint64
	Halted bool
}

func (c *CPU) DebugInfo() DebugInfo {
	return DebugInfo{
		PC:     c.pc,
		A:      c.a,
		X:      c.x,
		Y:      c.y,
		SP:     c.sp,
		P:      c.p,
		Cycles: c.cycles,
		Halted: c.halted,
	}
}

// StatusString renders the flags byte as letters, NV-BDIZC, with a
// dot in place of every clear flag.
func (d DebugInfo) StatusString() string {
	const letters = "NV-BDIZC"
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		bit := uint8(0x80) >> i
		switch {
		case letters[i] == '-':
			sb.WriteByte('-')
		case d.P&bit != 0:
			sb.WriteByte(letters[i])
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// String is the multi-line register dump printed on faults.
func (d DebugInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cycle: %d\n", d.Cycles)
	fmt.Fprintf(&sb, "PC:    %04X\n", d.PC)
	fmt.Fprintf(&sb, "flags: %02X %s\n", d.P, d.StatusString())
	fmt.Fprintf(&sb, "A:     %02X\n", d.A)
	fmt.Fprintf(&sb, "X:     %02X\n", d.X)
	fmt.Fprintf(&sb, "Y:     %02X\n", d.Y)
	fmt.Fprintf(&sb, "SP:    %02X\n", d.SP)
	return sb.String()
}

// Peeker reads memory without side effects.
type Peeker interface {
	Peek8(addr uint16) uint8
}

// InstrLen is the encoded length of opcode in bytes, 0 if it is illegal.
func (c *CPU) InstrLen(opcode uint8) int {
	in := c.instrs[opcode]
	if !in.legal() {
		return 0
	}
	return 1 + in.mode.operandBytes()
}

// Disassemble returns a map of addresses and their corresponding
// instructions between from and to inclusive.
func (c *CPU) Disassemble(mem Peeker, from, to uint16) map[uint16]string {
	disasm := make(map[uint16]string)

	addr := uint32(from)
	for addr <= uint32(to) {
		pc := uint16(addr)
		opcode := mem.Peek8(pc)
		in := c.instrs[opcode]
		if !in.legal() {
			disasm[pc] = fmt.Sprintf("$%04X: ???", pc)
			addr++
			continue
		}

		var operand uint16
		n := in.mode.operandBytes()
		switch n {
		case 1:
			operand = uint16(mem.Peek8(pc + 1))
		case 2:
			operand = uint16(mem.Peek8(pc+1)) | uint16(mem.Peek8(pc+2))<<8
		}
		disasm[pc] = fmt.Sprintf("$%04X: %s {%s}", pc, formatInstr(in.name, in.mode, operand, pc), in.mode)
		addr += uint32(1 + n)
	}

	return disasm
}
