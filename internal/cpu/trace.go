package cpu

import (
	"fmt"
	"strings"
)

// Tracer observes executed instructions. Trace is called synchronously
// after each instruction and must not change CPU or memory state.
type Tracer interface {
	Trace(rec Record)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(rec Record)

func (f TracerFunc) Trace(rec Record) {
	f(rec)
}

// Record describes one executed instruction.
// Registers hold the values after execution.
type Record struct {
	Addr    uint16   // address of the opcode
	Opcode  uint8    // opcode byte
	Name    string   // mnemonic
	Mode    string   // addressing mode, e.g. "ABSX"
	Bytes   [3]uint8 // fetched instruction bytes, Len of them are valid
	Len     int      // number of bytes fetched
	Operand uint16   // operand bytes as a little-endian value
	Target  uint16   // effective address, zero for IMM, ACC and IMP

	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	P      uint8
	Cycles uint64
}

func (c *CPU) record(addr uint16, opcode uint8, in instr) Record {
	rec := Record{
		Addr:   addr,
		Opcode: opcode,
		Name:   in.name,
		Mode:   in.mode.String(),
		Bytes:  c.fetched,
		Len:    min(c.mem.FetchCount(), len(c.fetched)),
		A:      c.a,
		X:      c.x,
		Y:      c.y,
		SP:     c.sp,
		P:      c.p,
		Cycles: c.cycles,
	}
	switch in.mode.operandBytes() {
	case 1:
		rec.Operand = uint16(rec.Bytes[1])
	case 2:
		rec.Operand = uint16(rec.Bytes[1]) | uint16(rec.Bytes[2])<<8
	}
	switch in.mode {
	case addrModeIMM, addrModeACC, addrModeIMP:
	case addrModeREL:
		rec.Target = addr + 2 + c.operandAddr
	default:
		rec.Target = c.operandAddr
	}
	return rec
}

// String renders the record as a trace line:
//
//	C000: A9 10     LDA #$10         A:10 X:00 Y:00 P:24 SP:FD CYC:2
func (r Record) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X:", r.Addr)
	for i := 0; i < 3; i++ {
		if i < r.Len {
			fmt.Fprintf(&sb, " %02X", r.Bytes[i])
		} else {
			sb.WriteString("   ")
		}
	}
	asm := formatInstr(r.Name, modeFromString(r.Mode), r.Operand, r.Addr)
	fmt.Fprintf(&sb, "  %-14s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		asm, r.A, r.X, r.Y, r.P, r.SP, r.Cycles)
	return sb.String()
}

func modeFromString(s string) addrMode {
	for m := addrModeIMM; m <= addrModeIMP; m++ {
		if m.String() == s {
			return m
		}
	}
	return 0
}

// formatInstr renders an instruction in assembler syntax. pc is the
// address of the opcode, needed to resolve branch targets.
func formatInstr(name string, mode addrMode, operand uint16, pc uint16) string {
	switch mode {
	case addrModeIMM:
		return fmt.Sprintf("%s #$%02X", name, operand)
	case addrModeZP:
		return fmt.Sprintf("%s $%02X", name, operand)
	case addrModeZPX:
		return fmt.Sprintf("%s $%02X,X", name, operand)
	case addrModeZPY:
		return fmt.Sprintf("%s $%02X,Y", name, operand)
	case addrModeABS:
		return fmt.Sprintf("%s $%04X", name, operand)
	case addrModeABSX:
		return fmt.Sprintf("%s $%04X,X", name, operand)
	case addrModeABSY:
		return fmt.Sprintf("%s $%04X,Y", name, operand)
	case addrModeIND:
		return fmt.Sprintf("%s ($%04X)", name, operand)
	case addrModeINDX:
		return fmt.Sprintf("%s ($%02X,X)", name, operand)
	case addrModeINDY:
		return fmt.Sprintf("%s ($%02X),Y", name, operand)
	case addrModeREL:
		offset := operand
		if offset&0x80 > 0 {
			offset |= 0xff00
		}
		return fmt.Sprintf("%s $%04X", name, pc+2+offset)
	case addrModeACC:
		return fmt.Sprintf("%s A", name)
	}
	return name
}
