package cpu

type instr struct {
	name   string
	mode   addrMode
	fn     func()
	cycles uint8
}

// legal reports whether the opcode has an instruction behind it.
// Unset table entries are the illegal marker.
func (in instr) legal() bool {
	return in.fn != nil
}

// initInstructions fills the dispatch table with the documented NMOS
// instruction set. Undocumented opcodes stay illegal.
func (c *CPU) initInstructions() {
	for i := range c.instrs {
		c.instrs[i] = instr{name: "???", mode: addrModeIMP}
	}

	c.instrs[0x00] = instr{name: "BRK", mode: addrModeIMP, fn: c.brk, cycles: 7}
	c.instrs[0x01] = instr{name: "ORA", mode: addrModeINDX, fn: c.ora, cycles: 6}
	c.instrs[0x05] = instr{name: "ORA", mode: addrModeZP, fn: c.ora, cycles: 3}
	c.instrs[0x06] = instr{name: "ASL", mode: addrModeZP, fn: c.asl, cycles: 5}
	c.instrs[0x08] = instr{name: "PHP", mode: addrModeIMP, fn: c.php, cycles: 3}
	c.instrs[0x09] = instr{name: "ORA", mode: addrModeIMM, fn: c.ora, cycles: 2}
	c.instrs[0x0a] = instr{name: "ASL", mode: addrModeACC, fn: c.asl, cycles: 2}
	c.instrs[0x0d] = instr{name: "ORA", mode: addrModeABS, fn: c.ora, cycles: 4}
	c.instrs[0x0e] = instr{name: "ASL", mode: addrModeABS, fn: c.asl, cycles: 6}
	c.instrs[0x10] = instr{name: "BPL", mode: addrModeREL, fn: c.bpl, cycles: 2}
	c.instrs[0x11] = instr{name: "ORA", mode: addrModeINDY, fn: c.ora, cycles: 5}
	c.instrs[0x15] = instr{name: "ORA", mode: addrModeZPX, fn: c.ora, cycles: 4}
	c.instrs[0x16] = instr{name: "ASL", mode: addrModeZPX, fn: c.asl, cycles: 6}
	c.instrs[0x18] = instr{name: "CLC", mode: addrModeIMP, fn: c.clc, cycles: 2}
	c.instrs[0x19] = instr{name: "ORA", mode: addrModeABSY, fn: c.ora, cycles: 4}
	c.instrs[0x1d] = instr{name: "ORA", mode: addrModeABSX, fn: c.ora, cycles: 4}
	c.instrs[0x1e] = instr{name: "ASL", mode: addrModeABSX, fn: c.asl, cycles: 7}
	c.instrs[0x20] = instr{name: "JSR", mode: addrModeABS, fn: c.jsr, cycles: 6}
	c.instrs[0x21] = instr{name: "AND", mode: addrModeINDX, fn: c.and, cycles: 6}
	c.instrs[0x24] = instr{name: "BIT", mode: addrModeZP, fn: c.bit, cycles: 3}
	c.instrs[0x25] = instr{name: "AND", mode: addrModeZP, fn: c.and, cycles: 3}
	c.instrs[0x26] = instr{name: "ROL", mode: addrModeZP, fn: c.rol, cycles: 5}
	c.instrs[0x28] = instr{name: "PLP", mode: addrModeIMP, fn: c.plp, cycles: 4}
	c.instrs[0x29] = instr{name: "AND", mode: addrModeIMM, fn: c.and, cycles: 2}
	c.instrs[0x2a] = instr{name: "ROL", mode: addrModeACC, fn: c.rol, cycles: 2}
	c.instrs[0x2c] = instr{name: "BIT", mode: addrModeABS, fn: c.bit, cycles: 4}
	c.instrs[0x2d] = instr{name: "AND", mode: addrModeABS, fn: c.and, cycles: 4}
	c.instrs[0x2e] = instr{name: "ROL", mode: addrModeABS, fn: c.rol, cycles: 6}
	c.instrs[0x30] = instr{name: "BMI", mode: addrModeREL, fn: c.bmi, cycles: 2}
	c.instrs[0x31] = instr{name: "AND", mode: addrModeINDY, fn: c.and, cycles: 5}
	c.instrs[0x35] = instr{name: "AND", mode: addrModeZPX, fn: c.and, cycles: 4}
	c.instrs[0x36] = instr{name: "ROL", mode: addrModeZPX, fn: c.rol, cycles: 6}
	c.instrs[0x38] = instr{name: "SEC", mode: addrModeIMP, fn: c.sec, cycles: 2}
	c.instrs[0x39] = instr{name: "AND", mode: addrModeABSY, fn: c.and, cycles: 4}
	c.instrs[0x3d] = instr{name: "AND", mode: addrModeABSX, fn: c.and, cycles: 4}
	c.instrs[0x3e] = instr{name: "ROL", mode: addrModeABSX, fn: c.rol, cycles: 7}
	c.instrs[0x40] = instr{name: "RTI", mode: addrModeIMP, fn: c.rti, cycles: 6}
	c.instrs[0x41] = instr{name: "EOR", mode: addrModeINDX, fn: c.eor, cycles: 6}
	c.instrs[0x45] = instr{name: "EOR", mode: addrModeZP, fn: c.eor, cycles: 3}
	c.instrs[0x46] = instr{name: "LSR", mode: addrModeZP, fn: c.lsr, cycles: 5}
	c.instrs[0x48] = instr{name: "PHA", mode: addrModeIMP, fn: c.pha, cycles: 3}
	c.instrs[0x49] = instr{name: "EOR", mode: addrModeIMM, fn: c.eor, cycles: 2}
	c.instrs[0x4a] = instr{name: "LSR", mode: addrModeACC, fn: c.lsr, cycles: 2}
	c.instrs[0x4c] = instr{name: "JMP", mode: addrModeABS, fn: c.jmp, cycles: 3}
	c.instrs[0x4d] = instr{name: "EOR", mode: addrModeABS, fn: c.eor, cycles: 4}
	c.instrs[0x4e] = instr{name: "LSR", mode: addrModeABS, fn: c.lsr, cycles: 6}
	c.instrs[0x50] = instr{name: "BVC", mode: addrModeREL, fn: c.bvc, cycles: 2}
	c.instrs[0x51] = instr{name: "EOR", mode: addrModeINDY, fn: c.eor, cycles: 5}
	c.instrs[0x55] = instr{name: "EOR", mode: addrModeZPX, fn: c.eor, cycles: 4}
	c.instrs[0x56] = instr{name: "LSR", mode: addrModeZPX, fn: c.lsr, cycles: 6}
	c.instrs[0x58] = instr{name: "CLI", mode: addrModeIMP, fn: c.cli, cycles: 2}
	c.instrs[0x59] = instr{name: "EOR", mode: addrModeABSY, fn: c.eor, cycles: 4}
	c.instrs[0x5d] = instr{name: "EOR", mode: addrModeABSX, fn: c.eor, cycles: 4}
	c.instrs[0x5e] = instr{name: "LSR", mode: addrModeABSX, fn: c.lsr, cycles: 7}
	c.instrs[0x60] = instr{name: "RTS", mode: addrModeIMP, fn: c.rts, cycles: 6}
	c.instrs[0x61] = instr{name: "ADC", mode: addrModeINDX, fn: c.adc, cycles: 6}
	c.instrs[0x65] = instr{name: "ADC", mode: addrModeZP, fn: c.adc, cycles: 3}
	c.instrs[0x66] = instr{name: "ROR", mode: addrModeZP, fn: c.ror, cycles: 5}
	c.instrs[0x68] = instr{name: "PLA", mode: addrModeIMP, fn: c.pla, cycles: 4}
	c.instrs[0x69] = instr{name: "ADC", mode: addrModeIMM, fn: c.adc, cycles: 2}
	c.instrs[0x6a] = instr{name: "ROR", mode: addrModeACC, fn: c.ror, cycles: 2}
	c.instrs[0x6c] = instr{name: "JMP", mode: addrModeIND, fn: c.jmp, cycles: 5}
	c.instrs[0x6d] = instr{name: "ADC", mode: addrModeABS, fn: c.adc, cycles: 4}
	c.instrs[0x6e] = instr{name: "ROR", mode: addrModeABS, fn: c.ror, cycles: 6}
	c.instrs[0x70] = instr{name: "BVS", mode: addrModeREL, fn: c.bvs, cycles: 2}
	c.instrs[0x71] = instr{name: "ADC", mode: addrModeINDY, fn: c.adc, cycles: 5}
	c.instrs[0x75] = instr{name: "ADC", mode: addrModeZPX, fn: c.adc, cycles: 4}
	c.instrs[0x76] = instr{name: "ROR", mode: addrModeZPX, fn: c.ror, cycles: 6}
	c.instrs[0x78] = instr{name: "SEI", mode: addrModeIMP, fn: c.sei, cycles: 2}
	c.instrs[0x79] = instr{name: "ADC", mode: addrModeABSY, fn: c.adc, cycles: 4}
	c.instrs[0x7d] = instr{name: "ADC", mode: addrModeABSX, fn: c.adc, cycles: 4}
	c.instrs[0x7e] = instr{name: "ROR", mode: addrModeABSX, fn: c.ror, cycles: 7}
	c.instrs[0x81] = instr{name: "STA", mode: addrModeINDX, fn: c.sta, cycles: 6}
	c.instrs[0x84] = instr{name: "STY", mode: addrModeZP, fn: c.sty, cycles: 3}
	c.instrs[0x85] = instr{name: "STA", mode: addrModeZP, fn: c.sta, cycles: 3}
	c.instrs[0x86] = instr{name: "STX", mode: addrModeZP, fn: c.stx, cycles: 3}
	c.instrs[0x88] = instr{name: "DEY", mode: addrModeIMP, fn: c.dey, cycles: 2}
	c.instrs[0x8a] = instr{name: "TXA", mode: addrModeIMP, fn: c.txa, cycles: 2}
	c.instrs[0x8c] = instr{name: "STY", mode: addrModeABS, fn: c.sty, cycles: 4}
	c.instrs[0x8d] = instr{name: "STA", mode: addrModeABS, fn: c.sta, cycles: 4}
	c.instrs[0x8e] = instr{name: "STX", mode: addrModeABS, fn: c.stx, cycles: 4}
	c.instrs[0x90] = instr{name: "BCC", mode: addrModeREL, fn: c.bcc, cycles: 2}
	c.instrs[0x91] = instr{name: "STA", mode: addrModeINDY, fn: c.sta, cycles: 6}
	c.instrs[0x94] = instr{name: "STY", mode: addrModeZPX, fn: c.sty, cycles: 4}
	c.instrs[0x95] = instr{name: "STA", mode: addrModeZPX, fn: c.sta, cycles: 4}
	c.instrs[0x96] = instr{name: "STX", mode: addrModeZPY, fn: c.stx, cycles: 4}
	c.instrs[0x98] = instr{name: "TYA", mode: addrModeIMP, fn: c.tya, cycles: 2}
	c.instrs[0x99] = instr{name: "STA", mode: addrModeABSY, fn: c.sta, cycles: 5}
	c.instrs[0x9a] = instr{name: "TXS", mode: addrModeIMP, fn: c.txs, cycles: 2}
	c.instrs[0x9d] = instr{name: "STA", mode: addrModeABSX, fn: c.sta, cycles: 5}
	c.instrs[0xa0] = instr{name: "LDY", mode: addrModeIMM, fn: c.ldy, cycles: 2}
	c.instrs[0xa1] = instr{name: "LDA", mode: addrModeINDX, fn: c.lda, cycles: 6}
	c.instrs[0xa2] = instr{name: "LDX", mode: addrModeIMM, fn: c.ldx, cycles: 2}
	c.instrs[0xa4] = instr{name: "LDY", mode: addrModeZP, fn: c.ldy, cycles: 3}
	c.instrs[0xa5] = instr{name: "LDA", mode: addrModeZP, fn: c.lda, cycles: 3}
	c.instrs[0xa6] = instr{name: "LDX", mode: addrModeZP, fn: c.ldx, cycles: 3}
	c.instrs[0xa8] = instr{name: "TAY", mode: addrModeIMP, fn: c.tay, cycles: 2}
	c.instrs[0xa9] = instr{name: "LDA", mode: addrModeIMM, fn: c.lda, cycles: 2}
	c.instrs[0xaa] = instr{name: "TAX", mode: addrModeIMP, fn: c.tax, cycles: 2}
	c.instrs[0xac] = instr{name: "LDY", mode: addrModeABS, fn: c.ldy, cycles: 4}
	c.instrs[0xad] = instr{name: "LDA", mode: addrModeABS, fn: c.lda, cycles: 4}
	c.instrs[0xae] = instr{name: "LDX", mode: addrModeABS, fn: c.ldx, cycles: 4}
	c.instrs[0xb0] = instr{name: "BCS", mode: addrModeREL, fn: c.bcs, cycles: 2}
	c.instrs[0xb1] = instr{name: "LDA", mode: addrModeINDY, fn: c.lda, cycles: 5}
	c.instrs[0xb4] = instr{name: "LDY", mode: addrModeZPX, fn: c.ldy, cycles: 4}
	c.instrs[0xb5] = instr{name: "LDA", mode: addrModeZPX, fn: c.lda, cycles: 4}
	c.instrs[0xb6] = instr{name: "LDX", mode: addrModeZPY, fn: c.ldx, cycles: 4}
	c.instrs[0xb8] = instr{name: "CLV", mode: addrModeIMP, fn: c.clv, cycles: 2}
	c.instrs[0xb9] = instr{name: "LDA", mode: addrModeABSY, fn: c.lda, cycles: 4}
	c.instrs[0xba] = instr{name: "TSX", mode: addrModeIMP, fn: c.tsx, cycles: 2}
	c.instrs[0xbc] = instr{name: "LDY", mode: addrModeABSX, fn: c.ldy, cycles: 4}
	c.instrs[0xbd] = instr{name: "LDA", mode: addrModeABSX, fn: c.lda, cycles: 4}
	c.instrs[0xbe] = instr{name: "LDX", mode: addrModeABSY, fn: c.ldx, cycles: 4}
	c.instrs[0xc0] = instr{name: "CPY", mode: addrModeIMM, fn: c.cpy, cycles: 2}
	c.instrs[0xc1] = instr{name: "CMP", mode: addrModeINDX, fn: c.cmp, cycles: 6}
	c.instrs[0xc4] = instr{name: "CPY", mode: addrModeZP, fn: c.cpy, cycles: 3}
	c.instrs[0xc5] = instr{name: "CMP", mode: addrModeZP, fn: c.cmp, cycles: 3}
	c.instrs[0xc6] = instr{name: "DEC", mode: addrModeZP, fn: c.dec, cycles: 5}
	c.instrs[0xc8] = instr{name: "INY", mode: addrModeIMP, fn: c.iny, cycles: 2}
	c.instrs[0xc9] = instr{name: "CMP", mode: addrModeIMM, fn: c.cmp, cycles: 2}
	c.instrs[0xca] = instr{name: "DEX", mode: addrModeIMP, fn: c.dex, cycles: 2}
	c.instrs[0xcc] = instr{name: "CPY", mode: addrModeABS, fn: c.cpy, cycles: 4}
	c.instrs[0xcd] = instr{name: "CMP", mode: addrModeABS, fn: c.cmp, cycles: 4}
	c.instrs[0xce] = instr{name: "DEC", mode: addrModeABS, fn: c.dec, cycles: 6}
	c.instrs[0xd0] = instr{name: "BNE", mode: addrModeREL, fn: c.bne, cycles: 2}
	c.instrs[0xd1] = instr{name: "CMP", mode: addrModeINDY, fn: c.cmp, cycles: 5}
	c.instrs[0xd5] = instr{name: "CMP", mode: addrModeZPX, fn: c.cmp, cycles: 4}
	c.instrs[0xd6] = instr{name: "DEC", mode: addrModeZPX, fn: c.dec, cycles: 6}
	c.instrs[0xd8] = instr{name: "CLD", mode: addrModeIMP, fn: c.cld, cycles: 2}
	c.instrs[0xd9] = instr{name: "CMP", mode: addrModeABSY, fn: c.cmp, cycles: 4}
	c.instrs[0xdd] = instr{name: "CMP", mode: addrModeABSX, fn: c.cmp, cycles: 4}
	c.instrs[0xde] = instr{name: "DEC", mode: addrModeABSX, fn: c.dec, cycles: 7}
	c.instrs[0xe0] = instr{name: "CPX", mode: addrModeIMM, fn: c.cpx, cycles: 2}
	c.instrs[0xe1] = instr{name: "SBC", mode: addrModeINDX, fn: c.sbc, cycles: 6}
	c.instrs[0xe4] = instr{name: "CPX", mode: addrModeZP, fn: c.cpx, cycles: 3}
	c.instrs[0xe5] = instr{name: "SBC", mode: addrModeZP, fn: c.sbc, cycles: 3}
	c.instrs[0xe6] = instr{name: "INC", mode: addrModeZP, fn: c.inc, cycles: 5}
	c.instrs[0xe8] = instr{name: "INX", mode: addrModeIMP, fn: c.inx, cycles: 2}
	c.instrs[0xe9] = instr{name: "SBC", mode: addrModeIMM, fn: c.sbc, cycles: 2}
	c.instrs[0xea] = instr{name: "NOP", mode: addrModeIMP, fn: c.nop, cycles: 2}
	c.instrs[0xec] = instr{name: "CPX", mode: addrModeABS, fn: c.cpx, cycles: 4}
	c.instrs[0xed] = instr{name: "SBC", mode: addrModeABS, fn: c.sbc, cycles: 4}
	c.instrs[0xee] = instr{name: "INC", mode: addrModeABS, fn: c.inc, cycles: 6}
	c.instrs[0xf0] = instr{name: "BEQ", mode: addrModeREL, fn: c.beq, cycles: 2}
	c.instrs[0xf1] = instr{name: "SBC", mode: addrModeINDY, fn: c.sbc, cycles: 5}
	c.instrs[0xf5] = instr{name: "SBC", mode: addrModeZPX, fn: c.sbc, cycles: 4}
	c.instrs[0xf6] = instr{name: "INC", mode: addrModeZPX, fn: c.inc, cycles: 6}
	c.instrs[0xf8] = instr{name: "SED", mode: addrModeIMP, fn: c.sed, cycles: 2}
	c.instrs[0xf9] = instr{name: "SBC", mode: addrModeABSY, fn: c.sbc, cycles: 4}
	c.instrs[0xfd] = instr{name: "SBC", mode: addrModeABSX, fn: c.sbc, cycles: 4}
	c.instrs[0xfe] = instr{name: "INC", mode: addrModeABSX, fn: c.inc, cycles: 7}
}
