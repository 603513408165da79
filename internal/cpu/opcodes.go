package cpu

func isSameSign(a, b uint8) bool {
	return (a^b)&0x80 == 0
}

// addWithCarry is the binary adder shared by ADC and SBC.
// Decimal mode is not emulated.
func (c *CPU) addWithCarry(m uint8) {
	r16 := uint16(c.a) + uint16(m)
	if c.getFlag(flagC) {
		r16++
	}
	r8 := uint8(r16)
	c.setFlag(flagC, r16 > 0xff)
	c.setFlag(flagV, isSameSign(c.a, m) && !isSameSign(c.a, r8))
	c.setFlagsZN(r8)
	c.a = r8
}

func (c *CPU) compare(reg uint8) {
	m := c.operand()
	c.setFlag(flagC, reg >= m)
	c.setFlagsZN(reg - m)
}

// branch applies the relative offset when cond holds.
// A taken branch costs one extra cycle.
func (c *CPU) branch(cond bool) {
	if !cond {
		return
	}
	c.extraCycles++
	c.pc += c.operandAddr
}

func (c *CPU) adc() {
	c.addWithCarry(c.operand())
}

func (c *CPU) and() {
	c.a &= c.operand()
	c.setFlagsZN(c.a)
}

func (c *CPU) asl() {
	m := c.operand()
	c.setFlag(flagC, m&0x80 > 0)
	r := m << 1
	c.setFlagsZN(r)
	c.writeResult(r)
}

func (c *CPU) bcc() {
	c.branch(!c.getFlag(flagC))
}

func (c *CPU) bcs() {
	c.branch(c.getFlag(flagC))
}

func (c *CPU) beq() {
	c.branch(c.getFlag(flagZ))
}

func (c *CPU) bit() {
	m := c.operand()
	c.setFlag(flagZ, c.a&m == 0)
	c.setFlag(flagN, m&flagN > 0)
	c.setFlag(flagV, m&flagV > 0)
}

func (c *CPU) bmi() {
	c.branch(c.getFlag(flagN))
}

func (c *CPU) bne() {
	c.branch(!c.getFlag(flagZ))
}

func (c *CPU) bpl() {
	c.branch(!c.getFlag(flagN))
}

// BRK skips its padding byte, so RTI resumes two bytes after the opcode.
func (c *CPU) brk() {
	c.fetch8()
	c.stackPush16(c.pc)
	c.stackPush8(c.p | flagB | flagU)
	c.setFlag(flagI, true)
	c.pc = c.read16(vectorBRK)
}

func (c *CPU) bvc() {
	c.branch(!c.getFlag(flagV))
}

func (c *CPU) bvs() {
	c.branch(c.getFlag(flagV))
}

func (c *CPU) clc() {
	c.setFlag(flagC, false)
}

func (c *CPU) cld() {
	c.setFlag(flagD, false)
}

func (c *CPU) cli() {
	c.setFlag(flagI, false)
}

func (c *CPU) clv() {
	c.setFlag(flagV, false)
}

func (c *CPU) cmp() {
	c.compare(c.a)
}

func (c *CPU) cpx() {
	c.compare(c.x)
}

func (c *CPU) cpy() {
	c.compare(c.y)
}

func (c *CPU) dec() {
	r := c.operand() - 1
	c.setFlagsZN(r)
	c.write8(c.operandAddr, r)
}

func (c *CPU) dex() {
	c.x--
	c.setFlagsZN(c.x)
}

func (c *CPU) dey() {
	c.y--
	c.setFlagsZN(c.y)
}

func (c *CPU) eor() {
	c.a ^= c.operand()
	c.setFlagsZN(c.a)
}

func (c *CPU) inc() {
	r := c.operand() + 1
	c.setFlagsZN(r)
	c.write8(c.operandAddr, r)
}

func (c *CPU) inx() {
	c.x++
	c.setFlagsZN(c.x)
}

func (c *CPU) iny() {
	c.y++
	c.setFlagsZN(c.y)
}

func (c *CPU) jmp() {
	c.pc = c.operandAddr
}

func (c *CPU) jsr() {
	// pc already points past the operand,
	// the pushed address is the last byte of JSR
	c.stackPush16(c.pc - 1)
	c.pc = c.operandAddr
}

func (c *CPU) lda() {
	c.a = c.operand()
	c.setFlagsZN(c.a)
}

func (c *CPU) ldx() {
	c.x = c.operand()
	c.setFlagsZN(c.x)
}

func (c *CPU) ldy() {
	c.y = c.operand()
	c.setFlagsZN(c.y)
}

func (c *CPU) lsr() {
	m := c.operand()
	c.setFlag(flagC, m&0x1 > 0)
	r := m >> 1
	c.setFlagsZN(r)
	c.writeResult(r)
}

func (c *CPU) nop() {}

func (c *CPU) ora() {
	c.a |= c.operand()
	c.setFlagsZN(c.a)
}

func (c *CPU) pha() {
	c.stackPush8(c.a)
}

func (c *CPU) php() {
	c.stackPush8(c.p | flagB | flagU)
}

func (c *CPU) pla() {
	c.a = c.stackPop8()
	c.setFlagsZN(c.a)
}

func (c *CPU) plp() {
	c.p = (c.stackPop8() | flagU) & ^flagB
}

func (c *CPU) rol() {
	m := c.operand()
	r := m << 1
	if c.getFlag(flagC) {
		r |= 0x1
	}
	c.setFlag(flagC, m&0x80 > 0)
	c.setFlagsZN(r)
	c.writeResult(r)
}

func (c *CPU) ror() {
	m := c.operand()
	r := m >> 1
	if c.getFlag(flagC) {
		r |= 0x80
	}
	c.setFlag(flagC, m&0x1 > 0)
	c.setFlagsZN(r)
	c.writeResult(r)
}

func (c *CPU) rti() {
	c.p = (c.stackPop8() | flagU) & ^flagB
	c.pc = c.stackPop16()
}

func (c *CPU) rts() {
	c.pc = c.stackPop16()
	c.pc++
}

func (c *CPU) sbc() {
	c.addWithCarry(^c.operand())
}

func (c *CPU) sec() {
	c.setFlag(flagC, true)
}

func (c *CPU) sed() {
	c.setFlag(flagD, true)
}

func (c *CPU) sei() {
	c.setFlag(flagI, true)
}

func (c *CPU) sta() {
	c.write8(c.operandAddr, c.a)
}

func (c *CPU) stx() {
	c.write8(c.operandAddr, c.x)
}

func (c *CPU) sty() {
	c.write8(c.operandAddr, c.y)
}

func (c *CPU) tax() {
	c.x = c.a
	c.setFlagsZN(c.x)
}

func (c *CPU) tay() {
	c.y = c.a
	c.setFlagsZN(c.y)
}

func (c *CPU) tsx() {
	c.x = c.sp
	c.setFlagsZN(c.x)
}

func (c *CPU) txa() {
	c.a = c.x
	c.setFlagsZN(c.a)
}

func (c *CPU) txs() {
	c.sp = c.x
}

func (c *CPU) tya() {
	c.a = c.y
	c.setFlagsZN(c.a)
}
