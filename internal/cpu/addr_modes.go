package cpu

type addrMode uint8

const (
	addrModeIMM  addrMode = iota + 1 // Immediate
	addrModeZP                       // Zero Page
	addrModeZPX                      // Zero Page X
	addrModeZPY                      // Zero Page Y
	addrModeABS                      // Absolute
	addrModeABSX                     // Absolute X
	addrModeABSY                     // Absolute Y
	addrModeIND                      // Indirect
	addrModeINDX                     // Indirect X
	addrModeINDY                     // Indirect Y
	addrModeREL                      // Relative
	addrModeACC                      // Accumulator
	addrModeIMP                      // Implied
)

func (mode addrMode) String() string {
	switch mode {
	case addrModeIMM:
		return "IMM"
	case addrModeZP:
		return "ZP"
	case addrModeZPX:
		return "ZPX"
	case addrModeZPY:
		return "ZPY"
	case addrModeABS:
		return "ABS"
	case addrModeABSX:
		return "ABSX"
	case addrModeABSY:
		return "ABSY"
	case addrModeIND:
		return "IND"
	case addrModeINDX:
		return "INDX"
	case addrModeINDY:
		return "INDY"
	case addrModeREL:
		return "REL"
	case addrModeACC:
		return "ACC"
	case addrModeIMP:
		return "IMP"
	}
	return "???"
}

// operandBytes is the number of bytes following the opcode.
func (mode addrMode) operandBytes() int {
	switch mode {
	case addrModeIMM, addrModeZP, addrModeZPX, addrModeZPY,
		addrModeINDX, addrModeINDY, addrModeREL:
		return 1
	case addrModeABS, addrModeABSX, addrModeABSY, addrModeIND:
		return 2
	}
	return 0
}

// resolve consumes the operand bytes of the current instruction and
// computes its effective address. Only immediate and accumulator
// operands are known at this point; everything else is read on demand
// by operand so that stores never touch their target before writing.
func (c *CPU) resolve(mode addrMode) {
	c.addrMode = mode
	c.operandAddr = 0
	c.operandValue = 0
	c.operandReady = false

	switch mode {
	case addrModeIMM:
		c.operandValue = c.fetch8()
		c.operandReady = true

	case addrModeZP:
		c.operandAddr = uint16(c.fetch8())

	case addrModeZPX:
		c.operandAddr = uint16(c.fetch8() + c.x)

	case addrModeZPY:
		c.operandAddr = uint16(c.fetch8() + c.y)

	case addrModeABS:
		c.operandAddr = c.fetch16()

	case addrModeABSX:
		c.operandAddr = c.fetch16() + uint16(c.x)

	case addrModeABSY:
		c.operandAddr = c.fetch16() + uint16(c.y)

	case addrModeIND:
		ptr := c.fetch16()
		// simulate 6502 bug: the high byte never comes from the next page
		hi := (ptr & 0xff00) | uint16(uint8(ptr)+1)
		c.operandAddr = uint16(c.read8(ptr)) | uint16(c.read8(hi))<<8

	case addrModeINDX:
		zp := c.fetch8() + c.x
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		c.operandAddr = lo | hi<<8

	case addrModeINDY:
		zp := c.fetch8()
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		c.operandAddr = (lo | hi<<8) + uint16(c.y)

	case addrModeREL:
		c.operandAddr = uint16(c.fetch8())
		if c.operandAddr&0x80 > 0 {
			c.operandAddr |= 0xff00 // add leading 1 s to save the sign
		}

	case addrModeACC:
		c.operandValue = c.a
		c.operandReady = true

	case addrModeIMP:
	}
}

// operand returns the value the current instruction works on.
func (c *CPU) operand() uint8 {
	if !c.operandReady {
		c.operandValue = c.read8(c.operandAddr)
		c.operandReady = true
	}
	return c.operandValue
}

// writeResult stores the result of a read-modify-write instruction.
func (c *CPU) writeResult(v uint8) {
	if c.addrMode == addrModeACC {
		c.a = v
		return
	}
	c.write8(c.operandAddr, v)
}
