package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every operand placed by placeOperand resolves to one of these.
const (
	testZP  = uint16(0x0014)
	testAbs = uint16(0x1234)
)

type modeOp struct {
	mode   addrMode
	opcode uint8
	cycles uint8
}

// group8 lists the eight addressing modes of the ALU instructions
// with their standard cycle counts.
func group8(imm, zp, zpx, abs, absx, absy, indx, indy uint8) []modeOp {
	return []modeOp{
		{addrModeIMM, imm, 2},
		{addrModeZP, zp, 3},
		{addrModeZPX, zpx, 4},
		{addrModeABS, abs, 4},
		{addrModeABSX, absx, 4},
		{addrModeABSY, absy, 4},
		{addrModeINDX, indx, 6},
		{addrModeINDY, indy, 5},
	}
}

// placeOperand writes the instruction at testProgramAddr and lays out
// registers and memory so that its operand resolves to value. It
// returns the effective address, 0 for IMM and ACC.
func placeOperand(c *CPU, mem *memMock, op modeOp, value uint8) uint16 {
	switch op.mode {
	case addrModeIMM:
		mem.load(testProgramAddr, op.opcode, value)
		return 0
	case addrModeACC:
		mem.load(testProgramAddr, op.opcode)
		c.a = value
		return 0
	case addrModeZP:
		mem.load(testProgramAddr, op.opcode, uint8(testZP))
		mem.data[testZP] = value
		return testZP
	case addrModeZPX:
		c.x = 0x04
		mem.load(testProgramAddr, op.opcode, 0x10)
	case addrModeZPY:
		c.y = 0x04
		mem.load(testProgramAddr, op.opcode, 0x10)
	case addrModeABS:
		mem.load(testProgramAddr, op.opcode, 0x34, 0x12)
		mem.data[testAbs] = value
		return testAbs
	case addrModeABSX:
		c.x = 0x04
		mem.load(testProgramAddr, op.opcode, 0x30, 0x12)
		mem.data[testAbs] = value
		return testAbs
	case addrModeABSY:
		c.y = 0x04
		mem.load(testProgramAddr, op.opcode, 0x30, 0x12)
		mem.data[testAbs] = value
		return testAbs
	case addrModeINDX:
		c.x = 0x04
		mem.load(testProgramAddr, op.opcode, 0x20)
		mem.load(0x0024, 0x34, 0x12)
		mem.data[testAbs] = value
		return testAbs
	case addrModeINDY:
		c.y = 0x04
		mem.load(testProgramAddr, op.opcode, 0x30)
		mem.load(0x0030, 0x30, 0x12)
		mem.data[testAbs] = value
		return testAbs
	default:
		panic(fmt.Sprintf("placeOperand: unsupported mode %s", op.mode))
	}
	// ZPX and ZPY
	mem.data[testZP] = value
	return testZP
}

func instrLen(mode addrMode) uint16 {
	return uint16(1 + mode.operandBytes())
}

const flagsCZVN = flagC | flagZ | flagV | flagN

func TestLoads(t *testing.T) {
	regA := func(c *CPU) uint8 { return c.a }
	regX := func(c *CPU) uint8 { return c.x }
	regY := func(c *CPU) uint8 { return c.y }

	tests := []struct {
		name string
		ops  []modeOp
		reg  func(c *CPU) uint8
	}{
		{"LDA", group8(0xa9, 0xa5, 0xb5, 0xad, 0xbd, 0xb9, 0xa1, 0xb1), regA},
		{"LDX", []modeOp{
			{addrModeIMM, 0xa2, 2}, {addrModeZP, 0xa6, 3}, {addrModeZPY, 0xb6, 4},
			{addrModeABS, 0xae, 4}, {addrModeABSY, 0xbe, 4},
		}, regX},
		{"LDY", []modeOp{
			{addrModeIMM, 0xa0, 2}, {addrModeZP, 0xa4, 3}, {addrModeZPX, 0xb4, 4},
			{addrModeABS, 0xac, 4}, {addrModeABSX, 0xbc, 4},
		}, regY},
	}
	values := []struct {
		value uint8
		flags uint8
	}{
		{0x00, flagZ},
		{0x42, 0},
		{0x80, flagN},
	}

	for _, tt := range tests {
		for _, op := range tt.ops {
			for _, v := range values {
				t.Run(fmt.Sprintf("%s %s $%02X", tt.name, op.mode, v.value), func(t *testing.T) {
					c, mem := newTestCPU(t)
					c.p = flagU | flagC | flagV | flagD
					placeOperand(c, mem, op, v.value)

					assert.Equal(t, op.cycles, mustStep(t, c))
					assert.Equal(t, v.value, tt.reg(c))
					assert.Equal(t, flagU|flagC|flagV|flagD|v.flags, c.p)
					assert.Equal(t, testProgramAddr+instrLen(op.mode), c.pc)
					assert.Empty(t, mem.writes)
				})
			}
		}
	}
}

func TestALU(t *testing.T) {
	type aluCase struct {
		a, m    uint8
		carry   bool
		want    uint8
		wantP   uint8 // expected C, Z, V and N
		keepsVP bool  // V is not touched by the instruction
	}

	tests := []struct {
		name  string
		ops   []modeOp
		cases []aluCase
	}{
		{
			name: "ADC",
			ops:  group8(0x69, 0x65, 0x75, 0x6d, 0x7d, 0x79, 0x61, 0x71),
			cases: []aluCase{
				{a: 0x10, m: 0x20, want: 0x30},
				{a: 0x10, m: 0x20, carry: true, want: 0x31},
				{a: 0xff, m: 0x01, want: 0x00, wantP: flagC | flagZ},
				{a: 0x7f, m: 0x01, want: 0x80, wantP: flagV | flagN},
				{a: 0x80, m: 0x80, want: 0x00, wantP: flagC | flagZ | flagV},
			},
		},
		{
			name: "SBC",
			ops:  group8(0xe9, 0xe5, 0xf5, 0xed, 0xfd, 0xf9, 0xe1, 0xf1),
			cases: []aluCase{
				{a: 0x30, m: 0x10, carry: true, want: 0x20, wantP: flagC},
				{a: 0x30, m: 0x10, want: 0x1f, wantP: flagC},
				{a: 0x10, m: 0x20, carry: true, want: 0xf0, wantP: flagN},
				{a: 0x80, m: 0x01, carry: true, want: 0x7f, wantP: flagC | flagV},
				{a: 0x42, m: 0x42, carry: true, want: 0x00, wantP: flagC | flagZ},
			},
		},
		{
			name: "AND",
			ops:  group8(0x29, 0x25, 0x35, 0x2d, 0x3d, 0x39, 0x21, 0x31),
			cases: []aluCase{
				{a: 0xf0, m: 0x3c, want: 0x30, keepsVP: true},
				{a: 0x0f, m: 0xf0, want: 0x00, wantP: flagZ, keepsVP: true},
				{a: 0xff, m: 0x80, carry: true, want: 0x80, wantP: flagC | flagN, keepsVP: true},
			},
		},
		{
			name: "ORA",
			ops:  group8(0x09, 0x05, 0x15, 0x0d, 0x1d, 0x19, 0x01, 0x11),
			cases: []aluCase{
				{a: 0x01, m: 0x02, want: 0x03, keepsVP: true},
				{a: 0x00, m: 0x00, want: 0x00, wantP: flagZ, keepsVP: true},
				{a: 0xf0, m: 0x0f, carry: true, want: 0xff, wantP: flagC | flagN, keepsVP: true},
			},
		},
		{
			name: "EOR",
			ops:  group8(0x49, 0x45, 0x55, 0x4d, 0x5d, 0x59, 0x41, 0x51),
			cases: []aluCase{
				{a: 0x0f, m: 0x01, want: 0x0e, keepsVP: true},
				{a: 0x55, m: 0x55, want: 0x00, wantP: flagZ, keepsVP: true},
				{a: 0xff, m: 0x0f, want: 0xf0, wantP: flagN, keepsVP: true},
			},
		},
		{
			name: "CMP",
			ops:  group8(0xc9, 0xc5, 0xd5, 0xcd, 0xdd, 0xd9, 0xc1, 0xd1),
			cases: []aluCase{
				{a: 0x40, m: 0x40, want: 0x40, wantP: flagC | flagZ, keepsVP: true},
				{a: 0x41, m: 0x40, want: 0x41, wantP: flagC, keepsVP: true},
				{a: 0x40, m: 0x41, carry: true, want: 0x40, wantP: flagN, keepsVP: true},
				{a: 0x00, m: 0xff, want: 0x00, keepsVP: true},
			},
		},
	}

	for _, tt := range tests {
		for _, op := range tt.ops {
			for i, cs := range tt.cases {
				t.Run(fmt.Sprintf("%s %s #%d", tt.name, op.mode, i), func(t *testing.T) {
					for _, vIn := range []bool{false, true} {
						c, mem := newTestCPU(t)
						c.a = cs.a
						c.p = flagU | flagI | flagD
						c.setFlag(flagC, cs.carry)
						c.setFlag(flagV, vIn)
						placeOperand(c, mem, op, cs.m)

						assert.Equal(t, op.cycles, mustStep(t, c))
						assert.Equal(t, cs.want, c.a)

						wantP := cs.wantP
						if cs.keepsVP && vIn {
							wantP |= flagV
						}
						assert.Equal(t, wantP, c.p&flagsCZVN, "flags C Z V N")
						assert.Equal(t, flagU|flagI|flagD, c.p&^flagsCZVN, "untouched flags")
						assert.Equal(t, testProgramAddr+instrLen(op.mode), c.pc)
						assert.Empty(t, mem.writes)
					}
				})
			}
		}
	}
}

func TestCompareIndex(t *testing.T) {
	tests := []struct {
		name string
		ops  []modeOp
		set  func(c *CPU, v uint8)
	}{
		{"CPX", []modeOp{{addrModeIMM, 0xe0, 2}, {addrModeZP, 0xe4, 3}, {addrModeABS, 0xec, 4}}, func(c *CPU, v uint8) { c.x = v }},
		{"CPY", []modeOp{{addrModeIMM, 0xc0, 2}, {addrModeZP, 0xc4, 3}, {addrModeABS, 0xcc, 4}}, func(c *CPU, v uint8) { c.y = v }},
	}
	cases := []struct {
		reg, m uint8
		wantP  uint8
	}{
		{0x10, 0x10, flagC | flagZ},
		{0x11, 0x10, flagC},
		{0x10, 0x11, flagN},
		{0x80, 0x00, flagC | flagN},
	}

	for _, tt := range tests {
		for _, op := range tt.ops {
			for _, cs := range cases {
				t.Run(fmt.Sprintf("%s %s %02X-%02X", tt.name, op.mode, cs.reg, cs.m), func(t *testing.T) {
					c, mem := newTestCPU(t)
					c.a = 0x99
					tt.set(c, cs.reg)
					placeOperand(c, mem, op, cs.m)

					assert.Equal(t, op.cycles, mustStep(t, c))
					assert.Equal(t, cs.wantP, c.p&(flagC|flagZ|flagN))
					assert.Equal(t, uint8(0x99), c.a, "compare never writes A")
				})
			}
		}
	}
}

func TestStores(t *testing.T) {
	tests := []struct {
		name string
		ops  []modeOp
		set  func(c *CPU, v uint8)
	}{
		{"STA", []modeOp{
			{addrModeZP, 0x85, 3}, {addrModeZPX, 0x95, 4}, {addrModeABS, 0x8d, 4},
			{addrModeABSX, 0x9d, 5}, {addrModeABSY, 0x99, 5},
			{addrModeINDX, 0x81, 6}, {addrModeINDY, 0x91, 6},
		}, func(c *CPU, v uint8) { c.a = v }},
		{"STX", []modeOp{
			{addrModeZP, 0x86, 3}, {addrModeZPY, 0x96, 4}, {addrModeABS, 0x8e, 4},
		}, func(c *CPU, v uint8) { c.x = v }},
		{"STY", []modeOp{
			{addrModeZP, 0x84, 3}, {addrModeZPX, 0x94, 4}, {addrModeABS, 0x8c, 4},
		}, func(c *CPU, v uint8) { c.y = v }},
	}

	for _, tt := range tests {
		for _, op := range tt.ops {
			t.Run(fmt.Sprintf("%s %s", tt.name, op.mode), func(t *testing.T) {
				c, mem := newTestCPU(t)
				c.p = flagU | flagZ
				ea := placeOperand(c, mem, op, 0x00)
				tt.set(c, 0x80)

				assert.Equal(t, op.cycles, mustStep(t, c))
				assert.Equal(t, uint8(0x80), mem.data[ea])
				assert.Equal(t, 1, mem.writes[ea])
				assert.Zero(t, mem.reads[ea], "stores do not read their target")
				assert.Equal(t, flagU|flagZ, c.p, "stores leave flags alone")
				assert.Equal(t, testProgramAddr+instrLen(op.mode), c.pc)
			})
		}
	}
}

func TestReadModifyWrite(t *testing.T) {
	type rmwCase struct {
		m     uint8
		carry bool
		want  uint8
		wantP uint8 // C, Z and N
	}
	shiftModes := func(acc, zp, zpx, abs, absx uint8) []modeOp {
		return []modeOp{
			{addrModeACC, acc, 2}, {addrModeZP, zp, 5}, {addrModeZPX, zpx, 6},
			{addrModeABS, abs, 6}, {addrModeABSX, absx, 7},
		}
	}
	incModes := func(zp, zpx, abs, absx uint8) []modeOp {
		return []modeOp{
			{addrModeZP, zp, 5}, {addrModeZPX, zpx, 6},
			{addrModeABS, abs, 6}, {addrModeABSX, absx, 7},
		}
	}

	tests := []struct {
		name  string
		ops   []modeOp
		cases []rmwCase
	}{
		{"ASL", shiftModes(0x0a, 0x06, 0x16, 0x0e, 0x1e), []rmwCase{
			{m: 0x81, want: 0x02, wantP: flagC},
			{m: 0x40, carry: true, want: 0x80, wantP: flagN},
			{m: 0x80, want: 0x00, wantP: flagC | flagZ},
		}},
		{"LSR", shiftModes(0x4a, 0x46, 0x56, 0x4e, 0x5e), []rmwCase{
			{m: 0x01, want: 0x00, wantP: flagC | flagZ},
			{m: 0x82, carry: true, want: 0x41},
			{m: 0xff, want: 0x7f, wantP: flagC},
		}},
		{"ROL", shiftModes(0x2a, 0x26, 0x36, 0x2e, 0x3e), []rmwCase{
			{m: 0x80, carry: true, want: 0x01, wantP: flagC},
			{m: 0x40, want: 0x80, wantP: flagN},
			{m: 0x80, want: 0x00, wantP: flagC | flagZ},
		}},
		{"ROR", shiftModes(0x6a, 0x66, 0x76, 0x6e, 0x7e), []rmwCase{
			{m: 0x01, carry: true, want: 0x80, wantP: flagC | flagN},
			{m: 0x02, want: 0x01},
			{m: 0x01, want: 0x00, wantP: flagC | flagZ},
		}},
		{"INC", incModes(0xe6, 0xf6, 0xee, 0xfe), []rmwCase{
			{m: 0xff, want: 0x00, wantP: flagZ},
			{m: 0x7f, carry: true, want: 0x80, wantP: flagN | flagC},
			{m: 0x10, want: 0x11},
		}},
		{"DEC", incModes(0xc6, 0xd6, 0xce, 0xde), []rmwCase{
			{m: 0x01, want: 0x00, wantP: flagZ},
			{m: 0x00, carry: true, want: 0xff, wantP: flagN | flagC},
			{m: 0x11, want: 0x10},
		}},
	}

	for _, tt := range tests {
		for _, op := range tt.ops {
			for i, cs := range tt.cases {
				t.Run(fmt.Sprintf("%s %s #%d", tt.name, op.mode, i), func(t *testing.T) {
					c, mem := newTestCPU(t)
					c.p = flagU | flagV
					c.setFlag(flagC, cs.carry)
					ea := placeOperand(c, mem, op, cs.m)

					assert.Equal(t, op.cycles, mustStep(t, c))
					if op.mode == addrModeACC {
						assert.Equal(t, cs.want, c.a)
						assert.Empty(t, mem.writes)
					} else {
						assert.Equal(t, cs.want, mem.data[ea])
						assert.Equal(t, 1, mem.writes[ea])
					}
					assert.Equal(t, cs.wantP, c.p&(flagC|flagZ|flagN))
					assert.Equal(t, flagU|flagV, c.p&^(flagC|flagZ|flagN))
					assert.Equal(t, testProgramAddr+instrLen(op.mode), c.pc)
				})
			}
		}
	}
}

func TestBIT(t *testing.T) {
	ops := []modeOp{{addrModeZP, 0x24, 3}, {addrModeABS, 0x2c, 4}}
	cases := []struct {
		a, m  uint8
		wantP uint8
	}{
		{0x0f, 0xc0, flagZ | flagV | flagN},
		{0x01, 0x01, 0},
		{0xff, 0x40, flagV},
		{0x80, 0x80, flagN},
	}
	for _, op := range ops {
		for _, cs := range cases {
			t.Run(fmt.Sprintf("%s %02X&%02X", op.mode, cs.a, cs.m), func(t *testing.T) {
				c, mem := newTestCPU(t)
				c.a = cs.a
				c.p = flagU | flagC | flagZ | flagV | flagN
				placeOperand(c, mem, op, cs.m)

				assert.Equal(t, op.cycles, mustStep(t, c))
				assert.Equal(t, flagU|flagC|cs.wantP, c.p)
				assert.Equal(t, cs.a, c.a)
			})
		}
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		flag   uint8
		onSet  bool
	}{
		{"BPL", 0x10, flagN, false},
		{"BMI", 0x30, flagN, true},
		{"BVC", 0x50, flagV, false},
		{"BVS", 0x70, flagV, true},
		{"BCC", 0x90, flagC, false},
		{"BCS", 0xb0, flagC, true},
		{"BNE", 0xd0, flagZ, false},
		{"BEQ", 0xf0, flagZ, true},
	}
	offsets := []struct {
		offset uint8
		target uint16
	}{
		{0x10, 0x0212},
		{0x7f, 0x0281},
		{0xfe, 0x0200},
		{0x80, 0x0182},
	}

	for _, tt := range tests {
		t.Run(tt.name+" not taken", func(t *testing.T) {
			c, _ := newTestCPU(t, tt.opcode, 0x10)
			c.setFlag(tt.flag, !tt.onSet)

			assert.Equal(t, uint8(2), mustStep(t, c))
			assert.Equal(t, uint16(0x0202), c.pc)
		})

		for _, off := range offsets {
			t.Run(fmt.Sprintf("%s taken %02X", tt.name, off.offset), func(t *testing.T) {
				c, _ := newTestCPU(t, tt.opcode, off.offset)
				c.setFlag(tt.flag, tt.onSet)
				p := c.p

				assert.Equal(t, uint8(3), mustStep(t, c))
				assert.Equal(t, off.target, c.pc)
				assert.Equal(t, p, c.p)
			})
		}
	}
}

func TestFlagInstructions(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		flag   uint8
		set    bool
	}{
		{"CLC", 0x18, flagC, false},
		{"SEC", 0x38, flagC, true},
		{"CLI", 0x58, flagI, false},
		{"SEI", 0x78, flagI, true},
		{"CLV", 0xb8, flagV, false},
		{"CLD", 0xd8, flagD, false},
		{"SED", 0xf8, flagD, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, start := range []uint8{flagU, 0xff} {
				c, _ := newTestCPU(t, tt.opcode)
				c.p = start

				want := start | tt.flag
				if !tt.set {
					want = start &^ tt.flag
				}
				assert.Equal(t, uint8(2), mustStep(t, c))
				assert.Equal(t, want, c.p)
				assert.Equal(t, uint16(0x0201), c.pc)
			}
		})
	}
}

func TestRegisterInstructions(t *testing.T) {
	type regs struct {
		a, x, y, sp uint8
	}
	tests := []struct {
		name   string
		opcode uint8
		in     regs
		want   regs
		wantP  uint8 // Z and N, ignored for TXS
		flags  bool
	}{
		{"TAX", 0xaa, regs{a: 0x80, x: 0x01}, regs{a: 0x80, x: 0x80}, flagN, true},
		{"TAY", 0xa8, regs{a: 0x00, y: 0x01}, regs{a: 0x00, y: 0x00}, flagZ, true},
		{"TXA", 0x8a, regs{a: 0x01, x: 0x42}, regs{a: 0x42, x: 0x42}, 0, true},
		{"TYA", 0x98, regs{a: 0x01, y: 0x00}, regs{a: 0x00, y: 0x00}, flagZ, true},
		{"TSX", 0xba, regs{sp: 0xf0}, regs{sp: 0xf0, x: 0xf0}, flagN, true},
		{"TXS", 0x9a, regs{x: 0x00, sp: 0xfd}, regs{x: 0x00, sp: 0x00}, 0, false},
		{"INX", 0xe8, regs{x: 0xff}, regs{x: 0x00}, flagZ, true},
		{"INY", 0xc8, regs{y: 0x7f}, regs{y: 0x80}, flagN, true},
		{"DEX", 0xca, regs{x: 0x00}, regs{x: 0xff}, flagN, true},
		{"DEY", 0x88, regs{y: 0x01}, regs{y: 0x00}, flagZ, true},
		{"NOP", 0xea, regs{a: 1, x: 2, y: 3, sp: 4}, regs{a: 1, x: 2, y: 3, sp: 4}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mem := newTestCPU(t, tt.opcode)
			c.a, c.x, c.y, c.sp = tt.in.a, tt.in.x, tt.in.y, tt.in.sp
			c.p = flagU | flagC | flagZ | flagN

			assert.Equal(t, uint8(2), mustStep(t, c))
			assert.Equal(t, tt.want, regs{c.a, c.x, c.y, c.sp})
			if tt.flags {
				assert.Equal(t, flagU|flagC|tt.wantP, c.p)
			} else {
				assert.Equal(t, flagU|flagC|flagZ|flagN, c.p)
			}
			assert.Equal(t, uint16(0x0201), c.pc)
			assert.Empty(t, mem.reads)
			assert.Empty(t, mem.writes)
		})
	}
}

func TestAddressingWraps(t *testing.T) {
	t.Run("ZPX wraps in page zero", func(t *testing.T) {
		c, mem := newTestCPU(t, 0xb5, 0xf0) // LDA $F0,X
		c.x = 0x20
		mem.data[0x0010] = 0x55
		mem.data[0x0110] = 0xaa
		mustStep(t, c)
		assert.Equal(t, uint8(0x55), c.a)
	})

	t.Run("ZPY wraps in page zero", func(t *testing.T) {
		c, mem := newTestCPU(t, 0xb6, 0xff) // LDX $FF,Y
		c.y = 0x02
		mem.data[0x0001] = 0x66
		mustStep(t, c)
		assert.Equal(t, uint8(0x66), c.x)
	})

	t.Run("INDX pointer wraps in page zero", func(t *testing.T) {
		c, mem := newTestCPU(t, 0xa1, 0xfe) // LDA ($FE,X)
		c.x = 0x01
		mem.data[0x00ff] = 0x34
		mem.data[0x0000] = 0x12
		mem.data[0x1234] = 0x77
		mustStep(t, c)
		assert.Equal(t, uint8(0x77), c.a)
	})

	t.Run("INDY adds Y across the page", func(t *testing.T) {
		c, mem := newTestCPU(t, 0xb1, 0x40) // LDA ($40),Y
		c.y = 0x10
		mem.load(0x0040, 0xf8, 0x12)
		mem.data[0x1308] = 0x99
		assert.Equal(t, uint8(5), mustStep(t, c), "no page crossing penalty")
		assert.Equal(t, uint8(0x99), c.a)
	})

	t.Run("ABSX crosses the page without penalty", func(t *testing.T) {
		c, mem := newTestCPU(t, 0xbd, 0xff, 0x12) // LDA $12FF,X
		c.x = 0x01
		mem.data[0x1300] = 0x3c
		assert.Equal(t, uint8(4), mustStep(t, c))
		assert.Equal(t, uint8(0x3c), c.a)
	})

	t.Run("ABSY wraps the address space", func(t *testing.T) {
		c, mem := newTestCPU(t, 0xb9, 0xff, 0xff) // LDA $FFFF,Y
		c.y = 0x02
		mem.data[0x0001] = 0x5e
		mustStep(t, c)
		assert.Equal(t, uint8(0x5e), c.a)
	})
}

func TestCPU_SmallProgram(t *testing.T) {
	// sum 1..10 into A using X as the counter
	//
	//	LDA #$00
	//	LDX #$0A
	// loop:
	//	STX $10
	//	CLC
	//	ADC $10
	//	DEX
	//	BNE loop
	//	STA $11
	c, mem := newTestCPU(t,
		0xa9, 0x00,
		0xa2, 0x0a,
		0x86, 0x10,
		0x18,
		0x65, 0x10,
		0xca,
		0xd0, 0xf8,
		0x85, 0x11,
	)
	for c.pc != 0x020e {
		mustStep(t, c)
		require.Less(t, c.Cycles(), uint64(1000))
	}
	assert.Equal(t, uint8(55), mem.data[0x0011])
	// 2+2 + 10*(3+2+3+2) + 9*3 + 2 + 3
	assert.Equal(t, uint64(2+2+10*10+9*3+2+3), c.Cycles())
}
