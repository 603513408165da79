package machine

import "fmt"

// ColorRAM holds one color attribute per screen cell.
type ColorRAM struct {
	data [ColorWindowSize]uint8
}

func NewColorRAM() *ColorRAM {
	return &ColorRAM{}
}

func (c *ColorRAM) Read8(offset uint16) uint8 {
	if int(offset) >= len(c.data) {
		panic(fmt.Sprintf("color: read at offset $%04X outside %d byte window", offset, len(c.data)))
	}
	return c.data[offset]
}

func (c *ColorRAM) Write8(offset uint16, data uint8) {
	if int(offset) >= len(c.data) {
		panic(fmt.Sprintf("color: write at offset $%04X outside %d byte window", offset, len(c.data)))
	}
	c.data[offset] = data
}

func (c *ColorRAM) Size() int {
	return len(c.data)
}
