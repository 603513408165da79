package machine

import "fmt"

// Video controller registers.
const (
	VideoRegBorder     = 0x0 // border color, low nibble
	VideoRegBackground = 0x1 // background color, low nibble
	VideoRegCharset    = 0x2 // bit 0 selects the glyph set
)

// VideoController is the register file of the character video chip.
// Registers only store what was written; the picture is produced from
// them by the display package.
type VideoController struct {
	regs [VideoWindowSize]uint8
}

func NewVideoController() *VideoController {
	return &VideoController{}
}

func (v *VideoController) Read8(offset uint16) uint8 {
	if int(offset) >= len(v.regs) {
		panic(fmt.Sprintf("video: read at offset $%04X outside %d byte window", offset, len(v.regs)))
	}
	return v.regs[offset]
}

func (v *VideoController) Write8(offset uint16, data uint8) {
	if int(offset) >= len(v.regs) {
		panic(fmt.Sprintf("video: write at offset $%04X outside %d byte window", offset, len(v.regs)))
	}
	v.regs[offset] = data
}

func (v *VideoController) Size() int {
	return len(v.regs)
}

// Register returns the value of register reg.
func (v *VideoController) Register(reg int) uint8 {
	return v.regs[reg]
}
