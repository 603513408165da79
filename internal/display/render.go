// Package display turns the text screen of the machine into pixels.
package display

import (
	"image"
	"image/color"
)

const (
	Cols       = 40
	Rows       = 25
	GlyphSize  = 8
	BorderSize = 32

	// glyphs in one character set
	setGlyphs = 256

	Width  = Cols*GlyphSize + 2*BorderSize
	Height = Rows*GlyphSize + 2*BorderSize
)

// Palette is the fixed 16 color palette of the video chip.
var Palette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0xff, 0xff, 0xff, 0xff}, // white
	{0x88, 0x00, 0x00, 0xff}, // red
	{0xaa, 0xff, 0xee, 0xff}, // cyan
	{0xcc, 0x44, 0xcc, 0xff}, // purple
	{0x00, 0xcc, 0x55, 0xff}, // green
	{0x00, 0x00, 0xaa, 0xff}, // blue
	{0xee, 0xee, 0x77, 0xff}, // yellow
	{0xdd, 0x88, 0x55, 0xff}, // orange
	{0x66, 0x44, 0x00, 0xff}, // brown
	{0xff, 0x77, 0x77, 0xff}, // light red
	{0x33, 0x33, 0x33, 0xff}, // dark grey
	{0x77, 0x77, 0x77, 0xff}, // grey
	{0xaa, 0xff, 0x66, 0xff}, // light green
	{0x00, 0x88, 0xff, 0xff}, // light blue
	{0xbb, 0xbb, 0xbb, 0xff}, // light grey
}

// Frame is everything the video chip looks at to draw one picture.
type Frame struct {
	Screen []uint8 // Cols*Rows character codes, row major
	Color  []uint8 // one attribute per character, low nibble is the foreground
	Chars  []uint8 // glyph ROM, 8 bytes per glyph, bit 7 is the leftmost pixel

	Border     uint8
	Background uint8
	Charset    uint8 // bit 0 selects the second half of the glyph ROM
}

func NewImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, Width, Height))
}

// Render draws f into a new image.
func Render(f Frame) *image.RGBA {
	img := NewImage()
	Draw(img, f)
	return img
}

// Draw draws f into dst, which must be at least Width x Height.
func Draw(dst *image.RGBA, f Frame) {
	border := Palette[f.Border&0x0f]
	bg := Palette[f.Background&0x0f]

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			dst.SetRGBA(x, y, border)
		}
	}

	set := int(f.Charset&0x1) * setGlyphs * GlyphSize
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			cell := row*Cols + col
			code := cellByte(f.Screen, cell)
			fg := Palette[cellByte(f.Color, cell)&0x0f]

			x0 := BorderSize + col*GlyphSize
			y0 := BorderSize + row*GlyphSize
			for gy := 0; gy < GlyphSize; gy++ {
				bits := cellByte(f.Chars, set+int(code)*GlyphSize+gy)
				for gx := 0; gx < GlyphSize; gx++ {
					c := bg
					if bits&(0x80>>gx) != 0 {
						c = fg
					}
					dst.SetRGBA(x0+gx, y0+gy, c)
				}
			}
		}
	}
}

// cellByte returns 0 for indexes past the end of data.
func cellByte(data []uint8, i int) uint8 {
	if i < len(data) {
		return data[i]
	}
	return 0
}
