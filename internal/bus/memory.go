package bus

import (
	"fmt"
	"log"
)

// RAM is plain read/write storage.
type RAM struct {
	data []uint8
}

func NewRAM(size int) *RAM {
	return &RAM{data: make([]uint8, size)}
}

func (r *RAM) Read8(offset uint16) uint8 {
	return r.data[offset]
}

func (r *RAM) Write8(offset uint16, data uint8) {
	r.data[offset] = data
}

func (r *RAM) Size() int {
	return len(r.data)
}

// Bytes exposes the backing store. Callers must not hold on to it
// across a Step.
func (r *RAM) Bytes() []uint8 {
	return r.data
}

// ROM is read-only storage. The guest program cannot change it.
type ROM struct {
	name   string
	data   []uint8
	logger *log.Logger
}

func NewROM(name string, size int, logger *log.Logger) *ROM {
	if logger == nil {
		logger = log.Default()
	}
	return &ROM{name: name, data: make([]uint8, size), logger: logger}
}

// Load copies an image into the ROM. The image must fill it exactly.
func (r *ROM) Load(image []uint8) error {
	if len(image) != len(r.data) {
		return fmt.Errorf("%s: image is %d bytes, want %d", r.name, len(image), len(r.data))
	}
	copy(r.data, image)
	return nil
}

func (r *ROM) Read8(offset uint16) uint8 {
	return r.data[offset]
}

func (r *ROM) Write8(offset uint16, data uint8) {
	r.logger.Printf("bus: write to %s offset $%04X ($%02X) ignored\n", r.name, offset, data)
}

func (r *ROM) Size() int {
	return len(r.data)
}
