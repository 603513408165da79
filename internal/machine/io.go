package machine

import (
	"fmt"
	"log"
)

// IOController is a parallel I/O chip with nothing attached to its
// ports. Writes are logged, reads return 0.
type IOController struct {
	name   string
	logger *log.Logger
	writes uint64
}

func NewIOController(name string, logger *log.Logger) *IOController {
	if logger == nil {
		logger = log.Default()
	}
	return &IOController{name: name, logger: logger}
}

func (c *IOController) Read8(offset uint16) uint8 {
	c.check("read", offset)
	return 0
}

func (c *IOController) Write8(offset uint16, data uint8) {
	c.check("write", offset)
	c.writes++
	c.logger.Printf("%s: write register $%02X = $%02X", c.name, offset, data)
}

func (c *IOController) Size() int {
	return IOWindowSize
}

// Writes is the number of writes the controller has seen.
func (c *IOController) Writes() uint64 {
	return c.writes
}

func (c *IOController) check(op string, offset uint16) {
	if int(offset) >= IOWindowSize {
		panic(fmt.Sprintf("%s: %s at offset $%04X outside %d byte window", c.name, op, offset, IOWindowSize))
	}
}
