package machine

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrShortROM = errors.New("machine: short ROM image")

// LoadROM reads a ROM image of exactly size bytes from path.
// Bytes past size are ignored.
func LoadROM(path string, size int) ([]uint8, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the ROM file: %w", err)
	}
	defer file.Close()

	data, err := ReadROM(file, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// ReadROM reads the first size bytes of r.
func ReadROM(r io.Reader, size int) ([]uint8, error) {
	data := make([]uint8, size)
	n, err := io.ReadFull(r, data)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: expected %d bytes, read %d bytes", ErrShortROM, size, n)
	case err != nil:
		return nil, fmt.Errorf("couldn't read the ROM: %w", err)
	}
	return data, nil
}
