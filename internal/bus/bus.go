package bus

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Device is anything that can sit behind a bus window.
// Offsets passed to Read8 and Write8 are relative to the window base
// and are always smaller than Size.
type Device interface {
	Read8(offset uint16) uint8
	Write8(offset uint16, data uint8)
	Size() int
}

type region struct {
	name  string
	start uint32
	end   uint32 // exclusive
	dev   Device // nil for a hole
}

func (r region) contains(addr uint16) bool {
	a := uint32(addr)
	return a >= r.start && a < r.end
}

// TraceMask selects which trace channels are enabled.
type TraceMask uint8

const (
	TraceInstr TraceMask = 1 << iota // executed instructions
	TraceRead                        // operand reads
	TraceWrite                       // writes
	TraceFetch                       // instruction byte fetches

	TraceOff TraceMask = 0
	TraceAll           = TraceInstr | TraceRead | TraceWrite | TraceFetch
)

// ParseTraceMask accepts a comma separated list of channel names
// (instr, read, write, fetch, all, off) or a numeric mask.
func ParseTraceMask(s string) (TraceMask, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TraceOff, nil
	}
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		if TraceMask(n)&^TraceAll != 0 {
			return TraceOff, fmt.Errorf("trace mask %#x has unknown bits", n)
		}
		return TraceMask(n), nil
	}

	var m TraceMask
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "instr":
			m |= TraceInstr
		case "read":
			m |= TraceRead
		case "write":
			m |= TraceWrite
		case "fetch":
			m |= TraceFetch
		case "all":
			m |= TraceAll
		case "off", "":
		default:
			return TraceOff, fmt.Errorf("unknown trace channel %q", name)
		}
	}
	return m, nil
}

func (m TraceMask) String() string {
	if m == TraceOff {
		return "off"
	}
	var parts []string
	for _, ch := range []struct {
		bit  TraceMask
		name string
	}{{TraceInstr, "instr"}, {TraceRead, "read"}, {TraceWrite, "write"}, {TraceFetch, "fetch"}} {
		if m&ch.bit != 0 {
			parts = append(parts, ch.name)
		}
	}
	return strings.Join(parts, ",")
}

// Bus decodes the 16-bit address space of the machine.
//
// Regions are looked up in the order they were added and the first
// one containing the address wins. Device windows never overlap each
// other; a hole may span device windows that were mapped before it.
type Bus struct {
	regions []region
	fetched int
	trace   TraceMask
	logger  *log.Logger
}

func New(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{logger: logger}
}

// Map places dev at base. The window is dev.Size() bytes long.
func (b *Bus) Map(name string, base uint16, dev Device) error {
	if dev == nil {
		return fmt.Errorf("bus: map %s: nil device", name)
	}
	size := dev.Size()
	if size <= 0 {
		return fmt.Errorf("bus: map %s: empty window", name)
	}
	r := region{name: name, start: uint32(base), end: uint32(base) + uint32(size), dev: dev}
	if r.end > 0x10000 {
		return fmt.Errorf("bus: map %s: window $%04X+%d runs past $FFFF", name, base, size)
	}
	for _, other := range b.regions {
		if other.dev == nil {
			continue
		}
		if r.start < other.end && other.start < r.end {
			return fmt.Errorf("bus: map %s: window $%04X-$%04X overlaps %s", name, r.start, r.end-1, other.name)
		}
	}
	b.regions = append(b.regions, r)
	return nil
}

// Hole marks [start, end] as unmapped for everything not already mapped.
func (b *Bus) Hole(name string, start, end uint16) error {
	if end < start {
		return fmt.Errorf("bus: hole %s: end $%04X before start $%04X", name, end, start)
	}
	b.regions = append(b.regions, region{name: name, start: uint32(start), end: uint32(end) + 1})
	return nil
}

func (b *Bus) lookup(addr uint16) (region, bool) {
	for _, r := range b.regions {
		if r.contains(addr) {
			return r, r.dev != nil
		}
	}
	return region{}, false
}

// SetTrace enables the read, write and fetch channels of m.
// TraceInstr is ignored by the bus.
func (b *Bus) SetTrace(m TraceMask) {
	b.trace = m
}

func (b *Bus) Trace() TraceMask {
	return b.trace
}

// Read8 returns the byte at addr. Unmapped addresses read as 0.
func (b *Bus) Read8(addr uint16) uint8 {
	data, ok := b.read(addr)
	if !ok {
		b.logger.Printf("bus: read from unmapped address $%04X\n", addr)
		return 0
	}
	if b.trace&TraceRead != 0 {
		b.logger.Printf("  read  $%04X = $%02X\n", addr, data)
	}
	return data
}

// Fetch8 reads an instruction byte. It decodes like Read8 and counts
// the byte toward the instruction currently being executed.
func (b *Bus) Fetch8(addr uint16) uint8 {
	b.fetched++
	data, ok := b.read(addr)
	if !ok {
		b.logger.Printf("bus: fetch from unmapped address $%04X\n", addr)
		return 0
	}
	if b.trace&TraceFetch != 0 {
		b.logger.Printf("  fetch $%04X = $%02X\n", addr, data)
	}
	return data
}

// Peek8 reads without tracing, diagnostics or fetch accounting.
func (b *Bus) Peek8(addr uint16) uint8 {
	data, _ := b.read(addr)
	return data
}

func (b *Bus) read(addr uint16) (uint8, bool) {
	r, ok := b.lookup(addr)
	if !ok {
		return 0, false
	}
	return r.dev.Read8(uint16(uint32(addr) - r.start)), true
}

// Write8 stores data at addr. Writes to unmapped addresses are dropped.
func (b *Bus) Write8(addr uint16, data uint8) {
	if b.trace&TraceWrite != 0 {
		b.logger.Printf("  write $%04X = $%02X\n", addr, data)
	}
	r, ok := b.lookup(addr)
	if !ok {
		b.logger.Printf("bus: write to unmapped address $%04X ($%02X)\n", addr, data)
		return
	}
	r.dev.Write8(uint16(uint32(addr)-r.start), data)
}

// FetchCount is the number of bytes fetched since the last ResetFetchCount.
func (b *Bus) FetchCount() int {
	return b.fetched
}

func (b *Bus) ResetFetchCount() {
	b.fetched = 0
}

// Region returns the name of the region that decodes addr, or ""
// when nothing claims it.
func (b *Bus) Region(addr uint16) string {
	r, _ := b.lookup(addr)
	return r.name
}
