package bus

import "fmt"

const memSizeBytes = 0x10000

// Memory is a flat 64 KiB address space with no devices on it. Every
// address is readable and writable.
type Memory struct {
	mem [memSizeBytes]uint8

	// bus traffic, Peek and Poke excluded
	Reads  uint64
	Writes uint64
}

func NewMemory() *Memory {
	return &Memory{}
}

// Traffic reports the bus reads and writes so far.
func (m *Memory) Traffic() (reads, writes uint64) {
	return m.Reads, m.Writes
}

func (m *Memory) Read(addr uint16) uint8 {
	m.Reads++
	return m.mem[addr]
}

func (m *Memory) Write(addr uint16, data uint8) {
	m.Writes++
	m.mem[addr] = data
}

// ReadWord reads a little endian word. The high byte of $FFFF comes from $0000.
func (m *Memory) ReadWord(addr uint16) uint16 {
	lo := m.Read(addr)
	hi := m.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (m *Memory) Peek(addr uint16) uint8 {
	return m.mem[addr]
}

func (m *Memory) Poke(addr uint16, data uint8) {
	m.mem[addr] = data
}

// PokeWord stores a little endian word, e.g. an interrupt vector.
func (m *Memory) PokeWord(addr uint16, data uint16) {
	m.Poke(addr, uint8(data))
	m.Poke(addr+1, uint8(data>>8))
}

// Load copies data into memory starting at origin.
func (m *Memory) Load(origin uint16, data []uint8) error {
	if int(origin)+len(data) > memSizeBytes {
		return fmt.Errorf("%d bytes at $%04X: %w", len(data), origin, ErrImageTooLarge)
	}
	copy(m.mem[origin:], data)
	return nil
}
