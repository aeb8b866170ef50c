package bus

import "fmt"

const (
	ramSizeBytes    = 0x800
	prgRAMSizeBytes = 0x2000
)

// NROM is the processor side of a console with a mapper 0 cartridge.
//
// $0000-$07FF: 2 KB of internal RAM
// $0800-$1FFF: Mirrors of $0000-$07FF
// $2000-$5FFF: PPU, APU and I/O registers, not connected (open bus)
// $6000-$7FFF: PRG RAM
// $8000-$FFFF: PRG ROM, a single 16 KB bank is mirrored
type NROM struct {
	ram    [ramSizeBytes]uint8
	prgRAM [prgRAMSizeBytes]uint8
	prg    []uint8

	// last value seen on the data bus
	open uint8

	// bus traffic, Peek and Poke excluded
	Reads  uint64
	Writes uint64
}

func NewNROM(img *Image) (*NROM, error) {
	if img.MapperID != 0 {
		return nil, fmt.Errorf("mapper %d: %w", img.MapperID, ErrUnsupportedMapper)
	}
	switch size := len(img.PRG); {
	case size > 2*prgBankSizeBytes:
		return nil, fmt.Errorf("%d bytes of PRG ROM: %w", size, ErrImageTooLarge)
	case size != prgBankSizeBytes && size != 2*prgBankSizeBytes:
		return nil, fmt.Errorf("%d bytes of PRG ROM: %w", size, ErrInvalidHeader)
	}
	return &NROM{prg: img.PRG}, nil
}

func (n *NROM) mapPRG(addr uint16) uint16 {
	if len(n.prg) > prgBankSizeBytes {
		return addr & 0x7fff
	}
	return addr & 0x3fff
}

func (n *NROM) Traffic() (reads, writes uint64) {
	return n.Reads, n.Writes
}

func (n *NROM) Read(addr uint16) uint8 {
	n.Reads++
	n.open = n.Peek(addr)
	return n.open
}

// Write ignores writes to ROM.
func (n *NROM) Write(addr uint16, data uint8) {
	n.Writes++
	n.open = data
	if addr < 0x8000 {
		n.Poke(addr, data)
	}
}

func (n *NROM) ReadWord(addr uint16) uint16 {
	lo := n.Read(addr)
	hi := n.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (n *NROM) Peek(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return n.ram[addr&0x07ff]
	case addr >= 0x8000:
		return n.prg[n.mapPRG(addr)]
	case addr >= 0x6000:
		return n.prgRAM[addr&0x1fff]
	}
	return n.open
}

// Poke can patch ROM.
func (n *NROM) Poke(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		n.ram[addr&0x07ff] = data
	case addr >= 0x8000:
		n.prg[n.mapPRG(addr)] = data
	case addr >= 0x6000:
		n.prgRAM[addr&0x1fff] = data
	}
}
