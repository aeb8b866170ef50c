package bus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	inesMagic        = 0x1a53454e
	trainerSizeBytes = 512
	prgBankSizeBytes = 0x4000
	chrBankSizeBytes = 0x2000
)

var (
	ErrInvalidHeader     = errors.New("invalid iNES header")
	ErrImageTooLarge     = errors.New("image doesn't fit the address space")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

// Image is the content of an iNES file.
type Image struct {
	PRG      []uint8
	CHR      []uint8
	MapperID uint8
	Mirror   uint8 // 0: horizontal, 1: vertical
}

// ReadImageFile reads an iNES (.nes) file.
func ReadImageFile(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the file: %w", err)
	}
	defer file.Close()

	return ReadImage(file)
}

func ReadImage(r io.Reader) (*Image, error) {
	var header struct {
		Magic      uint32
		PrgRomSize uint8
		ChrRomSize uint8
		Flags6     uint8
		Flags7     uint8
		Flags8     uint8
		Flags9     uint8
		Flags10    uint8
		_          [5]uint8 // unused
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("couldn't read the header: %w", err)
	}
	if header.Magic != inesMagic {
		return nil, ErrInvalidHeader
	}
	if header.PrgRomSize == 0 {
		return nil, fmt.Errorf("no PRG ROM banks: %w", ErrInvalidHeader)
	}
	// the second bit of flags6 is the trainer flag
	if header.Flags6&0x4 != 0 {
		if _, err := io.CopyN(io.Discard, r, trainerSizeBytes); err != nil {
			return nil, fmt.Errorf("couldn't skip the trainer: %w", err)
		}
	}

	// flag6: lower 4 bits of mapper ID
	// flag7: upper 4 bits of mapper ID
	img := &Image{
		PRG:      make([]uint8, int(header.PrgRomSize)*prgBankSizeBytes),
		CHR:      make([]uint8, int(header.ChrRomSize)*chrBankSizeBytes),
		MapperID: (header.Flags7 & 0xf0) | (header.Flags6 >> 4),
		Mirror:   header.Flags6 & 0x1,
	}
	if _, err := io.ReadFull(r, img.PRG); err != nil {
		return nil, fmt.Errorf("couldn't read PRG ROM: %w", err)
	}
	if _, err := io.ReadFull(r, img.CHR); err != nil {
		return nil, fmt.Errorf("couldn't read CHR ROM: %w", err)
	}
	return img, nil
}
