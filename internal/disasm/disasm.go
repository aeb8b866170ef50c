package disasm

import (
	"fmt"

	"github.com/nevisdale/cyc6502/internal/cpu"
)

// Peeker reads memory without bus side effects. Every cpu.Bus is a Peeker.
type Peeker interface {
	Peek(addr uint16) uint8
}

// At decodes the instruction at addr. It returns the listing line
// and the number of bytes the instruction takes.
func At(mem Peeker, addr uint16) (string, int) {
	ins := cpu.Lookup(mem.Peek(addr))
	if ins.Op == cpu.OpInvalid {
		return fmt.Sprintf("$%04X: ???", addr), 1
	}

	pc := addr + 1
	operand := mem.Peek(pc)
	word := uint16(mem.Peek(pc+1))<<8 | uint16(operand)

	var text string
	switch ins.Mode {
	case cpu.ModeImmediate:
		text = fmt.Sprintf("%s #$%02X", ins.Op, operand)
	case cpu.ModeZeroPage:
		text = fmt.Sprintf("%s $%02X", ins.Op, operand)
	case cpu.ModeZeroPageX:
		text = fmt.Sprintf("%s $%02X,X", ins.Op, operand)
	case cpu.ModeZeroPageY:
		text = fmt.Sprintf("%s $%02X,Y", ins.Op, operand)
	case cpu.ModeAbsolute:
		text = fmt.Sprintf("%s $%04X", ins.Op, word)
	case cpu.ModeAbsoluteX:
		text = fmt.Sprintf("%s $%04X,X", ins.Op, word)
	case cpu.ModeAbsoluteY:
		text = fmt.Sprintf("%s $%04X,Y", ins.Op, word)
	case cpu.ModeIndirect:
		text = fmt.Sprintf("%s ($%04X)", ins.Op, word)
	case cpu.ModeIndexedIndirect:
		text = fmt.Sprintf("%s ($%02X,X)", ins.Op, operand)
	case cpu.ModeIndirectIndexed:
		text = fmt.Sprintf("%s ($%02X),Y", ins.Op, operand)
	case cpu.ModeRelative:
		// target of the taken branch
		text = fmt.Sprintf("%s $%04X", ins.Op, pc+1+uint16(int8(operand)))
	case cpu.ModeAccumulator:
		text = fmt.Sprintf("%s A", ins.Op)
	default:
		text = ins.Op.String()
	}
	return fmt.Sprintf("$%04X: %s {%s}", addr, text, ins.Mode), ins.Length()
}

// Range returns the listing of [from, to] keyed by instruction
// address, decoding linearly from from.
func Range(mem Peeker, from, to uint16) map[uint16]string {
	disasm := make(map[uint16]string)

	addr := uint32(from)
	for addr <= uint32(to) {
		line, n := At(mem, uint16(addr))
		disasm[uint16(addr)] = line
		addr += uint32(n)
	}
	return disasm
}
