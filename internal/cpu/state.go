package cpu

import "fmt"

const (
	stackStartAddr = uint16(0x100)

	nmiVector   = uint16(0xfffa)
	resetVector = uint16(0xfffc)
	irqVector   = uint16(0xfffe)
)

const (
	FlagC = uint8(1 << iota) // Carry
	FlagZ                    // Zero
	FlagI                    // Interrupt Disable
	FlagD                    // Decimal Mode
	FlagB                    // Break Command
	FlagU                    // Unused, always reads back as 1
	FlagV                    // Overflow
	FlagN                    // Negative
)

// State is the register file of the processor together with the
// interrupt latches. It is owned by an engine and mutated by whichever
// machine is running; callers may change it between cycles.
type State struct {
	A     uint8  // accumulator
	X     uint8  // index register X
	Y     uint8  // index register Y
	S     uint8  // stack pointer, offset from $0100
	P     uint16 // program counter
	Flags uint8  // status byte, see FlagC..FlagN

	IRQ bool // IRQ latched at the last polling point
	NMI bool // NMI latched and waiting to be serviced
}

func (s *State) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X", s.A, s.X, s.Y, s.Flags, s.S, s.P)
}

func (s State) getFlag(flag uint8) bool {
	return s.Flags&flag > 0
}

func (s *State) setFlag(flag uint8, v bool) {
	if v {
		s.Flags |= flag
		return
	}
	s.Flags &^= flag
}

func (s *State) setFlagsZN(value uint8) {
	s.setFlag(FlagZ, value == 0)
	s.setFlag(FlagN, value&0x80 > 0)
}

func (s *State) carry() uint8 {
	return s.Flags & FlagC
}

func stackAddr(sp uint8) uint16 {
	return stackStartAddr | uint16(sp)
}

func isDiffPage(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}
