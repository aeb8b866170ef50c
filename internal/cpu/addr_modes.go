package cpu

// Mode is the addressing mode of an opcode.
type Mode uint8

const (
	// Implied: IMP
	//
	// The operation implicitly affects registers or flags.
	// Example: CLC
	ModeImplied Mode = iota

	// Accumulator: ACC
	//
	// The operation works on the accumulator.
	// Example: LSR A
	ModeAccumulator

	// Immediate: IMM
	//
	// The operand is the byte following the opcode.
	// Format: #$nn
	ModeImmediate

	// Zero Page: ZP
	//
	// The operand lives in the first 256 bytes of memory.
	// Format: $nn
	ModeZeroPage

	// Zero Page Indexed with X: ZPX
	//
	// Zero page address plus X. The sum wraps inside the zero page.
	// Format: $nn,X
	ModeZeroPageX

	// Zero Page Indexed with Y: ZPY
	//
	// Zero page address plus Y. The sum wraps inside the zero page.
	// Format: $nn,Y
	ModeZeroPageY

	// Absolute: ABS
	//
	// Full 16-bit address.
	// Format: $nnnn
	ModeAbsolute

	// Absolute Indexed with X: ABSX
	//
	// Full 16-bit address plus X.
	// Format: $nnnn,X
	ModeAbsoluteX

	// Absolute Indexed with Y: ABSY
	//
	// Full 16-bit address plus Y.
	// Format: $nnnn,Y
	ModeAbsoluteY

	// Indirect: IND
	//
	// The operand is a pointer to the target address. Only JMP uses it.
	// A pointer at $xxFF takes its high byte from $xx00.
	// Format: ($nnnn)
	ModeIndirect

	// Indexed Indirect (X): INDX
	//
	// The pointer is read from the zero page at $nn + X.
	// Format: ($nn,X)
	ModeIndexedIndirect

	// Indirect Indexed (Y): INDY
	//
	// The pointer is read from the zero page at $nn, then Y is added.
	// Format: ($nn),Y
	ModeIndirectIndexed

	// Relative: REL
	//
	// Signed 8-bit offset from the address of the next instruction.
	// Format: $nn
	ModeRelative

	modeCount
)

var modeNames = [modeCount]string{
	"IMP", "ACC", "IMM", "ZP", "ZPX", "ZPY", "ABS", "ABSX", "ABSY", "IND", "INDX", "INDY", "REL",
}

func (mode Mode) String() string {
	if mode >= modeCount {
		return "???"
	}
	return modeNames[mode]
}

// InstructionLength returns the number of bytes, opcode included, an
// instruction with the given addressing mode occupies.
func InstructionLength(mode Mode) int {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 1
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect:
		return 3
	}
	return 2
}

// addressing machines. Each one starts right after the opcode fetch, with
// the program counter pointing at the first operand byte, and ends by
// calling resolve with the effective address (or the immediate operand) in
// the machine's access record.

var addressing = [modeCount]step{
	ModeImmediate:       immediate,
	ModeZeroPage:        zeroPage,
	ModeZeroPageX:       zeroPageIndexed,
	ModeZeroPageY:       zeroPageIndexed,
	ModeAbsolute:        absolute,
	ModeAbsoluteX:       absoluteIndexed,
	ModeAbsoluteY:       absoluteIndexed,
	ModeIndirect:        indirect,
	ModeIndexedIndirect: indexedIndirect,
	ModeIndirectIndexed: indirectIndexed,
}

func (m *machine) index() uint8 {
	switch m.prog.mode {
	case ModeZeroPageX, ModeAbsoluteX, ModeIndexedIndirect:
		return m.X
	}
	return m.Y
}

// immediate operands are never dereferenced, and the operand fetch is always
// the last cycle of the instruction.
func immediate(m *machine, _ uint8) bool {
	pc := m.P
	m.P++
	return m.readLast(pc, immediateFetched)
}

func immediateFetched(m *machine, v uint8) bool {
	m.operand = v
	return m.resolve()
}

func zeroPage(m *machine, _ uint8) bool {
	pc := m.P
	m.P++
	return m.readAddress(pc, zeroPageFetched)
}

func zeroPageFetched(m *machine, v uint8) bool {
	m.addr = uint16(v)
	return m.resolve()
}

func zeroPageIndexed(m *machine, _ uint8) bool {
	return m.fetchPC(zeroPageIndexedBase)
}

// the unindexed address is always read once before the index is added
func zeroPageIndexedBase(m *machine, v uint8) bool {
	m.ptr = uint16(v)
	return m.readAddress(m.ptr, zeroPageIndexedDummy)
}

func zeroPageIndexedDummy(m *machine, _ uint8) bool {
	m.addr = uint16(uint8(m.ptr) + m.index())
	return m.resolve()
}

func absolute(m *machine, _ uint8) bool {
	return m.fetchPC(absoluteLo)
}

func absoluteLo(m *machine, v uint8) bool {
	m.lo = v
	pc := m.P
	m.P++
	return m.readAddress(pc, absoluteHi)
}

func absoluteHi(m *machine, v uint8) bool {
	m.addr = uint16(v)<<8 | uint16(m.lo)
	return m.resolve()
}

func absoluteIndexed(m *machine, _ uint8) bool {
	return m.fetchPC(absoluteIndexedLo)
}

func absoluteIndexedLo(m *machine, v uint8) bool {
	m.lo = v
	return m.fetchPC(indexedHi)
}

// indexedHi adds the index to the low byte only. If that carries, or the
// operation writes, the address without the carry is read before the high
// byte is fixed up.
func indexedHi(m *machine, hi uint8) bool {
	base := uint16(hi)<<8 | uint16(m.lo)
	m.baseHi = hi
	m.addr = base + uint16(m.index())
	m.crossed = isDiffPage(base, m.addr)
	if !m.crossed && !m.prog.write {
		return m.resolve()
	}
	return m.read(base&0xff00|m.addr&0x00ff, indexedFixed)
}

func indexedFixed(m *machine, _ uint8) bool {
	return m.resolve()
}

func indirect(m *machine, _ uint8) bool {
	return m.fetchPC(indirectLo)
}

func indirectLo(m *machine, v uint8) bool {
	m.lo = v
	return m.fetchPC(indirectHi)
}

func indirectHi(m *machine, v uint8) bool {
	m.ptr = uint16(v)<<8 | uint16(m.lo)
	return m.read(m.ptr, indirectTargetLo)
}

// the high byte of the target is fetched without carrying into the
// pointer's high byte
func indirectTargetLo(m *machine, v uint8) bool {
	m.lo = v
	return m.readAddress(m.ptr&0xff00|(m.ptr+1)&0x00ff, indirectTargetHi)
}

func indirectTargetHi(m *machine, v uint8) bool {
	m.addr = uint16(v)<<8 | uint16(m.lo)
	return m.resolve()
}

func indexedIndirect(m *machine, _ uint8) bool {
	return m.fetchPC(indexedIndirectPointer)
}

func indexedIndirectPointer(m *machine, v uint8) bool {
	m.ptr = uint16(v)
	return m.read(m.ptr, indexedIndirectDummy)
}

func indexedIndirectDummy(m *machine, _ uint8) bool {
	m.ptr = uint16(uint8(m.ptr) + m.index())
	return m.read(m.ptr, indexedIndirectLo)
}

func indexedIndirectLo(m *machine, v uint8) bool {
	m.lo = v
	return m.readAddress(uint16(uint8(m.ptr)+1), indexedIndirectHi)
}

func indexedIndirectHi(m *machine, v uint8) bool {
	m.addr = uint16(v)<<8 | uint16(m.lo)
	return m.resolve()
}

func indirectIndexed(m *machine, _ uint8) bool {
	return m.fetchPC(indirectIndexedPointer)
}

func indirectIndexedPointer(m *machine, v uint8) bool {
	m.ptr = uint16(v)
	return m.read(m.ptr, indirectIndexedLo)
}

func indirectIndexedLo(m *machine, v uint8) bool {
	m.lo = v
	return m.read(uint16(uint8(m.ptr)+1), indexedHi)
}
