package cpu

// Op is the symbolic operation of an opcode.
type Op uint8

const (
	OpInvalid Op = iota

	OpADC // Add with Carry
	OpAND // Logical AND
	OpASL // Arithmetic Shift Left
	OpBCC // Branch if Carry Clear
	OpBCS // Branch if Carry Set
	OpBEQ // Branch if Equal
	OpBIT // Bit Test
	OpBMI // Branch if Minus
	OpBNE // Branch if Not Equal
	OpBPL // Branch if Positive
	OpBRK // Force Interrupt
	OpBVC // Branch if Overflow Clear
	OpBVS // Branch if Overflow Set
	OpCLC // Clear Carry Flag
	OpCLD // Clear Decimal Mode
	OpCLI // Clear Interrupt Disable
	OpCLV // Clear Overflow Flag
	OpCMP // Compare
	OpCPX // Compare X Register
	OpCPY // Compare Y Register
	OpDEC // Decrement Memory
	OpDEX // Decrement X Register
	OpDEY // Decrement Y Register
	OpEOR // Exclusive OR
	OpINC // Increment Memory
	OpINX // Increment X Register
	OpINY // Increment Y Register
	OpJMP // Jump
	OpJSR // Jump to Subroutine
	OpLDA // Load Accumulator
	OpLDX // Load X Register
	OpLDY // Load Y Register
	OpLSR // Logical Shift Right
	OpNOP // No Operation
	OpORA // Logical Inclusive OR
	OpPHA // Push Accumulator
	OpPHP // Push Processor Status
	OpPLA // Pull Accumulator
	OpPLP // Pull Processor Status
	OpROL // Rotate Left
	OpROR // Rotate Right
	OpRTI // Return from Interrupt
	OpRTS // Return from Subroutine
	OpSBC // Subtract with Carry
	OpSEC // Set Carry Flag
	OpSED // Set Decimal Flag
	OpSEI // Set Interrupt Disable
	OpSTA // Store Accumulator
	OpSTX // Store X Register
	OpSTY // Store Y Register
	OpTAX // Transfer Accumulator to X
	OpTAY // Transfer Accumulator to Y
	OpTSX // Transfer Stack Pointer to X
	OpTXA // Transfer X to Accumulator
	OpTXS // Transfer X to Stack Pointer
	OpTYA // Transfer Y to Accumulator

	// undocumented
	OpALR // AND then LSR A
	OpANC // AND, carry from bit 7
	OpANE // (A | magic) AND X AND operand
	OpARR // AND then ROR A with odd flags
	OpAXS // X = (A AND X) - operand
	OpDCP // DEC then CMP
	OpISC // INC then SBC
	OpLAS // A, X, S = operand AND S
	OpLAX // LDA and LDX
	OpLXA // A, X = (A | magic) AND operand
	OpRLA // ROL then AND
	OpRRA // ROR then ADC
	OpSAX // store A AND X
	OpSHA // store A AND X AND (H+1)
	OpSHX // store X AND (H+1)
	OpSHY // store Y AND (H+1)
	OpSLO // ASL then ORA
	OpSRE // LSR then EOR
	OpTAS // S = A AND X, store S AND (H+1)

	opCount
)

var opNames = [opCount]string{
	"???",
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
	"ALR", "ANC", "ANE", "ARR", "AXS", "DCP", "ISC", "LAS", "LAX", "LXA",
	"RLA", "RRA", "SAX", "SHA", "SHX", "SHY", "SLO", "SRE", "TAS",
}

func (op Op) String() string {
	if op >= opCount {
		return "???"
	}
	return opNames[op]
}

// magic is the value the unstable ANE and LXA opcodes OR into A.
const magic = 0xee

// alu binds the operations to a register file and the variant switches.
type alu struct {
	*State
	decimal bool // honour the D flag in ADC, SBC and friends
}

type (
	impliedFunc func(u *alu)
	readFunc    func(u *alu, v uint8)
	modifyFunc  func(u *alu, v uint8) uint8
	storeFunc   func(u *alu, a *access) uint8
	branchFunc  func(s *State) bool
)

func (u *alu) bcd() bool {
	return u.decimal && u.getFlag(FlagD)
}

func adc(u *alu, v uint8) {
	if u.bcd() {
		adcDecimal(u, v)
		return
	}
	r16 := uint16(u.A) + uint16(v) + uint16(u.carry())
	r8 := uint8(r16)
	u.setFlag(FlagC, r16 > 0xff)
	u.setFlag(FlagV, (u.A^r8)&(v^r8)&0x80 != 0)
	u.setFlagsZN(r8)
	u.A = r8
}

// NMOS decimal add: Z comes from the binary sum, N and V from the sum
// after the low nibble fixup.
func adcDecimal(u *alu, v uint8) {
	c := u.carry()
	lo := (u.A & 0x0f) + (v & 0x0f) + c
	if lo >= 0x0a {
		lo = ((lo + 0x06) & 0x0f) + 0x10
	}
	sum := uint16(u.A&0xf0) + uint16(v&0xf0) + uint16(lo)
	seq := uint8(sum)
	bin := u.A + v + c

	u.setFlag(FlagV, (u.A^seq)&(v^seq)&0x80 != 0)
	u.setFlag(FlagN, seq&0x80 > 0)
	u.setFlag(FlagZ, bin == 0)
	if sum >= 0xa0 {
		sum += 0x60
	}
	u.setFlag(FlagC, sum > 0xff)
	u.A = uint8(sum)
}

func sbc(u *alu, v uint8) {
	if !u.bcd() {
		adc(u, ^v)
		return
	}

	// flags follow the binary subtraction
	c := u.carry()
	bin16 := uint16(u.A) + uint16(^v) + uint16(c)
	bin := uint8(bin16)

	lo := int16(u.A&0x0f) - int16(v&0x0f) + int16(c) - 1
	if lo < 0 {
		lo = ((lo - 0x06) & 0x0f) - 0x10
	}
	r := int16(u.A&0xf0) - int16(v&0xf0) + lo
	if r < 0 {
		r -= 0x60
	}

	u.setFlag(FlagC, bin16 > 0xff)
	u.setFlag(FlagV, (u.A^bin)&(^v^bin)&0x80 != 0)
	u.setFlagsZN(bin)
	u.A = uint8(r)
}

func and(u *alu, v uint8) {
	u.A &= v
	u.setFlagsZN(u.A)
}

func ora(u *alu, v uint8) {
	u.A |= v
	u.setFlagsZN(u.A)
}

func eor(u *alu, v uint8) {
	u.A ^= v
	u.setFlagsZN(u.A)
}

func compare(u *alu, reg, v uint8) {
	u.setFlag(FlagC, reg >= v)
	u.setFlagsZN(reg - v)
}

func cmp(u *alu, v uint8) { compare(u, u.A, v) }
func cpx(u *alu, v uint8) { compare(u, u.X, v) }
func cpy(u *alu, v uint8) { compare(u, u.Y, v) }

func bit(u *alu, v uint8) {
	u.setFlag(FlagZ, u.A&v == 0)
	u.setFlag(FlagN, v&0x80 > 0)
	u.setFlag(FlagV, v&0x40 > 0)
}

func lda(u *alu, v uint8) {
	u.A = v
	u.setFlagsZN(v)
}

func ldx(u *alu, v uint8) {
	u.X = v
	u.setFlagsZN(v)
}

func ldy(u *alu, v uint8) {
	u.Y = v
	u.setFlagsZN(v)
}

func lax(u *alu, v uint8) {
	u.A = v
	u.X = v
	u.setFlagsZN(v)
}

func nopRead(*alu, uint8) {}

func anc(u *alu, v uint8) {
	and(u, v)
	u.setFlag(FlagC, u.A&0x80 > 0)
}

func alr(u *alu, v uint8) {
	u.A &= v
	u.A = lsr(u, u.A)
}

func arr(u *alu, v uint8) {
	t := u.A & v
	r := t>>1 | u.carry()<<7
	u.setFlagsZN(r)

	if !u.bcd() {
		u.setFlag(FlagC, r&0x40 > 0)
		u.setFlag(FlagV, (r>>6^r>>5)&1 > 0)
		u.A = r
		return
	}

	u.setFlag(FlagV, (r^t)&0x40 > 0)
	if t&0x0f+t&0x01 > 5 {
		r = r&0xf0 | (r+0x06)&0x0f
	}
	if uint16(t&0xf0)+uint16(t&0x10) > 0x50 {
		u.setFlag(FlagC, true)
		r += 0x60
	} else {
		u.setFlag(FlagC, false)
	}
	u.A = r
}

func axs(u *alu, v uint8) {
	t := u.A & u.X
	u.setFlag(FlagC, t >= v)
	u.X = t - v
	u.setFlagsZN(u.X)
}

func ane(u *alu, v uint8) {
	u.A = (u.A | magic) & u.X & v
	u.setFlagsZN(u.A)
}

func lxa(u *alu, v uint8) {
	u.A = (u.A | magic) & v
	u.X = u.A
	u.setFlagsZN(u.A)
}

func las(u *alu, v uint8) {
	r := v & u.S
	u.A = r
	u.X = r
	u.S = r
	u.setFlagsZN(r)
}

func asl(u *alu, v uint8) uint8 {
	u.setFlag(FlagC, v&0x80 > 0)
	r := v << 1
	u.setFlagsZN(r)
	return r
}

func lsr(u *alu, v uint8) uint8 {
	u.setFlag(FlagC, v&0x01 > 0)
	r := v >> 1
	u.setFlagsZN(r)
	return r
}

func rol(u *alu, v uint8) uint8 {
	r := v<<1 | u.carry()
	u.setFlag(FlagC, v&0x80 > 0)
	u.setFlagsZN(r)
	return r
}

func ror(u *alu, v uint8) uint8 {
	r := v>>1 | u.carry()<<7
	u.setFlag(FlagC, v&0x01 > 0)
	u.setFlagsZN(r)
	return r
}

func inc(u *alu, v uint8) uint8 {
	v++
	u.setFlagsZN(v)
	return v
}

func dec(u *alu, v uint8) uint8 {
	v--
	u.setFlagsZN(v)
	return v
}

func slo(u *alu, v uint8) uint8 {
	r := asl(u, v)
	ora(u, r)
	return r
}

func rla(u *alu, v uint8) uint8 {
	r := rol(u, v)
	and(u, r)
	return r
}

func sre(u *alu, v uint8) uint8 {
	r := lsr(u, v)
	eor(u, r)
	return r
}

func rra(u *alu, v uint8) uint8 {
	r := ror(u, v)
	adc(u, r)
	return r
}

func dcp(u *alu, v uint8) uint8 {
	v--
	cmp(u, v)
	return v
}

func isc(u *alu, v uint8) uint8 {
	v++
	sbc(u, v)
	return v
}

func sta(u *alu, _ *access) uint8 { return u.A }
func stx(u *alu, _ *access) uint8 { return u.X }
func sty(u *alu, _ *access) uint8 { return u.Y }
func sax(u *alu, _ *access) uint8 { return u.A & u.X }

// unstable stores AND the value with the high byte of the base address
// plus one; when indexing crossed a page that value also replaces the high
// byte of the target address.
func unstable(a *access, v uint8) uint8 {
	v &= a.baseHi + 1
	if a.crossed {
		a.addr = uint16(v)<<8 | a.addr&0x00ff
	}
	return v
}

func sha(u *alu, a *access) uint8 { return unstable(a, u.A&u.X) }
func shx(u *alu, a *access) uint8 { return unstable(a, u.X) }
func shy(u *alu, a *access) uint8 { return unstable(a, u.Y) }

func tas(u *alu, a *access) uint8 {
	u.S = u.A & u.X
	return unstable(a, u.S)
}

func clc(u *alu) { u.setFlag(FlagC, false) }
func cld(u *alu) { u.setFlag(FlagD, false) }
func cli(u *alu) { u.setFlag(FlagI, false) }
func clv(u *alu) { u.setFlag(FlagV, false) }
func sec(u *alu) { u.setFlag(FlagC, true) }
func sed(u *alu) { u.setFlag(FlagD, true) }
func sei(u *alu) { u.setFlag(FlagI, true) }
func nop(*alu)   {}

func tax(u *alu) {
	u.X = u.A
	u.setFlagsZN(u.X)
}

func tay(u *alu) {
	u.Y = u.A
	u.setFlagsZN(u.Y)
}

func tsx(u *alu) {
	u.X = u.S
	u.setFlagsZN(u.X)
}

func txa(u *alu) {
	u.A = u.X
	u.setFlagsZN(u.A)
}

func txs(u *alu) {
	u.S = u.X
}

func tya(u *alu) {
	u.A = u.Y
	u.setFlagsZN(u.A)
}

func inx(u *alu) {
	u.X++
	u.setFlagsZN(u.X)
}

func iny(u *alu) {
	u.Y++
	u.setFlagsZN(u.Y)
}

func dex(u *alu) {
	u.X--
	u.setFlagsZN(u.X)
}

func dey(u *alu) {
	u.Y--
	u.setFlagsZN(u.Y)
}

func pha(s *State) uint8 { return s.A }

// the B flag only exists on the stack
func php(s *State) uint8 { return s.Flags | FlagB | FlagU }

func pla(u *alu, v uint8) { lda(u, v) }

func plp(u *alu, v uint8) {
	u.Flags = v&^FlagB | FlagU
}

func bpl(s *State) bool { return !s.getFlag(FlagN) }
func bmi(s *State) bool { return s.getFlag(FlagN) }
func bvc(s *State) bool { return !s.getFlag(FlagV) }
func bvs(s *State) bool { return s.getFlag(FlagV) }
func bcc(s *State) bool { return !s.getFlag(FlagC) }
func bcs(s *State) bool { return s.getFlag(FlagC) }
func bne(s *State) bool { return !s.getFlag(FlagZ) }
func beq(s *State) bool { return s.getFlag(FlagZ) }
