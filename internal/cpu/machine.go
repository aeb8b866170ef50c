package cpu

// access is the outcome of an addressing computation. Both engines produce
// one so the store and read operations can be shared between them.
type access struct {
	addr    uint16 // effective address
	operand uint8  // immediate operand or value read from addr
	baseHi  uint8  // high byte of the address before indexing
	crossed bool   // indexing carried into the high byte
}

// machine runs the compiled program of a single instruction. Everything in
// it besides the alu binding is scratch space that is reset when the next
// instruction starts.
type machine struct {
	alu
	access

	res  Result
	prog *program

	ptr uint16 // zero page or absolute pointer
	lo  uint8  // partially assembled address or vector

	vector   uint16
	software bool // interrupt sequence started by BRK
}

func (m *machine) start(prog *program) bool {
	m.prog = prog
	m.access = access{}
	m.ptr = 0
	m.lo = 0
	return prog.entry(m, 0)
}

func (m *machine) read(addr uint16, next step) bool {
	m.res = Result{Type: CycleRead, Address: addr, next: next}
	return false
}

// readLast requests a read that ends the instruction.
func (m *machine) readLast(addr uint16, next step) bool {
	m.res = Result{Type: CycleRead, Address: addr, PollInterrupts: true, next: next}
	return false
}

// readAddress requests the final read of an addressing machine. It ends
// the instruction only for operations that use the address directly.
func (m *machine) readAddress(addr uint16, next step) bool {
	m.res = Result{Type: CycleRead, Address: addr, PollInterrupts: m.prog.pollOnAddress, next: next}
	return false
}

func (m *machine) write(addr uint16, value uint8, next step) bool {
	m.res = Result{Type: CycleWrite, Address: addr, Value: value, next: next}
	return false
}

func (m *machine) writeLast(addr uint16, value uint8, next step) bool {
	m.res = Result{Type: CycleWrite, Address: addr, Value: value, PollInterrupts: true, next: next}
	return false
}

// fetchPC reads the byte at the program counter and advances it.
func (m *machine) fetchPC(next step) bool {
	pc := m.P
	m.P++
	return m.read(pc, next)
}

// resolve hands the computed address over to the operation.
func (m *machine) resolve() bool {
	return m.prog.resolved(m)
}

func done(*machine, uint8) bool {
	return true
}
