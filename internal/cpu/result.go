package cpu

// CycleType is the direction of a bus transaction.
type CycleType uint8

const (
	CycleRead CycleType = iota
	CycleWrite
)

func (t CycleType) String() string {
	if t == CycleWrite {
		return "write"
	}
	return "read"
}

// step is one cycle of an instruction. It receives the byte that moved over
// the bus during the previous transaction (the value read, or the value
// written) and reports whether the instruction has finished. If it has not,
// the machine's Result describes the next transaction.
type step func(m *machine, value uint8) bool

// Result is the next bus transaction requested by a machine. A machine keeps
// exactly one Result and rewrites it every cycle; the driver only reads it.
type Result struct {
	Type    CycleType
	Address uint16
	Value   uint8 // only meaningful for writes

	// PollInterrupts asks the driver to re-latch IRQ and NMI once the
	// transaction has been performed.
	PollInterrupts bool

	next step
}
