package cpu

// Bus is everything the processor is wired to. Read and Write may have side
// effects on memory mapped devices; Peek and Poke must not.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
	ReadWord(addr uint16) uint16
	Peek(addr uint16) uint8
	Poke(addr uint16, data uint8)
}

type ExecutionState uint8

const (
	Boot ExecutionState = iota
	Fetch
	Execute
)

func (s ExecutionState) String() string {
	switch s {
	case Boot:
		return "boot"
	case Fetch:
		return "fetch"
	case Execute:
		return "execute"
	}
	return "???"
}

// Engine runs a 6502 one bus cycle at a time.
type Engine interface {
	// Reset plays the reset sequence on the following cycles.
	Reset()
	// Cycle advances the processor by one bus cycle.
	Cycle()

	// SetInterrupt drives the level triggered IRQ line.
	SetInterrupt(active bool)
	// NMI signals an edge on the NMI line. It stays pending until serviced.
	NMI()

	// Halt stops the processor. StateMachine holds before the next read and
	// never before a write; Batched stops at the next instruction boundary.
	Halt()
	Resume()
	IsHalt() bool

	// SetInvalidInstructionCallback installs the handler for opcodes that
	// lock up a real processor. The engine is passed in; the program counter
	// already points past the opcode.
	SetInvalidInstructionCallback(cb func(Engine))

	// LastInstructionPointer is the address of the last fetched opcode.
	LastInstructionPointer() uint16
	ExecutionState() ExecutionState
	// State may be changed between cycles.
	State() *State
	// Cycles is the number of bus cycles run since the engine was created.
	Cycles() uint64
}

type Kind uint8

const (
	// KindStateMachine performs every bus transaction of every
	// instruction, dummy cycles included.
	KindStateMachine Kind = iota
	// KindBatched runs a whole instruction on its first cycle and idles
	// for the rest. Register state and cycle counts match KindStateMachine.
	KindBatched
)

func (k Kind) String() string {
	switch k {
	case KindStateMachine:
		return "statemachine"
	case KindBatched:
		return "batched"
	}
	return "???"
}

type Config struct {
	Kind Kind
	// NoDecimal ignores the D flag, like the Ricoh 2A03.
	NoDecimal bool
}

// New creates an engine attached to bus. The engine starts in the reset
// sequence.
func New(bus Bus, cfg Config) Engine {
	if cfg.Kind == KindBatched {
		return NewBatched(bus, cfg)
	}
	return NewStateMachine(bus, cfg)
}
