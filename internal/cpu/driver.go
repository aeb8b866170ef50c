package cpu

// core holds what both engines share: the register file, the interrupt
// lines, halt and the bookkeeping behind the Engine getters.
type core struct {
	self Engine
	bus  Bus

	state State
	exec  ExecutionState

	irqLine bool // level of the IRQ input
	nmiEdge bool // NMI edge not latched yet

	halted    bool
	onInvalid func(Engine)

	lastPC uint16
	cycles uint64
}

func (c *core) SetInterrupt(active bool) {
	c.irqLine = active
}

func (c *core) NMI() {
	c.nmiEdge = true
}

func (c *core) Halt() {
	c.halted = true
}

func (c *core) Resume() {
	c.halted = false
}

func (c *core) IsHalt() bool {
	return c.halted
}

func (c *core) SetInvalidInstructionCallback(cb func(Engine)) {
	c.onInvalid = cb
}

func (c *core) LastInstructionPointer() uint16 {
	return c.lastPC
}

func (c *core) ExecutionState() ExecutionState {
	return c.exec
}

func (c *core) State() *State {
	return &c.state
}

func (c *core) Cycles() uint64 {
	return c.cycles
}

// poll latches the interrupt inputs. masked is the I flag as the processor
// sees it at the polling point.
func (c *core) poll(masked bool) {
	c.state.IRQ = c.irqLine && !masked
	if c.nmiEdge {
		c.state.NMI = true
		c.nmiEdge = false
	}
}

func (c *core) interruptPending() bool {
	return c.state.NMI || c.state.IRQ
}

func (c *core) invalid() {
	if c.onInvalid != nil {
		c.onInvalid(c.self)
	}
}

func (c *core) reset() {
	c.exec = Boot
	c.nmiEdge = false
}

// StateMachine is the cycle accurate engine. Every call to Cycle performs
// exactly one bus transaction, the same one the real processor would.
type StateMachine struct {
	core
	m machine
}

var _ Engine = (*StateMachine)(nil)

func NewStateMachine(bus Bus, cfg Config) *StateMachine {
	e := &StateMachine{}
	e.self = e
	e.bus = bus
	e.m.alu = alu{State: &e.state, decimal: !cfg.NoDecimal}
	e.Reset()
	return e
}

func (e *StateMachine) Reset() {
	e.reset()
	e.m.start(&bootProgram)
}

// Pending is the transaction the next call to Cycle performs. It is only
// meaningful outside the fetch state.
func (e *StateMachine) Pending() Result {
	return e.m.res
}

func (e *StateMachine) Cycle() {
	if e.exec == Fetch {
		if e.halted {
			return
		}
		e.fetch()
		return
	}

	// writes are never held back
	if e.halted && e.m.res.Type == CycleRead {
		return
	}
	e.execute()
}

func (e *StateMachine) fetch() {
	e.cycles++

	if e.interruptPending() {
		e.bus.Read(e.state.P)
		e.m.start(&interruptProgram)
		e.exec = Execute
		return
	}

	e.lastPC = e.state.P
	opcode := e.bus.Read(e.state.P)
	e.state.P++

	prog := &programs[opcode]
	if prog.kind == kindInvalid {
		e.invalid()
		return
	}
	e.m.start(prog)
	e.exec = Execute
}

func (e *StateMachine) execute() {
	e.cycles++

	res := &e.m.res
	v := res.Value
	if res.Type == CycleRead {
		v = e.bus.Read(res.Address)
	} else {
		e.bus.Write(res.Address, res.Value)
	}

	if res.PollInterrupts {
		e.poll(e.state.getFlag(FlagI))
	}

	if next := res.next; next(&e.m, v) {
		e.exec = Fetch
	}
}
