package cpu

// Batched runs each instruction in one go on its first cycle and spends the
// remaining cycles idle. Operands, pointers, stack slots and vectors are
// really read and both writes of read-modify-write instructions reach the
// bus, but dummy cycles don't. Registers, flags and cycle counts match
// StateMachine; halting only takes effect between instructions.
//
// An interrupt sequence reads its vector up front. If the push-flags poll
// latches an NMI, the NMI vector is read again at that cycle.
type Batched struct {
	core
	u   alu
	acc access

	elapsed   int    // cycles of the current instruction run so far
	remaining int    // cycles of the current instruction left
	pollAt    int    // cycle that latches interrupts, 0 for none
	pollMask  bool   // I flag seen at pollAt
	clearing  bool   // the instruction consumes the interrupt latches
	vector    uint16 // vector of the current interrupt sequence, 0 otherwise
}

var _ Engine = (*Batched)(nil)

func NewBatched(bus Bus, cfg Config) *Batched {
	b := &Batched{}
	b.self = b
	b.bus = bus
	b.u = alu{State: &b.state, decimal: !cfg.NoDecimal}
	b.Reset()
	return b
}

func (b *Batched) Reset() {
	b.reset()
	b.remaining = 0
}

func (b *Batched) Cycle() {
	if b.remaining > 0 {
		b.cycles++
		b.elapsed++
		b.remaining--
		b.finishCycle()
		return
	}
	if b.halted {
		return
	}

	b.cycles++
	b.elapsed = 1
	b.pollAt = 0
	b.clearing = false
	b.vector = 0

	var total int
	switch {
	case b.exec == Boot:
		total = b.boot()
	case b.interruptPending():
		b.bus.Read(b.state.P)
		total = b.interrupt(false)
	default:
		b.lastPC = b.state.P
		opcode := b.bus.Read(b.state.P)
		b.state.P++
		prog := &programs[opcode]
		if prog.kind == kindInvalid {
			b.invalid()
			return
		}
		total = b.run(prog)
	}

	b.remaining = total - 1
	if b.exec != Boot {
		b.exec = Execute
	}
	b.finishCycle()
}

func (b *Batched) finishCycle() {
	if b.elapsed == b.pollAt {
		b.poll(b.pollMask)
		if b.vector == irqVector && b.state.NMI {
			b.vector = nmiVector
			b.state.P = b.bus.ReadWord(nmiVector)
		}
	}
	if b.remaining > 0 {
		return
	}
	if b.clearing {
		b.state.IRQ = false
		b.state.NMI = false
	}
	b.exec = Fetch
}

func (b *Batched) boot() int {
	b.state.S = 0xfd
	b.state.Flags |= FlagI | FlagU
	b.state.P = b.bus.ReadWord(resetVector)
	b.clearing = true
	return 7
}

func (b *Batched) push(v uint8) {
	b.bus.Write(stackAddr(b.state.S), v)
	b.state.S--
}

func (b *Batched) pull() uint8 {
	b.state.S++
	return b.bus.Read(stackAddr(b.state.S))
}

func (b *Batched) fetchPC() uint8 {
	v := b.bus.Read(b.state.P)
	b.state.P++
	return v
}

func (b *Batched) fetchWordPC() uint16 {
	v := b.bus.ReadWord(b.state.P)
	b.state.P += 2
	return v
}

// readZeroPageWord reads a pointer that wraps inside the zero page.
func (b *Batched) readZeroPageWord(ptr uint8) uint16 {
	lo := b.bus.Read(uint16(ptr))
	hi := b.bus.Read(uint16(ptr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

func (b *Batched) interrupt(software bool) int {
	s := &b.state
	b.pollAt = 5
	b.pollMask = s.getFlag(FlagI)
	b.clearing = true

	b.push(uint8(s.P >> 8))
	b.push(uint8(s.P))
	flags := s.Flags | FlagU
	if software {
		flags |= FlagB
	} else {
		flags &^= FlagB
	}
	b.push(flags)
	s.setFlag(FlagI, true)

	vector := irqVector
	if s.NMI {
		vector = nmiVector
	}
	b.vector = vector
	s.P = b.bus.ReadWord(vector)
	return 7
}

// address resolves the operand of prog into b.acc and returns the cycles
// the addressing took, opcode fetch included.
func (b *Batched) address(prog *program) int {
	s := &b.state
	b.acc = access{}
	a := &b.acc

	switch prog.mode {
	case ModeImmediate:
		a.operand = b.fetchPC()
		return 2
	case ModeZeroPage:
		a.addr = uint16(b.fetchPC())
		return 2
	case ModeZeroPageX:
		a.addr = uint16(b.fetchPC() + s.X)
		return 3
	case ModeZeroPageY:
		a.addr = uint16(b.fetchPC() + s.Y)
		return 3
	case ModeAbsolute:
		a.addr = b.fetchWordPC()
		return 3
	case ModeAbsoluteX:
		return 3 + b.index(b.fetchWordPC(), s.X, prog.write)
	case ModeAbsoluteY:
		return 3 + b.index(b.fetchWordPC(), s.Y, prog.write)
	case ModeIndirect:
		ptr := b.fetchWordPC()
		lo := b.bus.Read(ptr)
		hi := b.bus.Read(ptr&0xff00 | (ptr+1)&0x00ff)
		a.addr = uint16(hi)<<8 | uint16(lo)
		return 5
	case ModeIndexedIndirect:
		a.addr = b.readZeroPageWord(b.fetchPC() + s.X)
		return 5
	case ModeIndirectIndexed:
		base := b.readZeroPageWord(b.fetchPC())
		return 4 + b.index(base, s.Y, prog.write)
	}
	return 1
}

// index adds idx to base and reports the fix-up cycle.
func (b *Batched) index(base uint16, idx uint8, write bool) int {
	a := &b.acc
	a.baseHi = uint8(base >> 8)
	a.addr = base + uint16(idx)
	a.crossed = isDiffPage(base, a.addr)
	if a.crossed || write {
		return 1
	}
	return 0
}

// run executes prog and returns its cycle count.
func (b *Batched) run(prog *program) int {
	s := &b.state
	u := &b.u
	b.pollMask = s.getFlag(FlagI)

	var total int
	switch prog.kind {
	case kindImplied:
		prog.implied(u)
		total = 2
	case kindRead:
		total = b.address(prog)
		if prog.mode == ModeImmediate {
			prog.read(u, b.acc.operand)
			break
		}
		prog.read(u, b.bus.Read(b.acc.addr))
		total++
	case kindStore:
		total = b.address(prog) + 1
		v := prog.store(u, &b.acc)
		b.bus.Write(b.acc.addr, v)
	case kindModify:
		total = b.address(prog) + 3
		addr := b.acc.addr
		v := b.bus.Read(addr)
		b.bus.Write(addr, v)
		b.bus.Write(addr, prog.modify(u, v))
	case kindJump:
		total = b.address(prog)
		s.P = b.acc.addr
	case kindBranch:
		return b.branch(prog)
	case kindPush:
		b.push(prog.push(s))
		total = 3
	case kindPull:
		prog.read(u, b.pull())
		total = 4
	case kindJSR:
		lo := b.fetchPC()
		b.push(uint8(s.P >> 8))
		b.push(uint8(s.P))
		hi := b.bus.Read(s.P)
		s.P = uint16(hi)<<8 | uint16(lo)
		total = 6
	case kindRTS:
		lo := b.pull()
		hi := b.pull()
		s.P = (uint16(hi)<<8 | uint16(lo)) + 1
		total = 6
	case kindRTI:
		plp(u, b.pull())
		lo := b.pull()
		hi := b.pull()
		s.P = uint16(hi)<<8 | uint16(lo)
		b.pollMask = s.getFlag(FlagI)
		total = 6
	case kindBRK:
		s.P++
		return b.interrupt(true)
	}

	b.pollAt = total
	return total
}

func (b *Batched) branch(prog *program) int {
	s := &b.state
	offset := b.fetchPC()
	b.pollAt = 2
	if !prog.branch(s) {
		return 2
	}
	target := s.P + uint16(int8(offset))
	crossed := isDiffPage(s.P, target)
	s.P = target
	if crossed {
		b.pollAt = 4
		return 4
	}
	return 3
}
