package cpu

// Operation machines. Steps are named after what they do with the byte
// handed to them by the previous bus cycle.

func impliedStart(m *machine, _ uint8) bool {
	return m.readLast(m.P, impliedApply)
}

func impliedApply(m *machine, _ uint8) bool {
	m.prog.implied(&m.alu)
	return true
}

func readApplyOperand(m *machine) bool {
	m.prog.read(&m.alu, m.operand)
	return true
}

func readDeref(m *machine) bool {
	return m.readLast(m.addr, readApply)
}

func readApply(m *machine, v uint8) bool {
	m.prog.read(&m.alu, v)
	return true
}

func storeResolved(m *machine) bool {
	v := m.prog.store(&m.alu, &m.access)
	return m.writeLast(m.addr, v, done)
}

// read-modify-write puts the unmodified value back on the bus before the
// result.
func modifyResolved(m *machine) bool {
	return m.read(m.addr, modifyWriteBack)
}

func modifyWriteBack(m *machine, v uint8) bool {
	m.operand = v
	return m.write(m.addr, v, modifyWriteResult)
}

func modifyWriteResult(m *machine, _ uint8) bool {
	return m.writeLast(m.addr, m.prog.modify(&m.alu, m.operand), done)
}

func jump(m *machine) bool {
	m.P = m.addr
	return true
}

func branchStart(m *machine, _ uint8) bool {
	pc := m.P
	m.P++
	return m.readLast(pc, branchOffset)
}

func branchOffset(m *machine, v uint8) bool {
	if !m.prog.branch(m.State) {
		return true
	}
	m.addr = m.P + uint16(int8(v))
	return m.read(m.P, branchTaken)
}

// a taken branch that stays on its page doesn't poll interrupts again
func branchTaken(m *machine, _ uint8) bool {
	if !isDiffPage(m.P, m.addr) {
		m.P = m.addr
		return true
	}
	return m.readLast(m.P&0xff00|m.addr&0x00ff, branchFixed)
}

func branchFixed(m *machine, _ uint8) bool {
	m.P = m.addr
	return true
}

func (m *machine) push(v uint8, next step) bool {
	addr := stackAddr(m.S)
	m.S--
	return m.write(addr, v, next)
}

func pushStart(m *machine, _ uint8) bool {
	return m.read(m.P, pushValue)
}

func pushValue(m *machine, _ uint8) bool {
	addr := stackAddr(m.S)
	m.S--
	return m.writeLast(addr, m.prog.push(m.State), done)
}

func pullStart(m *machine, _ uint8) bool {
	return m.read(m.P, pullStackDummy)
}

func pullStackDummy(m *machine, _ uint8) bool {
	return m.read(stackAddr(m.S), pullValue)
}

func pullValue(m *machine, _ uint8) bool {
	m.S++
	return m.readLast(stackAddr(m.S), pullApply)
}

func pullApply(m *machine, v uint8) bool {
	m.prog.read(&m.alu, v)
	return true
}

func jsrStart(m *machine, _ uint8) bool {
	return m.fetchPC(jsrStackDummy)
}

func jsrStackDummy(m *machine, v uint8) bool {
	m.lo = v
	return m.read(stackAddr(m.S), jsrPushHi)
}

func jsrPushHi(m *machine, _ uint8) bool {
	return m.push(uint8(m.P>>8), jsrPushLo)
}

func jsrPushLo(m *machine, _ uint8) bool {
	return m.push(uint8(m.P), jsrFetchHi)
}

func jsrFetchHi(m *machine, _ uint8) bool {
	return m.readLast(m.P, jsrJump)
}

func jsrJump(m *machine, v uint8) bool {
	m.P = uint16(v)<<8 | uint16(m.lo)
	return true
}

func rtsStart(m *machine, _ uint8) bool {
	return m.read(m.P, rtsStackDummy)
}

func rtsStackDummy(m *machine, _ uint8) bool {
	return m.read(stackAddr(m.S), rtsPullLo)
}

func rtsPullLo(m *machine, _ uint8) bool {
	m.S++
	return m.read(stackAddr(m.S), rtsPullHi)
}

func rtsPullHi(m *machine, v uint8) bool {
	m.lo = v
	m.S++
	return m.read(stackAddr(m.S), rtsReturn)
}

// the pulled address points at the last byte of JSR
func rtsReturn(m *machine, v uint8) bool {
	m.P = uint16(v)<<8 | uint16(m.lo)
	pc := m.P
	m.P++
	return m.readLast(pc, done)
}

func rtiStart(m *machine, _ uint8) bool {
	return m.read(m.P, rtiStackDummy)
}

func rtiStackDummy(m *machine, _ uint8) bool {
	return m.read(stackAddr(m.S), rtiPullFlags)
}

func rtiPullFlags(m *machine, _ uint8) bool {
	m.S++
	return m.read(stackAddr(m.S), rtiPullLo)
}

func rtiPullLo(m *machine, v uint8) bool {
	plp(&m.alu, v)
	m.S++
	return m.read(stackAddr(m.S), rtiPullHi)
}

func rtiPullHi(m *machine, v uint8) bool {
	m.lo = v
	m.S++
	return m.readLast(stackAddr(m.S), rtiReturn)
}

func rtiReturn(m *machine, v uint8) bool {
	m.P = uint16(v)<<8 | uint16(m.lo)
	return true
}

// BRK skips its signature byte. Hardware interrupts start after an opcode
// fetch that was thrown away and leave the program counter alone.

func brkStart(m *machine, _ uint8) bool {
	m.software = true
	return m.fetchPC(interruptPushHi)
}

func interruptStart(m *machine, _ uint8) bool {
	m.software = false
	return m.read(m.P, interruptPushHi)
}

func interruptPushHi(m *machine, _ uint8) bool {
	return m.push(uint8(m.P>>8), interruptPushLo)
}

func interruptPushLo(m *machine, _ uint8) bool {
	return m.push(uint8(m.P), interruptPushFlags)
}

func interruptPushFlags(m *machine, _ uint8) bool {
	flags := m.Flags | FlagU
	if m.software {
		flags |= FlagB
	} else {
		flags &^= FlagB
	}
	m.push(flags, interruptVectorLo)
	// an NMI latched here takes over the vector
	m.res.PollInterrupts = true
	return false
}

func interruptVectorLo(m *machine, _ uint8) bool {
	m.setFlag(FlagI, true)
	m.vector = irqVector
	if m.NMI {
		m.vector = nmiVector
	}
	return m.read(m.vector, interruptVectorHi)
}

func interruptVectorHi(m *machine, v uint8) bool {
	m.lo = v
	return m.read(m.vector+1, interruptJump)
}

// the first instruction of the handler always runs before the next
// interrupt, so the vector fetch doesn't poll
func interruptJump(m *machine, v uint8) bool {
	m.P = uint16(v)<<8 | uint16(m.lo)
	m.IRQ = false
	m.NMI = false
	return true
}

// Reset runs as a machine of its own. The stack pointer is decremented
// three times from zero while the stack is read.
var bootProgram = program{entry: bootStart}

func bootStart(m *machine, _ uint8) bool {
	return m.read(m.P, bootPCDummy)
}

func bootPCDummy(m *machine, _ uint8) bool {
	m.S = 0
	return m.read(m.P, bootStackDummy)
}

func bootStackDummy(m *machine, _ uint8) bool {
	addr := stackAddr(m.S)
	m.S--
	if m.S == 0xfd {
		return m.read(addr, bootVectorLo)
	}
	return m.read(addr, bootStackDummy)
}

func bootVectorLo(m *machine, _ uint8) bool {
	m.Flags |= FlagI | FlagU
	return m.read(resetVector, bootVectorHi)
}

func bootVectorHi(m *machine, v uint8) bool {
	m.lo = v
	return m.read(resetVector+1, bootJump)
}

func bootJump(m *machine, v uint8) bool {
	m.P = uint16(v)<<8 | uint16(m.lo)
	m.IRQ = false
	m.NMI = false
	return true
}
