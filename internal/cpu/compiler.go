package cpu

import "fmt"

type kind uint8

const (
	kindInvalid kind = iota
	kindImplied
	kindRead
	kindStore
	kindModify
	kindBranch
	kindJump
	kindPush
	kindPull
	kindJSR
	kindRTS
	kindRTI
	kindBRK
)

// program is the compiled form of one opcode: an addressing machine fused
// with an operation machine. Programs are built once and shared by every
// engine; nothing in them changes after package initialisation.
type program struct {
	op   Op
	mode Mode
	kind kind

	entry    step                 // first step after the opcode fetch
	resolved func(m *machine) bool // called by the addressing machine

	// write forces the fix-up cycle of indexed modes even when the
	// index does not carry.
	write bool
	// pollOnAddress makes the last read of the addressing machine the
	// interrupt polling point, for operations that use the address as is.
	pollOnAddress bool

	implied impliedFunc
	read    readFunc
	store   storeFunc
	modify  modifyFunc
	branch  branchFunc
	push    func(s *State) uint8
}

var (
	readOps = map[Op]readFunc{
		OpADC: adc, OpAND: and, OpBIT: bit, OpCMP: cmp, OpCPX: cpx, OpCPY: cpy,
		OpEOR: eor, OpLDA: lda, OpLDX: ldx, OpLDY: ldy, OpORA: ora, OpSBC: sbc,
		OpNOP: nopRead, OpLAX: lax, OpANC: anc, OpALR: alr, OpARR: arr, OpAXS: axs,
		OpANE: ane, OpLXA: lxa, OpLAS: las,
	}
	storeOps = map[Op]storeFunc{
		OpSTA: sta, OpSTX: stx, OpSTY: sty, OpSAX: sax,
		OpSHA: sha, OpSHX: shx, OpSHY: shy, OpTAS: tas,
	}
	modifyOps = map[Op]modifyFunc{
		OpASL: asl, OpLSR: lsr, OpROL: rol, OpROR: ror, OpINC: inc, OpDEC: dec,
		OpSLO: slo, OpRLA: rla, OpSRE: sre, OpRRA: rra, OpDCP: dcp, OpISC: isc,
	}
	impliedOps = map[Op]impliedFunc{
		OpCLC: clc, OpCLD: cld, OpCLI: cli, OpCLV: clv, OpSEC: sec, OpSED: sed,
		OpSEI: sei, OpNOP: nop, OpTAX: tax, OpTAY: tay, OpTSX: tsx, OpTXA: txa,
		OpTXS: txs, OpTYA: tya, OpINX: inx, OpINY: iny, OpDEX: dex, OpDEY: dey,
	}
	branchOps = map[Op]branchFunc{
		OpBPL: bpl, OpBMI: bmi, OpBVC: bvc, OpBVS: bvs,
		OpBCC: bcc, OpBCS: bcs, OpBNE: bne, OpBEQ: beq,
	}
)

var programs = compileAll()

// interruptProgram services IRQ and NMI. The vector is picked from the NMI
// latch when the sequence reaches it.
var interruptProgram = program{kind: kindBRK, entry: interruptStart}

func compileAll() [256]program {
	var table [256]program
	for i := range table {
		prog, err := compile(Lookup(uint8(i)))
		if err != nil {
			panic(fmt.Errorf("opcode $%02X: %w", i, err))
		}
		table[i] = prog
	}
	return table
}

func compile(ins Instruction) (program, error) {
	prog := program{op: ins.Op, mode: ins.Mode}
	if ins.Op == OpInvalid {
		return prog, nil
	}

	if ins.Mode == ModeImplied || ins.Mode == ModeAccumulator {
		return compileImplied(prog)
	}

	if fn, ok := branchOps[ins.Op]; ok {
		if ins.Mode != ModeRelative {
			return prog, fmt.Errorf("branch %s needs relative addressing, got %s", ins.Op, ins.Mode)
		}
		prog.kind = kindBranch
		prog.branch = fn
		prog.entry = branchStart
		return prog, nil
	}

	entry := addressing[ins.Mode]
	if entry == nil {
		return prog, fmt.Errorf("no addressing machine for %s", ins)
	}
	prog.entry = entry

	switch ins.Op {
	case OpJMP:
		prog.kind = kindJump
		prog.pollOnAddress = true
		prog.resolved = jump
		return prog, nil
	case OpJSR:
		if ins.Mode != ModeAbsolute {
			return prog, fmt.Errorf("JSR needs absolute addressing, got %s", ins.Mode)
		}
		prog.kind = kindJSR
		prog.entry = jsrStart
		return prog, nil
	}

	if fn, ok := readOps[ins.Op]; ok {
		prog.kind = kindRead
		prog.read = fn
		prog.resolved = readDeref
		if ins.Mode == ModeImmediate {
			prog.resolved = readApplyOperand
		}
		return prog, nil
	}
	if ins.Mode == ModeImmediate {
		return prog, fmt.Errorf("%s can't take an immediate operand", ins.Op)
	}
	if fn, ok := storeOps[ins.Op]; ok {
		prog.kind = kindStore
		prog.store = fn
		prog.write = true
		prog.resolved = storeResolved
		return prog, nil
	}
	if fn, ok := modifyOps[ins.Op]; ok {
		prog.kind = kindModify
		prog.modify = fn
		prog.write = true
		prog.resolved = modifyResolved
		return prog, nil
	}

	return prog, fmt.Errorf("no operation machine for %s", ins)
}

func compileImplied(prog program) (program, error) {
	switch prog.op {
	case OpPHA, OpPHP:
		prog.kind = kindPush
		prog.entry = pushStart
		prog.push = pha
		if prog.op == OpPHP {
			prog.push = php
		}
		return prog, nil
	case OpPLA, OpPLP:
		prog.kind = kindPull
		prog.entry = pullStart
		prog.read = pla
		if prog.op == OpPLP {
			prog.read = plp
		}
		return prog, nil
	case OpRTS:
		prog.kind = kindRTS
		prog.entry = rtsStart
		return prog, nil
	case OpRTI:
		prog.kind = kindRTI
		prog.entry = rtiStart
		return prog, nil
	case OpBRK:
		prog.kind = kindBRK
		prog.entry = brkStart
		return prog, nil
	}

	prog.kind = kindImplied
	prog.entry = impliedStart

	if prog.mode == ModeAccumulator {
		fn, ok := modifyOps[prog.op]
		if !ok {
			return prog, fmt.Errorf("%s can't work on the accumulator", prog.op)
		}
		prog.implied = func(u *alu) { u.A = fn(u, u.A) }
		return prog, nil
	}

	fn, ok := impliedOps[prog.op]
	if !ok {
		return prog, fmt.Errorf("%s needs an operand", prog.op)
	}
	prog.implied = fn
	return prog, nil
}
