package cpu

import "fmt"

// Instruction is the decoded form of an opcode byte.
type Instruction struct {
	Op   Op
	Mode Mode
}

func (ins Instruction) String() string {
	return fmt.Sprintf("%s %s", ins.Op, ins.Mode)
}

// Length is the size of the encoded instruction in bytes.
func (ins Instruction) Length() int {
	return InstructionLength(ins.Mode)
}

var decodeTable = buildDecodeTable()

// Lookup decodes an opcode byte. Opcodes that lock up the processor decode
// to OpInvalid.
func Lookup(opcode uint8) Instruction {
	return decodeTable[opcode]
}

func buildDecodeTable() [256]Instruction {
	const (
		imp = ModeImplied
		acc = ModeAccumulator
		imm = ModeImmediate
		zp  = ModeZeroPage
		zpx = ModeZeroPageX
		zpy = ModeZeroPageY
		abs = ModeAbsolute
		abx = ModeAbsoluteX
		aby = ModeAbsoluteY
		ind = ModeIndirect
		izx = ModeIndexedIndirect
		izy = ModeIndirectIndexed
		rel = ModeRelative
	)

	var table [256]Instruction

	// the regular group: aaabbb01
	gridOps := [8]Op{OpORA, OpAND, OpEOR, OpADC, OpSTA, OpLDA, OpCMP, OpSBC}
	gridModes := [8]Mode{izx, zp, imm, abs, izy, zpx, aby, abx}
	for a, op := range gridOps {
		for b, mode := range gridModes {
			table[a<<5|b<<2|0x01] = Instruction{op, mode}
		}
	}

	overrides := []struct {
		opcode uint8
		op     Op
		mode   Mode
	}{
		{0x00, OpBRK, imp}, {0x03, OpSLO, izx}, {0x04, OpNOP, zp}, {0x06, OpASL, zp},
		{0x07, OpSLO, zp}, {0x08, OpPHP, imp}, {0x0a, OpASL, acc}, {0x0b, OpANC, imm},
		{0x0c, OpNOP, abs}, {0x0e, OpASL, abs}, {0x0f, OpSLO, abs},

		{0x10, OpBPL, rel}, {0x13, OpSLO, izy}, {0x14, OpNOP, zpx}, {0x16, OpASL, zpx},
		{0x17, OpSLO, zpx}, {0x18, OpCLC, imp}, {0x1a, OpNOP, imp}, {0x1b, OpSLO, aby},
		{0x1c, OpNOP, abx}, {0x1e, OpASL, abx}, {0x1f, OpSLO, abx},

		{0x20, OpJSR, abs}, {0x23, OpRLA, izx}, {0x24, OpBIT, zp}, {0x26, OpROL, zp},
		{0x27, OpRLA, zp}, {0x28, OpPLP, imp}, {0x2a, OpROL, acc}, {0x2b, OpANC, imm},
		{0x2c, OpBIT, abs}, {0x2e, OpROL, abs}, {0x2f, OpRLA, abs},

		{0x30, OpBMI, rel}, {0x33, OpRLA, izy}, {0x34, OpNOP, zpx}, {0x36, OpROL, zpx},
		{0x37, OpRLA, zpx}, {0x38, OpSEC, imp}, {0x3a, OpNOP, imp}, {0x3b, OpRLA, aby},
		{0x3c, OpNOP, abx}, {0x3e, OpROL, abx}, {0x3f, OpRLA, abx},

		{0x40, OpRTI, imp}, {0x43, OpSRE, izx}, {0x44, OpNOP, zp}, {0x46, OpLSR, zp},
		{0x47, OpSRE, zp}, {0x48, OpPHA, imp}, {0x4a, OpLSR, acc}, {0x4b, OpALR, imm},
		{0x4c, OpJMP, abs}, {0x4e, OpLSR, abs}, {0x4f, OpSRE, abs},

		{0x50, OpBVC, rel}, {0x53, OpSRE, izy}, {0x54, OpNOP, zpx}, {0x56, OpLSR, zpx},
		{0x57, OpSRE, zpx}, {0x58, OpCLI, imp}, {0x5a, OpNOP, imp}, {0x5b, OpSRE, aby},
		{0x5c, OpNOP, abx}, {0x5e, OpLSR, abx}, {0x5f, OpSRE, abx},

		{0x60, OpRTS, imp}, {0x63, OpRRA, izx}, {0x64, OpNOP, zp}, {0x66, OpROR, zp},
		{0x67, OpRRA, zp}, {0x68, OpPLA, imp}, {0x6a, OpROR, acc}, {0x6b, OpARR, imm},
		{0x6c, OpJMP, ind}, {0x6e, OpROR, abs}, {0x6f, OpRRA, abs},

		{0x70, OpBVS, rel}, {0x73, OpRRA, izy}, {0x74, OpNOP, zpx}, {0x76, OpROR, zpx},
		{0x77, OpRRA, zpx}, {0x78, OpSEI, imp}, {0x7a, OpNOP, imp}, {0x7b, OpRRA, aby},
		{0x7c, OpNOP, abx}, {0x7e, OpROR, abx}, {0x7f, OpRRA, abx},

		{0x80, OpNOP, imm}, {0x82, OpNOP, imm}, {0x83, OpSAX, izx}, {0x84, OpSTY, zp},
		{0x86, OpSTX, zp}, {0x87, OpSAX, zp}, {0x88, OpDEY, imp}, {0x89, OpNOP, imm},
		{0x8a, OpTXA, imp}, {0x8b, OpANE, imm}, {0x8c, OpSTY, abs}, {0x8e, OpSTX, abs},
		{0x8f, OpSAX, abs},

		{0x90, OpBCC, rel}, {0x93, OpSHA, izy}, {0x94, OpSTY, zpx}, {0x96, OpSTX, zpy},
		{0x97, OpSAX, zpy}, {0x98, OpTYA, imp}, {0x9a, OpTXS, imp}, {0x9b, OpTAS, aby},
		{0x9c, OpSHY, abx}, {0x9e, OpSHX, aby}, {0x9f, OpSHA, aby},

		{0xa0, OpLDY, imm}, {0xa2, OpLDX, imm}, {0xa3, OpLAX, izx}, {0xa4, OpLDY, zp},
		{0xa6, OpLDX, zp}, {0xa7, OpLAX, zp}, {0xa8, OpTAY, imp}, {0xaa, OpTAX, imp},
		{0xab, OpLXA, imm}, {0xac, OpLDY, abs}, {0xae, OpLDX, abs}, {0xaf, OpLAX, abs},

		{0xb0, OpBCS, rel}, {0xb3, OpLAX, izy}, {0xb4, OpLDY, zpx}, {0xb6, OpLDX, zpy},
		{0xb7, OpLAX, zpy}, {0xb8, OpCLV, imp}, {0xba, OpTSX, imp}, {0xbb, OpLAS, aby},
		{0xbc, OpLDY, abx}, {0xbe, OpLDX, aby}, {0xbf, OpLAX, aby},

		{0xc0, OpCPY, imm}, {0xc2, OpNOP, imm}, {0xc3, OpDCP, izx}, {0xc4, OpCPY, zp},
		{0xc6, OpDEC, zp}, {0xc7, OpDCP, zp}, {0xc8, OpINY, imp}, {0xca, OpDEX, imp},
		{0xcb, OpAXS, imm}, {0xcc, OpCPY, abs}, {0xce, OpDEC, abs}, {0xcf, OpDCP, abs},

		{0xd0, OpBNE, rel}, {0xd3, OpDCP, izy}, {0xd4, OpNOP, zpx}, {0xd6, OpDEC, zpx},
		{0xd7, OpDCP, zpx}, {0xd8, OpCLD, imp}, {0xda, OpNOP, imp}, {0xdb, OpDCP, aby},
		{0xdc, OpNOP, abx}, {0xde, OpDEC, abx}, {0xdf, OpDCP, abx},

		{0xe0, OpCPX, imm}, {0xe2, OpNOP, imm}, {0xe3, OpISC, izx}, {0xe4, OpCPX, zp},
		{0xe6, OpINC, zp}, {0xe7, OpISC, zp}, {0xe8, OpINX, imp}, {0xea, OpNOP, imp},
		{0xeb, OpSBC, imm}, {0xec, OpCPX, abs}, {0xee, OpINC, abs}, {0xef, OpISC, abs},

		{0xf0, OpBEQ, rel}, {0xf3, OpISC, izy}, {0xf4, OpNOP, zpx}, {0xf6, OpINC, zpx},
		{0xf7, OpISC, zpx}, {0xf8, OpSED, imp}, {0xfa, OpNOP, imp}, {0xfb, OpISC, aby},
		{0xfc, OpNOP, abx}, {0xfe, OpINC, abx}, {0xff, OpISC, abx},
	}
	for _, o := range overrides {
		table[o.opcode] = Instruction{o.op, o.mode}
	}

	// $x2 lock up the processor
	for _, opcode := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xb2, 0xd2, 0xf2} {
		table[opcode] = Instruction{OpInvalid, imp}
	}

	return table
}
