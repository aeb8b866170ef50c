package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newALU(s State) *alu {
	return &alu{State: &s, decimal: true}
}

func Test_ADC(t *testing.T) {
	type testArgs struct {
		initA     uint8
		operand   uint8
		initP     uint8
		noDecimal bool
		expectedA uint8
		expectedP uint8
	}

	testDo := func(t *testing.T, in testArgs) {
		u := newALU(State{A: in.initA, Flags: in.initP})
		u.decimal = !in.noDecimal

		adc(u, in.operand)

		assert.Equal(t, in.expectedA, u.A, "A register")
		assert.Equal(t, in.expectedP, u.Flags, "P register")
	}

	t.Run("zero result, no carry", func(t *testing.T) {
		testDo(t, testArgs{expectedP: FlagZ})
	})

	t.Run("simple addition, no carry", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x10, operand: 0x20, expectedA: 0x30})
	})

	t.Run("overflow with carry set", func(t *testing.T) {
		testDo(t, testArgs{initA: 0xff, operand: 0x01, expectedA: 0, expectedP: FlagZ | FlagC})
	})

	t.Run("negative result with overflow", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x7f, operand: 0x01, expectedA: 0x80, expectedP: FlagN | FlagV})
	})

	t.Run("carry in", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x7f, initP: FlagC, expectedA: 0x80, expectedP: FlagN | FlagV})
	})

	t.Run("two negatives", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x80, operand: 0x80, expectedA: 0, expectedP: FlagZ | FlagC | FlagV})
	})

	t.Run("decimal 58+46", func(t *testing.T) {
		testDo(t, testArgs{
			initA:     0x58,
			operand:   0x46,
			initP:     FlagD,
			expectedA: 0x04,
			expectedP: FlagD | FlagC | FlagN | FlagV,
		})
	})

	t.Run("decimal 09+01", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x09, operand: 0x01, initP: FlagD, expectedA: 0x10, expectedP: FlagD})
	})

	t.Run("decimal 99+01, zero flag follows the binary sum", func(t *testing.T) {
		testDo(t, testArgs{
			initA:     0x99,
			operand:   0x01,
			initP:     FlagD,
			expectedA: 0x00,
			expectedP: FlagD | FlagC | FlagN,
		})
	})

	t.Run("decimal flag ignored", func(t *testing.T) {
		testDo(t, testArgs{
			initA:     0x58,
			operand:   0x46,
			initP:     FlagD,
			noDecimal: true,
			expectedA: 0x9e,
			expectedP: FlagD | FlagN | FlagV,
		})
	})
}

func Test_SBC(t *testing.T) {
	type testArgs struct {
		initA     uint8
		operand   uint8
		initP     uint8
		expectedA uint8
		expectedP uint8
	}

	testDo := func(t *testing.T, in testArgs) {
		u := newALU(State{A: in.initA, Flags: in.initP})

		sbc(u, in.operand)

		assert.Equal(t, in.expectedA, u.A, "A register")
		assert.Equal(t, in.expectedP, u.Flags, "P register")
	}

	t.Run("no borrow", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x10, operand: 0x10, initP: FlagC, expectedA: 0, expectedP: FlagZ | FlagC})
	})

	t.Run("borrow", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x10, operand: 0x10, expectedA: 0xff, expectedP: FlagN})
	})

	t.Run("overflow", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x50, operand: 0xb0, initP: FlagC, expectedA: 0xa0, expectedP: FlagN | FlagV})
	})

	t.Run("decimal 46-12", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x46, operand: 0x12, initP: FlagD | FlagC, expectedA: 0x34, expectedP: FlagD | FlagC})
	})

	t.Run("decimal 40-01", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x40, operand: 0x01, initP: FlagD | FlagC, expectedA: 0x39, expectedP: FlagD | FlagC})
	})

	t.Run("decimal 00-01", func(t *testing.T) {
		testDo(t, testArgs{initA: 0x00, operand: 0x01, initP: FlagD | FlagC, expectedA: 0x99, expectedP: FlagD | FlagN})
	})
}

func Test_Compare(t *testing.T) {
	u := newALU(State{A: 0x10, X: 0x20, Y: 0x30})

	cmp(u, 0x10)
	assert.Equal(t, FlagZ|FlagC, u.Flags)
	cpx(u, 0x30)
	assert.Equal(t, FlagN, u.Flags)
	cpy(u, 0x01)
	assert.Equal(t, FlagC, u.Flags)
}

func Test_BIT(t *testing.T) {
	u := newALU(State{A: 0x01})
	bit(u, 0xc0)
	assert.Equal(t, FlagZ|FlagN|FlagV, u.Flags)
	assert.Equal(t, uint8(0x01), u.A)
}

func Test_Shifts(t *testing.T) {
	t.Run("ASL", func(t *testing.T) {
		u := newALU(State{})
		assert.Equal(t, uint8(0x02), asl(u, 0x81))
		assert.Equal(t, FlagC, u.Flags)
	})

	t.Run("LSR", func(t *testing.T) {
		u := newALU(State{})
		assert.Equal(t, uint8(0x00), lsr(u, 0x01))
		assert.Equal(t, FlagC|FlagZ, u.Flags)
	})

	t.Run("ROL through carry", func(t *testing.T) {
		u := newALU(State{Flags: FlagC})
		assert.Equal(t, uint8(0x01), rol(u, 0x80))
		assert.Equal(t, FlagC, u.Flags)
	})

	t.Run("ROR through carry", func(t *testing.T) {
		u := newALU(State{Flags: FlagC})
		assert.Equal(t, uint8(0x80), ror(u, 0x00))
		assert.Equal(t, FlagN, u.Flags)
	})
}

func Test_Undocumented(t *testing.T) {
	t.Run("SLO", func(t *testing.T) {
		u := newALU(State{A: 0x01})
		assert.Equal(t, uint8(0x02), slo(u, 0x81))
		assert.Equal(t, uint8(0x03), u.A)
		assert.Equal(t, FlagC, u.Flags)
	})

	t.Run("DCP", func(t *testing.T) {
		u := newALU(State{A: 0x10})
		assert.Equal(t, uint8(0x10), dcp(u, 0x11))
		assert.Equal(t, FlagZ|FlagC, u.Flags)
	})

	t.Run("ISC", func(t *testing.T) {
		u := newALU(State{A: 0x10, Flags: FlagC})
		assert.Equal(t, uint8(0x10), isc(u, 0x0f))
		assert.Equal(t, uint8(0), u.A)
		assert.Equal(t, FlagZ|FlagC, u.Flags)
	})

	t.Run("ALR", func(t *testing.T) {
		u := newALU(State{A: 0xff})
		alr(u, 0x03)
		assert.Equal(t, uint8(0x01), u.A)
		assert.Equal(t, FlagC, u.Flags)
	})

	t.Run("ANC", func(t *testing.T) {
		u := newALU(State{A: 0xff})
		anc(u, 0x80)
		assert.Equal(t, FlagN|FlagC, u.Flags)
	})

	t.Run("ARR", func(t *testing.T) {
		u := newALU(State{A: 0xff, Flags: FlagC})
		arr(u, 0xff)
		assert.Equal(t, uint8(0xff), u.A)
		assert.Equal(t, FlagN|FlagC, u.Flags)

		u = newALU(State{A: 0xff})
		arr(u, 0x40)
		assert.Equal(t, uint8(0x20), u.A)
		assert.Equal(t, FlagV, u.Flags)
	})

	t.Run("ARR decimal", func(t *testing.T) {
		u := newALU(State{A: 0x05, Flags: FlagD})
		arr(u, 0xff)
		assert.Equal(t, uint8(0x08), u.A)
		assert.Equal(t, FlagD, u.Flags)
	})

	t.Run("AXS", func(t *testing.T) {
		u := newALU(State{A: 0x0f, X: 0xf3})
		axs(u, 0x02)
		assert.Equal(t, uint8(0x01), u.X)
		assert.Equal(t, FlagC, u.Flags)
	})

	t.Run("ANE", func(t *testing.T) {
		u := newALU(State{X: 0xff})
		ane(u, 0xff)
		assert.Equal(t, uint8(0xee), u.A)
		assert.Equal(t, FlagN, u.Flags)
	})

	t.Run("LXA", func(t *testing.T) {
		u := newALU(State{A: 0x01})
		lxa(u, 0x0f)
		assert.Equal(t, uint8(0x0f), u.A)
		assert.Equal(t, uint8(0x0f), u.X)
	})

	t.Run("LAS", func(t *testing.T) {
		u := newALU(State{S: 0xf0})
		las(u, 0x3c)
		assert.Equal(t, uint8(0x30), u.A)
		assert.Equal(t, uint8(0x30), u.X)
		assert.Equal(t, uint8(0x30), u.S)
	})
}

func Test_UnstableStores(t *testing.T) {
	t.Run("same page", func(t *testing.T) {
		u := newALU(State{X: 0xff})
		a := &access{addr: 0x1280, baseHi: 0x12}
		assert.Equal(t, uint8(0x13), shx(u, a))
		assert.Equal(t, uint16(0x1280), a.addr)
	})

	t.Run("page crossed", func(t *testing.T) {
		u := newALU(State{X: 0x0f})
		a := &access{addr: 0x1305, baseHi: 0x12, crossed: true}
		assert.Equal(t, uint8(0x03), shx(u, a))
		assert.Equal(t, uint16(0x0305), a.addr)
	})

	t.Run("TAS", func(t *testing.T) {
		u := newALU(State{A: 0xf0, X: 0x3f})
		a := &access{addr: 0x00ff}
		assert.Equal(t, uint8(0x00), tas(u, a))
		assert.Equal(t, uint8(0x30), u.S)
	})
}

func Test_StatusOnStack(t *testing.T) {
	s := &State{}
	assert.Equal(t, FlagB|FlagU, php(s))

	u := newALU(State{})
	plp(u, 0xff)
	assert.Equal(t, uint8(0xef), u.Flags)
}
