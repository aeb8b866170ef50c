package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlag(t *testing.T) {
	s := &State{}

	s.setFlag(FlagC, true)
	assert.True(t, s.getFlag(FlagC))

	s.setFlag(FlagC, false)
	assert.False(t, s.getFlag(FlagC))

	s.setFlag(FlagC, true)
	s.setFlag(FlagZ, true)
	s.setFlag(FlagN, true)
	assert.Equal(t, FlagC|FlagZ|FlagN, s.Flags)
}

func TestGetFlag(t *testing.T) {
	s := State{Flags: FlagC | FlagZ | FlagN}

	assert.True(t, s.getFlag(FlagC))
	assert.False(t, s.getFlag(FlagI))
	assert.True(t, s.getFlag(FlagZ))
	assert.True(t, s.getFlag(FlagN))
}

func TestSetFlagsZN(t *testing.T) {
	s := &State{}
	s.setFlagsZN(0)
	assert.Equal(t, FlagZ, s.Flags)
	s.setFlagsZN(0x80)
	assert.Equal(t, FlagN, s.Flags)
	s.setFlagsZN(0x01)
	assert.Zero(t, s.Flags)
}

func TestStateString(t *testing.T) {
	s := &State{A: 0x01, X: 0x02, Y: 0x03, Flags: 0x24, S: 0xfd, P: 0xc000}
	assert.Equal(t, "A:01 X:02 Y:03 P:24 SP:FD PC:C000", s.String())
}

func TestNew(t *testing.T) {
	bus := &testBus{}
	assert.IsType(t, &StateMachine{}, New(bus, Config{}))
	assert.IsType(t, &Batched{}, New(bus, Config{Kind: KindBatched}))
}

func TestReset(t *testing.T) {
	for _, kind := range engineKinds {
		t.Run(kind.String(), func(t *testing.T) {
			bus := &testBus{}
			bus.vector(resetVector, 0xc000)

			e := New(bus, Config{Kind: kind})
			assert.Equal(t, Boot, e.ExecutionState())

			s := e.State()
			s.A, s.X, s.Y, s.S, s.P = 1, 2, 3, 0x42, 0x1234
			s.IRQ = true

			for i := 0; i < 7; i++ {
				require.NotEqual(t, Fetch, e.ExecutionState(), "cycle %d", i)
				e.Cycle()
			}
			assert.Equal(t, Fetch, e.ExecutionState())
			assert.Equal(t, uint64(7), e.Cycles())
			assert.Equal(t, uint16(0xc000), s.P)
			assert.Equal(t, uint8(0xfd), s.S)
			assert.True(t, s.getFlag(FlagI))
			assert.False(t, s.IRQ)
			assert.Equal(t, uint8(1), s.A)

			// from the middle of an instruction
			bus.load(0xc000, 0xee, 0x00, 0x03) // INC $0300
			e.Cycle()
			e.Cycle()
			s.S = 0x10
			e.Reset()
			runUntilFetch(t, e)
			assert.Equal(t, uint16(0xc000), s.P)
			assert.Equal(t, uint8(0xfd), s.S)
		})
	}
}

func TestResetTransactions(t *testing.T) {
	bus := &testBus{}
	bus.vector(resetVector, 0x8000)
	e := NewStateMachine(bus, Config{})
	e.State().P = 0x1234
	e.Reset()
	runUntilFetch(t, e)

	assert.Equal(t, []transaction{
		rd(0x1234, 0), rd(0x1234, 0),
		rd(0x0100, 0), rd(0x01ff, 0), rd(0x01fe, 0),
		rd(0xfffc, 0x00), rd(0xfffd, 0x80),
	}, bus.log)
}

func TestInvalidInstruction(t *testing.T) {
	for _, kind := range engineKinds {
		t.Run(kind.String(), func(t *testing.T) {
			e, _ := newTestEngine(t, kind, 0x02, 0xea)

			var called Engine
			var pc uint16
			e.SetInvalidInstructionCallback(func(e Engine) {
				called = e
				pc = e.LastInstructionPointer()
				e.Halt()
			})

			assert.Equal(t, uint64(1), runInstruction(t, e))
			assert.Same(t, e, called)
			assert.Equal(t, programStart, pc)
			assert.Equal(t, programStart+1, e.State().P)
			assert.True(t, e.IsHalt())

			before := e.Cycles()
			e.Cycle()
			assert.Equal(t, before, e.Cycles())

			e.Resume()
			assert.Equal(t, uint64(2), runInstruction(t, e))
		})
	}
}

func TestInvalidInstructionWithoutCallback(t *testing.T) {
	e, _ := newTestEngine(t, KindStateMachine, 0x02)
	runInstruction(t, e)
	assert.Equal(t, programStart+1, e.State().P)
	assert.Equal(t, Fetch, e.ExecutionState())
}

func TestLastInstructionPointer(t *testing.T) {
	for _, kind := range engineKinds {
		t.Run(kind.String(), func(t *testing.T) {
			e, _ := newTestEngine(t, kind, 0xea, 0xa9, 0x01, 0xea)
			runInstructions(t, e, 2)
			assert.Equal(t, programStart+1, e.LastInstructionPointer())
		})
	}
}

func TestHalt(t *testing.T) {
	t.Run("state machine stops before reads", func(t *testing.T) {
		e, bus := newTestEngine(t, KindStateMachine, 0xad, 0x00, 0x03) // LDA $0300
		bus.mem[0x0300] = 0x42

		e.Cycle()
		e.Halt()
		for i := 0; i < 5; i++ {
			e.Cycle()
		}
		assert.Equal(t, uint64(8), e.Cycles())
		assert.Len(t, bus.log, 1)

		e.Resume()
		runUntilFetch(t, e)
		assert.Equal(t, uint8(0x42), e.State().A)
	})

	t.Run("state machine finishes writes", func(t *testing.T) {
		e, bus := newTestEngine(t, KindStateMachine, 0xee, 0x00, 0x03) // INC $0300
		bus.mem[0x0300] = 0x41

		e.Cycle() // opcode
		e.Cycle() // lo
		e.Cycle() // hi
		e.Cycle() // read
		e.Halt()
		e.Cycle() // dummy write
		e.Cycle() // write
		assert.Equal(t, Fetch, e.ExecutionState())
		assert.Equal(t, uint8(0x42), bus.mem[0x0300])

		e.Cycle()
		assert.Equal(t, Fetch, e.ExecutionState())
		assert.Len(t, bus.log, 6)
	})

	t.Run("batched finishes the instruction", func(t *testing.T) {
		e, bus := newTestEngine(t, KindBatched, 0xad, 0x00, 0x03, 0xea)
		bus.mem[0x0300] = 0x42

		e.Cycle()
		e.Halt()
		assert.True(t, e.IsHalt())
		runUntilFetch(t, e)
		assert.Equal(t, uint64(11), e.Cycles())
		assert.Equal(t, uint8(0x42), e.State().A)

		e.Cycle()
		assert.Equal(t, uint64(11), e.Cycles())
		assert.Equal(t, programStart+3, e.State().P)
	})
}
