package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transaction struct {
	Type    CycleType
	Address uint16
	Value   uint8
}

func (tr transaction) String() string {
	return fmt.Sprintf("%s %04X %02X", tr.Type, tr.Address, tr.Value)
}

func rd(addr uint16, v uint8) transaction { return transaction{CycleRead, addr, v} }
func wr(addr uint16, v uint8) transaction { return transaction{CycleWrite, addr, v} }

// testBus is 64 KiB of memory that records every transaction.
type testBus struct {
	mem [0x10000]uint8
	log []transaction
}

func (b *testBus) Read(addr uint16) uint8 {
	v := b.mem[addr]
	b.log = append(b.log, rd(addr, v))
	return v
}

func (b *testBus) Write(addr uint16, data uint8) {
	b.mem[addr] = data
	b.log = append(b.log, wr(addr, data))
}

func (b *testBus) ReadWord(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (b *testBus) Peek(addr uint16) uint8 {
	return b.mem[addr]
}

func (b *testBus) Poke(addr uint16, data uint8) {
	b.mem[addr] = data
}

func (b *testBus) load(addr uint16, data ...uint8) {
	copy(b.mem[addr:], data)
}

func (b *testBus) vector(addr, target uint16) {
	b.mem[addr] = uint8(target)
	b.mem[addr+1] = uint8(target >> 8)
}

type busMock struct {
	mock.Mock
}

func (m *busMock) Read(addr uint16) uint8 {
	args := m.Called(addr)
	return args.Get(0).(uint8)
}

func (m *busMock) Write(addr uint16, data uint8) {
	m.Called(addr, data)
}

func (m *busMock) ReadWord(addr uint16) uint16 {
	args := m.Called(addr)
	return args.Get(0).(uint16)
}

func (m *busMock) Peek(addr uint16) uint8 {
	args := m.Called(addr)
	return args.Get(0).(uint8)
}

func (m *busMock) Poke(addr uint16, data uint8) {
	m.Called(addr, data)
}

var engineKinds = []Kind{KindStateMachine, KindBatched}

const programStart = uint16(0x0200)

// newTestEngine boots an engine whose reset vector points at programStart
// and loads code there. The transaction log starts empty.
func newTestEngine(t *testing.T, kind Kind, code ...uint8) (Engine, *testBus) {
	t.Helper()

	bus := &testBus{}
	bus.vector(resetVector, programStart)
	bus.load(programStart, code...)

	e := New(bus, Config{Kind: kind})
	runUntilFetch(t, e)
	require.Equal(t, programStart, e.State().P)
	bus.log = nil
	return e, bus
}

func runUntilFetch(t *testing.T, e Engine) {
	t.Helper()
	for i := 0; e.ExecutionState() != Fetch; i++ {
		require.Less(t, i, 16, "engine never reached fetch")
		e.Cycle()
	}
}

// runInstruction runs one instruction and returns the cycles it took.
func runInstruction(t *testing.T, e Engine) uint64 {
	t.Helper()
	require.Equal(t, Fetch, e.ExecutionState())

	start := e.Cycles()
	e.Cycle()
	runUntilFetch(t, e)
	return e.Cycles() - start
}

func runInstructions(t *testing.T, e Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		runInstruction(t, e)
	}
}
