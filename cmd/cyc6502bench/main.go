package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nevisdale/cyc6502/internal/bus"
	"github.com/nevisdale/cyc6502/internal/cpu"
	"github.com/nevisdale/cyc6502/internal/disasm"
	"github.com/pkg/profile"
)

// builtinProgram is loaded at $0200 when no image is given: a loop over
// loads, decimal arithmetic, stores, read-modify-writes, the stack and a
// subroutine.
var builtinProgram = []uint8{
	0xa2, 0x00,       // LDX #$00
	0xa0, 0x40,       // LDY #$40
	0xf8,             // SED
	0xbd, 0x00, 0x03, // LDA $0300,X
	0x69, 0x19,       // ADC #$19
	0x9d, 0xc8, 0x03, // STA $03C8,X
	0x1e, 0x00, 0x04, // ASL $0400,X
	0x48,             // PHA
	0x20, 0x1d, 0x02, // JSR $021D
	0x68,             // PLA
	0xe8,             // INX
	0x88,             // DEY
	0xd0, 0xec,       // BNE $0205
	0xd8,             // CLD
	0x4c, 0x00, 0x02, // JMP $0200
	0xe6, 0x10,       // INC $10
	0xb1, 0x10,       // LDA ($10),Y
	0x60,             // RTS
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("couldn't read the configuration: %s\n", err.Error())
	}

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	for _, kind := range cfg.kinds() {
		b, err := loadBus(cfg)
		if err != nil {
			log.Fatalf("couldn't load the image: %s\n", err.Error())
		}

		res := run(b, kind, cfg)
		log.Println(res)
	}
}

// benchBus is a processor bus that counts its traffic.
type benchBus interface {
	cpu.Bus
	Traffic() (reads, writes uint64)
}

// loadBus builds the address space for one run: the NROM console map for an
// iNES image, flat memory otherwise.
func loadBus(cfg Config) (benchBus, error) {
	if cfg.INES {
		img, err := bus.ReadImageFile(cfg.Image)
		if err != nil {
			return nil, err
		}
		nrom, err := bus.NewNROM(img)
		if err != nil {
			return nil, err
		}
		return nrom, nil
	}

	data := builtinProgram
	if cfg.Image != "" {
		var err error
		if data, err = os.ReadFile(cfg.Image); err != nil {
			return nil, fmt.Errorf("couldn't read the image: %w", err)
		}
	}

	mem := bus.NewMemory()
	origin := uint16(cfg.Origin)
	if err := mem.Load(origin, data); err != nil {
		return nil, err
	}
	// an image that covers the vectors brings its own
	if int(origin)+len(data) <= 0xfffc {
		mem.PokeWord(0xfffc, origin)
	}
	return mem, nil
}

type result struct {
	kind     cpu.Kind
	cycles   uint64
	elapsed  time.Duration
	reads    uint64
	writes   uint64
	invalid  uint16
	final    string
	halted   bool
	executed uint64
}

func (r result) String() string {
	mhz := float64(r.cycles) / r.elapsed.Seconds() / 1e6
	s := fmt.Sprintf("%s: %d cycles, %d instructions in %s (%.2f MHz), %d reads, %d writes, %s",
		r.kind, r.cycles, r.executed, r.elapsed, mhz, r.reads, r.writes, r.final)
	if r.halted {
		s += fmt.Sprintf(", halted on invalid opcode at $%04X", r.invalid)
	}
	return s
}

// run drives one engine for at least cfg.Cycles bus cycles and stops at the
// next instruction boundary. An invalid opcode halts the engine and ends the
// run early.
func run(b benchBus, kind cpu.Kind, cfg Config) result {
	e := cpu.New(b, cpu.Config{Kind: kind, NoDecimal: cfg.NoDecimal})
	res := result{kind: kind}
	e.SetInvalidInstructionCallback(func(e cpu.Engine) {
		res.invalid = e.LastInstructionPointer()
		e.Halt()
	})

	traced := 0
	start := time.Now()
	for !e.IsHalt() && (e.Cycles() < cfg.Cycles || e.ExecutionState() != cpu.Fetch) {
		if e.ExecutionState() == cpu.Fetch {
			res.executed++
			if traced < cfg.Trace {
				traced++
				line, _ := disasm.At(b, e.State().P)
				log.Printf("%-32s %s CYC:%d\n", line, e.State(), e.Cycles())
			}
		}
		e.Cycle()
	}
	res.elapsed = time.Since(start)

	res.cycles = e.Cycles()
	res.halted = e.IsHalt()
	res.reads, res.writes = b.Traffic()
	res.final = e.State().String()
	return res
}
