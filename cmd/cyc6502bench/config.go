package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nevisdale/cyc6502/internal/cpu"
)

const (
	engineStateMachine = "statemachine"
	engineBatched      = "batched"
	engineBoth         = "both"
)

var errNoCycles = errors.New("cycles must be positive")

// Config is what a bench run needs. It comes from the defaults, then the
// JSON config file, then the flags given on the command line.
type Config struct {
	// Image is a raw binary or an iNES file. Empty runs the builtin program.
	Image string `json:"image"`
	// Origin is where a raw image is loaded.
	Origin uint `json:"origin"`
	INES   bool `json:"ines"`

	Engine    string `json:"engine"`
	Cycles    uint64 `json:"cycles"`
	NoDecimal bool   `json:"no_decimal"`

	Profile string `json:"profile"` // "", "cpu" or "mem"
	// Trace logs the first Trace instructions of every run.
	Trace int `json:"trace"`
}

func defaultConfig() Config {
	return Config{
		Origin: 0x0200,
		Engine: engineBoth,
		Cycles: 10_000_000,
	}
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("couldn't parse config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Engine {
	case engineStateMachine, engineBatched, engineBoth:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.Cycles == 0 {
		return errNoCycles
	}
	if c.Origin > 0xffff {
		return fmt.Errorf("origin $%X is outside the address space", c.Origin)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("unknown profile %q", c.Profile)
	}
	if c.Trace < 0 {
		c.Trace = 0
	}
	return nil
}

// kinds lists the engines to run, in order.
func (c *Config) kinds() []cpu.Kind {
	switch c.Engine {
	case engineStateMachine:
		return []cpu.Kind{cpu.KindStateMachine}
	case engineBatched:
		return []cpu.Kind{cpu.KindBatched}
	}
	return []cpu.Kind{cpu.KindStateMachine, cpu.KindBatched}
}

func parseConfig(args []string) (Config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("cyc6502bench", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON config file")
	fs.StringVar(&cfg.Image, "image", cfg.Image, "program image, the builtin program if empty")
	fs.UintVar(&cfg.Origin, "origin", cfg.Origin, "load address of a raw image")
	fs.BoolVar(&cfg.INES, "ines", cfg.INES, "the image is an iNES file with an NROM cartridge")
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, "statemachine, batched or both")
	fs.Uint64Var(&cfg.Cycles, "cycles", cfg.Cycles, "bus cycles to run per engine")
	fs.BoolVar(&cfg.NoDecimal, "nodecimal", cfg.NoDecimal, "ignore the D flag like the 2A03")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "cpu or mem profiling")
	fs.IntVar(&cfg.Trace, "trace", cfg.Trace, "log the first N instructions")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		flagCfg := cfg
		cfg = defaultConfig()
		if err := loadConfigFile(*configPath, &cfg); err != nil {
			return cfg, err
		}
		// flags given on the command line win
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "image":
				cfg.Image = flagCfg.Image
			case "origin":
				cfg.Origin = flagCfg.Origin
			case "ines":
				cfg.INES = flagCfg.INES
			case "engine":
				cfg.Engine = flagCfg.Engine
			case "cycles":
				cfg.Cycles = flagCfg.Cycles
			case "nodecimal":
				cfg.NoDecimal = flagCfg.NoDecimal
			case "profile":
				cfg.Profile = flagCfg.Profile
			case "trace":
				cfg.Trace = flagCfg.Trace
			}
		})
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
