package agents

import (
	"log"

	"github.com/powlib/sim"
)

// ClockConfig describes one clock a ClockDriver generates.
type ClockConfig struct {
	Signal *sim.Signal
	Freq   sim.Freq
	Phase  sim.VTimeInSec
}

// A ClockDriver drives free-running clocks for the whole run.
type ClockDriver struct {
	logger *log.Logger
}

// NewClockDriver spawns one activity per configured clock. A nil logger
// falls back to the standard logger.
func NewClockDriver(
	e *sim.Engine,
	name string,
	cfgs map[string]ClockConfig,
	logger *log.Logger,
) *ClockDriver {
	if logger == nil {
		logger = log.Default()
	}

	d := &ClockDriver{logger: logger}
	for clkName, cfg := range cfgs {
		d.logger.Printf("starting clock %s.%s at %.0f Hz, phase %.9fs",
			name, clkName, float64(cfg.Freq), float64(cfg.Phase))
		e.Spawn(name+"."+clkName, d.run(cfg))
	}

	return d
}

func (d *ClockDriver) run(cfg ClockConfig) func(a *sim.Activity) {
	return func(a *sim.Activity) {
		half := cfg.Freq.Period() / 2

		if cfg.Phase > 0 {
			a.Wait(sim.Timer(cfg.Phase))
		}
		cfg.Signal.SetUint(0)

		for {
			a.Wait(sim.Timer(half))
			cfg.Signal.SetUint(1)
			a.Wait(sim.Timer(half))
			cfg.Signal.SetUint(0)
		}
	}
}

// ResetConfig describes one reset a ResetDriver sequences.
type ResetConfig struct {
	Signal      *sim.Signal
	ActiveLevel sim.Logic

	// With a Clock, the reset holds for WaitCycles active edges. Without
	// one, it holds for WaitTime.
	Clock      *sim.Signal
	WaitCycles int
	WaitTime   sim.VTimeInSec
}

// A ResetDriver asserts resets, holds them for their configured span, and
// releases them.
type ResetDriver struct {
	logger *log.Logger
	dones  []*sim.Flag
}

// NewResetDriver spawns one activity per configured reset. A nil logger
// falls back to the standard logger.
func NewResetDriver(
	e *sim.Engine,
	name string,
	cfgs map[string]ResetConfig,
	logger *log.Logger,
) *ResetDriver {
	if logger == nil {
		logger = log.Default()
	}

	d := &ResetDriver{logger: logger}
	for rstName, cfg := range cfgs {
		done := sim.NewFlag(e)
		d.dones = append(d.dones, done)
		e.Spawn(name+"."+rstName, d.run(name+"."+rstName, cfg, done))
	}

	return d
}

func (d *ResetDriver) run(
	name string,
	cfg ResetConfig,
	done *sim.Flag,
) func(a *sim.Activity) {
	return func(a *sim.Activity) {
		active, inactive := uint64(1), uint64(0)
		if cfg.ActiveLevel == sim.Low {
			active, inactive = 0, 1
		}

		cfg.Signal.SetUint(active)

		if cfg.Clock != nil {
			a.WaitCycles(cfg.Clock, cfg.WaitCycles)
		} else {
			a.Wait(sim.Timer(cfg.WaitTime))
		}

		cfg.Signal.SetUint(inactive)
		d.logger.Printf("reset %s released", name)
		done.Set()
	}
}

// Wait suspends the calling activity until every reset has been released.
func (d *ResetDriver) Wait(a *sim.Activity) {
	triggers := make([]sim.Trigger, 0, len(d.dones))
	for _, done := range d.dones {
		triggers = append(triggers, done)
	}

	a.Wait(sim.AllOf(triggers...))
}
