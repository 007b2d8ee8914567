package agents

import (
	"io"
	"log"

	"github.com/powlib/sim"
	"github.com/powlib/sim/verify"
)

var quietLogger = log.New(io.Discard, "", 0)

// A collector drains its inport into a slice, in arrival order.
type collector struct {
	in  *verify.InPort
	got []verify.Transaction
}

func newCollector() *collector {
	c := &collector{}
	c.in = verify.NewInPort(c)
	return c
}

func (c *collector) Behavior() {
	for c.in.Ready() {
		c.got = append(c.got, c.in.Read().(verify.Transaction))
	}
}

func (c *collector) uints(name string) []uint64 {
	var us []uint64
	for _, trans := range c.got {
		if u, ok := trans.Uint(name); ok {
			us = append(us, u)
		}
	}
	return us
}

type hookFunc func(ctx sim.HookCtx)

func (f hookFunc) Func(ctx sim.HookCtx) {
	f(ctx)
}

// clockedTB is the common fixture of the clocked tests: a 100 MHz clock and
// an active-high reset held for four cycles, releasing at 35 ns with the
// first post-reset cycle aligned to the 45 ns edge.
type clockedTB struct {
	engine *sim.Engine
	clk    *sim.Signal
	rst    *sim.Signal
}

func newClockedTB() *clockedTB {
	tb := &clockedTB{engine: sim.NewEngine()}
	tb.clk = sim.NewSignal(tb.engine, "clk", 1)
	tb.rst = sim.NewSignal(tb.engine, "rst", 1)

	NewClockDriver(tb.engine, "clkgen", map[string]ClockConfig{
		"clk": {Signal: tb.clk, Freq: 100 * sim.MHz},
	}, quietLogger)
	NewResetDriver(tb.engine, "rstgen", map[string]ResetConfig{
		"rst": {
			Signal:      tb.rst,
			ActiveLevel: sim.High,
			Clock:       tb.clk,
			WaitCycles:  4,
		},
	}, quietLogger)

	return tb
}

// handshakeSignals bundles clk, rst, fresh vld/rdy wires and the named data
// wires into the signal map a handshake interface is built from.
func (tb *clockedTB) handshakeSignals(
	prefix string,
	dataWidths map[string]int,
) map[string]*sim.Signal {
	signals := map[string]*sim.Signal{
		SigClk: tb.clk,
		SigRst: tb.rst,
		SigVld: sim.NewSignal(tb.engine, prefix+".vld", 1),
		SigRdy: sim.NewSignal(tb.engine, prefix+".rdy", 1),
	}
	for name, width := range dataWidths {
		signals[name] = sim.NewSignal(tb.engine, prefix+"."+name, width)
	}

	return signals
}

// risingTimes records the virtual times at which a signal's bit 0 rises.
func risingTimes(e *sim.Engine, sig *sim.Signal) *[]sim.VTimeInSec {
	times := new([]sim.VTimeInSec)
	sig.AcceptHook(hookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos != sim.HookPosSignalChange {
			return
		}
		if ctx.Item.(sim.Value).Bit(0) == sim.High &&
			ctx.Detail.(sim.Value).Bit(0) != sim.High {
			*times = append(*times, e.CurrentTime())
		}
	}))

	return times
}
