// Package agents implements the protocol layers a testbench speaks to a
// synchronous design: reset and clock aligned register access, valid/ready
// handshake flow control with injectable congestion, unclocked discrete
// interfaces, and a memory-mapped bus built on top of the handshake layer.
package agents

import (
	"github.com/pkg/errors"

	"github.com/powlib/sim"
	"github.com/powlib/sim/verify"
)

// Control signal names the register layer defines.
const (
	SigClk = "clk"
	SigRst = "rst"
)

// A RegisterInterface is an interface with clock and reset control signals.
// Reads and writes are defined to occur only at active clock edges.
type RegisterInterface struct {
	*verify.Interface

	clk *sim.Signal
	rst *sim.Signal
}

// NewRegisterInterface builds a register interface from named signal
// handles. clk and rst must be present; every other signal is data.
func NewRegisterInterface(
	signals map[string]*sim.Signal,
) (*RegisterInterface, error) {
	base, err := verify.NewInterface([]string{SigClk, SigRst}, signals)
	if err != nil {
		return nil, errors.Wrap(err, "register interface")
	}

	return &RegisterInterface{
		Interface: base,
		clk:       base.Control(SigClk),
		rst:       base.Control(SigRst),
	}, nil
}

// Clk returns the clock handle.
func (i *RegisterInterface) Clk() *sim.Signal {
	return i.clk
}

// Rst returns the reset handle.
func (i *RegisterInterface) Rst() *sim.Signal {
	return i.rst
}

// Sync aligns the activity to one clock cycle: it sits through the settle
// phase, samples every data signal, then waits for the next active clock
// edge. The returned transaction holds the pre-edge values, which is what a
// register captures at that edge.
func (i *RegisterInterface) Sync(a *sim.Activity) verify.Transaction {
	a.Wait(sim.Settle())
	trans := i.Read()
	a.Wait(sim.RisingEdge(i.clk))

	return trans
}

// WaitReset aligns to clock edges until a cycle samples the reset signal
// in a known, inactive state. While the sample is active, Unknown or HighZ,
// the activity suspends on the reset wire itself rather than burning
// cycles.
func (i *RegisterInterface) WaitReset(a *sim.Activity, activeLevel sim.Logic) {
	for {
		a.Wait(sim.Settle())
		sampled := i.rst.Bit(0)
		a.Wait(sim.RisingEdge(i.clk))

		if sampled.IsKnown() && sampled != activeLevel {
			return
		}

		// The reset may have been released between the sample and the
		// edge; only park on the wire while it is still held.
		live := i.rst.Bit(0)
		if live.IsKnown() && live != activeLevel {
			continue
		}
		a.Wait(sim.AnyEdge(i.rst))
	}
}

// A RegisterDriver writes queued transactions to a register interface, one
// per clock cycle, after reset release.
type RegisterDriver struct {
	*verify.Driver

	iface       *RegisterInterface
	defaults    verify.Transaction
	resetActive sim.Logic
}

// NewRegisterDriver creates the driver and spawns its drive activity.
// defaults names the first values driven on the data signals; signals it
// does not name start at zero.
func NewRegisterDriver(
	e *sim.Engine,
	name string,
	iface *RegisterInterface,
	defaults verify.Transaction,
	resetActive sim.Logic,
) *RegisterDriver {
	d := &RegisterDriver{
		Driver:      verify.NewDriver(e, iface.Interface),
		iface:       iface,
		defaults:    defaults,
		resetActive: resetActive,
	}
	e.Spawn(name+".drive", d.drive)

	return d
}

func (d *RegisterDriver) drive(a *sim.Activity) {
	writeDefault(d.iface.Interface, d.defaults)
	d.iface.WaitReset(a, d.resetActive)

	for {
		for d.Pending() {
			d.iface.Write(d.Next())
			d.iface.Sync(a)
		}
		d.NotifyDrained()

		a.Wait(d.Wake())
		d.Wake().Clear()
		d.iface.Sync(a)
	}
}

// writeDefault drives every data signal of the interface with its default
// value, zero where the default transaction is silent.
func writeDefault(iface *verify.Interface, defaults verify.Transaction) {
	trans := iface.Transaction(defaults)
	for name, value := range trans {
		if value == nil {
			trans[name] = uint64(0)
		}
	}

	iface.Write(trans)
}

// A RegisterMonitor publishes one sampled transaction per clock cycle after
// reset release.
type RegisterMonitor struct {
	*verify.Monitor

	iface       *RegisterInterface
	resetActive sim.Logic
}

// NewRegisterMonitor creates the monitor and spawns its monitor activity.
func NewRegisterMonitor(
	e *sim.Engine,
	name string,
	iface *RegisterInterface,
	resetActive sim.Logic,
) *RegisterMonitor {
	m := &RegisterMonitor{
		Monitor:     verify.NewMonitor(iface.Interface),
		iface:       iface,
		resetActive: resetActive,
	}
	e.Spawn(name+".monitor", m.monitor)

	return m
}

func (m *RegisterMonitor) monitor(a *sim.Activity) {
	m.iface.WaitReset(a, m.resetActive)

	for {
		trans := m.iface.Sync(a)
		m.OutPort().WriteAndRun(trans)
	}
}
