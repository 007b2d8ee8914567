package agents

import (
	"github.com/pkg/errors"

	"github.com/powlib/sim"
	"github.com/powlib/sim/verify"
)

// A DiscreteInterface has no control signals at all: it models a
// level-sensitive, unclocked interface that resynchronizes on any change of
// any data signal.
type DiscreteInterface struct {
	*verify.Interface
}

// NewDiscreteInterface builds a discrete interface from named signal
// handles. Every signal is a data signal.
func NewDiscreteInterface(
	signals map[string]*sim.Signal,
) (*DiscreteInterface, error) {
	base, err := verify.NewInterface(nil, signals)
	if err != nil {
		return nil, errors.Wrap(err, "discrete interface")
	}
	if len(base.DataNames()) == 0 {
		return nil, errors.New("discrete interface needs at least one signal")
	}

	return &DiscreteInterface{Interface: base}, nil
}

// Sync suspends until any data signal changes, lets the timestep settle,
// and returns the settled sample.
func (i *DiscreteInterface) Sync(a *sim.Activity) verify.Transaction {
	names := i.DataNames()
	triggers := make([]sim.Trigger, 0, len(names))
	for _, name := range names {
		triggers = append(triggers, sim.AnyEdge(i.Data(name)))
	}

	a.Wait(sim.AnyOf(triggers...))
	a.Wait(sim.Settle())

	return i.Read()
}

// A DiscreteDriver writes queued transactions out immediately, with no
// reset or clock gating.
type DiscreteDriver struct {
	*verify.Driver

	iface *DiscreteInterface
}

// NewDiscreteDriver creates the driver and spawns its drive activity.
func NewDiscreteDriver(
	e *sim.Engine,
	name string,
	iface *DiscreteInterface,
) *DiscreteDriver {
	d := &DiscreteDriver{
		Driver: verify.NewDriver(e, iface.Interface),
		iface:  iface,
	}
	e.Spawn(name+".drive", d.drive)

	return d
}

func (d *DiscreteDriver) drive(a *sim.Activity) {
	for {
		for d.Pending() {
			d.iface.Write(d.Next())
		}
		d.NotifyDrained()

		a.Wait(d.Wake())
		d.Wake().Clear()
	}
}

// A DiscreteMonitor publishes the initial settled sample once, then one
// sample per data-signal change.
type DiscreteMonitor struct {
	*verify.Monitor

	iface *DiscreteInterface
}

// NewDiscreteMonitor creates the monitor and spawns its monitor activity.
func NewDiscreteMonitor(
	e *sim.Engine,
	name string,
	iface *DiscreteInterface,
) *DiscreteMonitor {
	m := &DiscreteMonitor{
		Monitor: verify.NewMonitor(iface.Interface),
		iface:   iface,
	}
	e.Spawn(name+".monitor", m.monitor)

	return m
}

func (m *DiscreteMonitor) monitor(a *sim.Activity) {
	a.Wait(sim.Settle())
	m.OutPort().WriteAndRun(m.iface.Read())

	for {
		trans := m.iface.Sync(a)
		m.OutPort().WriteAndRun(trans)
	}
}
