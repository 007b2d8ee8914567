package verify

import (
	"log"

	"github.com/powlib/sim"
)

// A Component is a block bound to exactly one Interface for its whole
// lifetime. The association is owned by the component; the signal handles
// stay shared with the simulator.
type Component struct {
	iface *Interface
}

// NewComponent binds the interface. A nil interface is a construction-time
// contract violation.
func NewComponent(iface *Interface) Component {
	if iface == nil {
		log.Panic("component requires an interface")
	}

	return Component{iface: iface}
}

// Interface returns the interface bound to the component.
func (c *Component) Interface() *Interface {
	return c.iface
}

// A Driver is a component that consumes transactions from an outstanding
// work queue and writes them to its interface. The queue is distinct from
// the InPort's FIFO: the InPort lets the driver sit in a port graph, while
// the queue feeds the concurrent drive activity, which the concrete
// protocol driver owns.
type Driver struct {
	Component

	inport  *InPort
	queue   []Transaction
	wake    *sim.Flag
	drained *sim.Flag
}

// NewDriver creates a driver base bound to the interface. The drained flag
// starts set: an empty driver is a flushed driver.
func NewDriver(e *sim.Engine, iface *Interface) *Driver {
	d := &Driver{
		Component: NewComponent(iface),
		wake:      sim.NewFlag(e),
		drained:   sim.NewFlag(e),
	}
	d.inport = NewInPort(d)
	d.drained.Set()

	return d
}

// InPort returns the inport feeding the driver from the port graph.
func (d *Driver) InPort() *InPort {
	return d.inport
}

// Write appends a transaction to the outstanding queue and wakes the drive
// activity.
func (d *Driver) Write(trans Transaction) {
	d.queue = append(d.queue, trans)
	d.drained.Clear()
	d.wake.Set()
}

// Behavior moves data arriving on the inport into the outstanding queue.
func (d *Driver) Behavior() {
	if d.inport.Ready() {
		d.Write(d.inport.Read().(Transaction))
	}
}

// Pending reports whether outstanding transactions remain. For use by drive
// loops.
func (d *Driver) Pending() bool {
	return len(d.queue) != 0
}

// Next pops the oldest outstanding transaction. For use by drive loops.
func (d *Driver) Next() Transaction {
	if len(d.queue) == 0 {
		return nil
	}

	trans := d.queue[0]
	d.queue = d.queue[1:]

	return trans
}

// Wake returns the flag that signals new outstanding work. For use by drive
// loops.
func (d *Driver) Wake() *sim.Flag {
	return d.wake
}

// NotifyDrained is called by the drive loop when it has drained the queue
// to empty, releasing any pending Flush waiter.
func (d *Driver) NotifyDrained() {
	d.drained.Set()
}

// Flush suspends the calling activity until the drive loop has drained the
// outstanding queue.
func (d *Driver) Flush(a *sim.Activity) {
	a.Wait(d.drained)
}

// A Monitor is a component that samples its interface and republishes what
// it sees as Transactions on its outport.
type Monitor struct {
	Component

	outport *OutPort
}

// NewMonitor creates a monitor base bound to the interface.
func NewMonitor(iface *Interface) *Monitor {
	m := &Monitor{Component: NewComponent(iface)}
	m.outport = NewOutPort(m)

	return m
}

// OutPort returns the outport the monitor publishes on.
func (m *Monitor) OutPort() *OutPort {
	return m.outport
}

// Behavior does nothing; a monitor has no inports to react to.
func (m *Monitor) Behavior() {}
