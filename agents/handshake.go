package agents

import (
	"log"

	"github.com/pkg/errors"

	"github.com/powlib/sim"
	"github.com/powlib/sim/verify"
)

// Control signal names the handshake layer adds on top of the register
// layer.
const (
	SigVld = "vld"
	SigRdy = "rdy"
)

// A HandshakeInterface extends the register interface with valid and ready
// flow control. A transfer occurs only in a cycle that samples both
// asserted.
type HandshakeInterface struct {
	*RegisterInterface

	vld *sim.Signal
	rdy *sim.Signal
}

// NewHandshakeInterface builds a handshake interface from named signal
// handles. clk, rst, vld and rdy must be present; every other signal is
// data.
func NewHandshakeInterface(
	signals map[string]*sim.Signal,
) (*HandshakeInterface, error) {
	base, err := verify.NewInterface(
		[]string{SigClk, SigRst, SigVld, SigRdy}, signals)
	if err != nil {
		return nil, errors.Wrap(err, "handshake interface")
	}

	return &HandshakeInterface{
		RegisterInterface: &RegisterInterface{
			Interface: base,
			clk:       base.Control(SigClk),
			rst:       base.Control(SigRst),
		},
		vld: base.Control(SigVld),
		rdy: base.Control(SigRdy),
	}, nil
}

// Vld returns the valid handle.
func (i *HandshakeInterface) Vld() *sim.Signal {
	return i.vld
}

// Rdy returns the ready handle.
func (i *HandshakeInterface) Rdy() *sim.Signal {
	return i.rdy
}

// SyncTransfer aligns to clock edges until one cycle samples both vld and
// rdy asserted, returning that cycle's data sample. While one of the two is
// low the activity suspends on that signal's rising edge instead of burning
// cycles.
func (i *HandshakeInterface) SyncTransfer(a *sim.Activity) verify.Transaction {
	for {
		a.Wait(sim.Settle())
		vld := i.vld.Bit(0)
		rdy := i.rdy.Bit(0)
		trans := i.Read()
		a.Wait(sim.RisingEdge(i.clk))

		if vld == sim.High && rdy == sim.High {
			return trans
		}

		// Park on the low line, unless it already rose after the edge, in
		// which case the next aligned cycle will observe it.
		switch {
		case vld != sim.High && i.vld.Bit(0) != sim.High:
			a.Wait(sim.RisingEdge(i.vld))
		case rdy != sim.High && i.rdy.Bit(0) != sim.High:
			a.Wait(sim.RisingEdge(i.rdy))
		}
	}
}

// A HandshakeWriteDriver carries out the writing side of the handshake
// protocol: it drives the data signals and vld, and considers an item
// transferred once a cycle samples vld and rdy high together. Its gate
// decides, per data-ready cycle, whether it is permitted to assert vld.
type HandshakeWriteDriver struct {
	*verify.Driver

	iface       *HandshakeInterface
	defaults    verify.Transaction
	resetActive sim.Logic
	gate        Gate
}

// NewHandshakeWriteDriver creates the driver and spawns its drive activity.
// A nil gate permits every cycle.
func NewHandshakeWriteDriver(
	e *sim.Engine,
	name string,
	iface *HandshakeInterface,
	defaults verify.Transaction,
	resetActive sim.Logic,
	gate Gate,
) *HandshakeWriteDriver {
	if gate == nil {
		gate = AllowAlways{}
	}

	d := &HandshakeWriteDriver{
		Driver:      verify.NewDriver(e, iface.Interface),
		iface:       iface,
		defaults:    defaults,
		resetActive: resetActive,
		gate:        gate,
	}
	e.Spawn(name+".drive", d.drive)

	return d
}

func (d *HandshakeWriteDriver) drive(a *sim.Activity) {
	d.iface.vld.SetUint(0)
	writeDefault(d.iface.Interface, d.defaults)
	d.iface.WaitReset(a, d.resetActive)

	for {
		for d.Pending() {
			d.iface.Write(d.Next())

			for !d.gate.Next() {
				d.iface.vld.SetUint(0)
				d.iface.Sync(a)
			}

			d.iface.vld.SetUint(1)
			d.iface.SyncTransfer(a)
		}

		d.iface.vld.SetUint(0)
		d.NotifyDrained()

		a.Wait(d.Wake())
		d.Wake().Clear()
	}
}

// A HandshakeReadDriver carries out the reading side of the handshake
// protocol: it only drives rdy, gated cycle by cycle. It accepts no
// transactions; the write-path surface of a Driver is deliberately absent.
type HandshakeReadDriver struct {
	verify.Component

	iface       *HandshakeInterface
	resetActive sim.Logic
	gate        Gate
}

// NewHandshakeReadDriver creates the driver and spawns its drive activity.
// A nil gate permits every cycle.
func NewHandshakeReadDriver(
	e *sim.Engine,
	name string,
	iface *HandshakeInterface,
	resetActive sim.Logic,
	gate Gate,
) *HandshakeReadDriver {
	if gate == nil {
		gate = AllowAlways{}
	}

	d := &HandshakeReadDriver{
		Component:   verify.NewComponent(iface.Interface),
		iface:       iface,
		resetActive: resetActive,
		gate:        gate,
	}
	e.Spawn(name+".drive", d.drive)

	return d
}

func (d *HandshakeReadDriver) drive(a *sim.Activity) {
	d.iface.rdy.SetUint(0)
	d.iface.WaitReset(a, d.resetActive)

	for {
		if d.gate.Next() {
			d.iface.rdy.SetUint(1)
		} else {
			d.iface.rdy.SetUint(0)
		}
		d.iface.Sync(a)
	}
}

// InPort is not part of the read driver; calling it is a programming error.
func (d *HandshakeReadDriver) InPort() *verify.InPort {
	log.Panic("the handshake read driver has no inport")
	return nil
}

// Write is not part of the read driver; calling it is a programming error.
func (d *HandshakeReadDriver) Write(verify.Transaction) {
	log.Panic("the handshake read driver does not accept transactions")
}

// Flush is not part of the read driver; calling it is a programming error.
func (d *HandshakeReadDriver) Flush(*sim.Activity) {
	log.Panic("the handshake read driver has nothing to flush")
}

// A HandshakeMonitor publishes the data sample of every completed transfer
// on its interface.
type HandshakeMonitor struct {
	*verify.Monitor

	iface       *HandshakeInterface
	resetActive sim.Logic
}

// NewHandshakeMonitor creates the monitor and spawns its monitor activity.
func NewHandshakeMonitor(
	e *sim.Engine,
	name string,
	iface *HandshakeInterface,
	resetActive sim.Logic,
) *HandshakeMonitor {
	m := &HandshakeMonitor{
		Monitor:     verify.NewMonitor(iface.Interface),
		iface:       iface,
		resetActive: resetActive,
	}
	e.Spawn(name+".monitor", m.monitor)

	return m
}

func (m *HandshakeMonitor) monitor(a *sim.Activity) {
	m.iface.WaitReset(a, m.resetActive)

	for {
		trans := m.iface.SyncTransfer(a)
		m.OutPort().WriteAndRun(trans)
	}
}
