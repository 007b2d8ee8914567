package agents

import (
	"log"

	"github.com/powlib/sim"
	"github.com/powlib/sim/verify"
)

// Bus opcodes. Replies coming back from the interconnect are always tagged
// OpWrite: they are the interconnect pushing data to the requester.
const (
	OpWrite uint64 = 0
	OpRead  uint64 = 1
)

// Data signal names a bus interface carries.
const (
	busAddr = "addr"
	busData = "data"
	busBE   = "be"
	busOp   = "op"
)

// A BusAgent presents an addressable read/write surface over a pair of
// handshake channels: one for outbound request words, one for inbound
// reply words. It composes a write driver on the outbound channel with a
// ready driver and a monitor on the inbound channel; a fourth component, a
// monitor on the outbound channel, allows passive observation of the
// agent's own requests.
//
// Two agents constructed over the same signal pair with the interfaces
// swapped form a requester/responder link.
type BusAgent struct {
	wrDriver  *HandshakeWriteDriver
	rdDriver  *HandshakeReadDriver
	wrMonitor *HandshakeMonitor
	rdMonitor *HandshakeMonitor

	baseAddr uint64
	rdFlag   *sim.Flag
}

// NewBusAgent creates the agent and spawns the activities of its four
// components. baseAddr is this agent's return-routing tag: it rides along
// in every read request and the interconnect echoes it back as the reply
// address. Nil gates permit every cycle.
func NewBusAgent(
	e *sim.Engine,
	name string,
	wrIface *HandshakeInterface,
	rdIface *HandshakeInterface,
	baseAddr uint64,
	resetActive sim.Logic,
	wrGate Gate,
	rdGate Gate,
) *BusAgent {
	return &BusAgent{
		wrDriver: NewHandshakeWriteDriver(
			e, name+".wr", wrIface, nil, resetActive, wrGate),
		rdDriver: NewHandshakeReadDriver(
			e, name+".rd", rdIface, resetActive, rdGate),
		wrMonitor: NewHandshakeMonitor(
			e, name+".wrmon", wrIface, resetActive),
		rdMonitor: NewHandshakeMonitor(
			e, name+".rdmon", rdIface, resetActive),
		baseAddr: baseAddr,
		rdFlag:   sim.NewFlag(e),
	}
}

// Behavior wakes an in-flight read when a reply lands on its transient
// port.
func (b *BusAgent) Behavior() {
	b.rdFlag.Set()
}

// InPort exposes the outbound driver's inport for port-graph wiring.
func (b *BusAgent) InPort() *verify.InPort {
	return b.wrDriver.InPort()
}

// OutPort exposes the inbound monitor's outport: every reply word arriving
// at this agent fans out from here.
func (b *BusAgent) OutPort() *verify.OutPort {
	return b.rdMonitor.OutPort()
}

// RequestOutPort exposes the outbound monitor's outport: every request word
// this agent emits (or that its outbound channel carries) fans out from
// here, which is how a passive responder sees traffic.
func (b *BusAgent) RequestOutPort() *verify.OutPort {
	return b.wrMonitor.OutPort()
}

// Write enqueues one outbound write of data to addr with every byte
// enabled.
func (b *BusAgent) Write(addr, data uint64) {
	b.WriteOp(addr, data, b.fullByteEnable(), OpWrite)
}

// WriteMasked enqueues one outbound write of data to addr under an explicit
// byte-enable mask.
func (b *BusAgent) WriteMasked(addr, data, be uint64) {
	b.WriteOp(addr, data, be, OpWrite)
}

// WriteOp enqueues one outbound transaction word. An opcode other than
// OpWrite or OpRead is a hard failure.
func (b *BusAgent) WriteOp(addr, data, be, op uint64) {
	if op != OpWrite && op != OpRead {
		log.Panicf("unknown bus opcode %d", op)
	}

	b.wrDriver.Write(verify.Transaction{
		busAddr: addr,
		busData: data,
		busBE:   be,
		busOp:   op,
	})
}

// Read issues a single read of addr and suspends until the reply arrives.
func (b *BusAgent) Read(a *sim.Activity, addr uint64) verify.Transaction {
	return b.ReadBurst(a, []uint64{addr})[0]
}

// ReadBurst issues one read per address, in order, and returns the replies
// in issue order. Each request carries the agent's base address as its data
// word; the interconnect uses it to route the reply back here.
//
// Replies are correlated to addresses purely by arrival order. A downstream
// component that completes reads out of order will have its data attributed
// to the wrong addresses; this layer does not detect that.
func (b *BusAgent) ReadBurst(
	a *sim.Activity,
	addrs []uint64,
) []verify.Transaction {
	rdPort := verify.NewInPort(b)
	b.rdMonitor.OutPort().Connect(rdPort)

	for _, addr := range addrs {
		b.WriteOp(addr, b.baseAddr, b.fullByteEnable(), OpRead)
	}

	replies := make([]verify.Transaction, 0, len(addrs))
	for range addrs {
		if !rdPort.Ready() {
			b.rdFlag.Clear()
			a.Wait(b.rdFlag)
		}
		if !rdPort.Ready() {
			log.Panic("bus read woke without a reply pending")
		}

		replies = append(replies, rdPort.Read().(verify.Transaction))
	}

	b.rdMonitor.OutPort().Disconnect(rdPort)

	return replies
}

// Flush suspends until every enqueued outbound word has been transferred.
func (b *BusAgent) Flush(a *sim.Activity) {
	b.wrDriver.Flush(a)
}

func (b *BusAgent) fullByteEnable() uint64 {
	width := b.wrDriver.iface.Data(busBE).Width()
	if width >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << uint(width)) - 1
}
