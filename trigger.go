package sim

// A Trigger is a condition an activity can suspend on. Triggers are
// one-shot: once fired, the suspension is over and the trigger is spent.
type Trigger interface {
	arm(e *Engine, w *wait)
}

type edgeKind int

const (
	risingEdge edgeKind = iota
	fallingEdge
	anyEdge
)

type edgeTrigger struct {
	sig  *Signal
	kind edgeKind
}

func (t edgeTrigger) arm(e *Engine, w *wait) {
	t.sig.addWatcher(t.kind, w)
}

// RisingEdge fires when bit 0 of the signal transitions to High.
func RisingEdge(sig *Signal) Trigger {
	return edgeTrigger{sig: sig, kind: risingEdge}
}

// FallingEdge fires when bit 0 of the signal transitions to Low.
func FallingEdge(sig *Signal) Trigger {
	return edgeTrigger{sig: sig, kind: fallingEdge}
}

// AnyEdge fires when any bit of the signal changes state.
func AnyEdge(sig *Signal) Trigger {
	return edgeTrigger{sig: sig, kind: anyEdge}
}

type settleTrigger struct{}

func (t settleTrigger) arm(e *Engine, w *wait) {
	e.settle = append(e.settle, w)
}

// Settle fires once the current virtual timestep quiesces: every runnable
// activity has suspended and every same-time event has happened. Driven
// signal values are stable for sampling at that point.
func Settle() Trigger {
	return settleTrigger{}
}

type timerTrigger struct {
	d VTimeInSec
}

func (t timerTrigger) arm(e *Engine, w *wait) {
	d := t.d
	if d < 0 {
		d = 0
	}

	e.timed.Push(wakeEvent{time: e.time + d, eng: e, w: w})
}

// Timer fires after the given amount of virtual time has passed.
func Timer(d VTimeInSec) Trigger {
	return timerTrigger{d: d}
}

type anyOfTrigger struct {
	ts []Trigger
}

func (t anyOfTrigger) arm(e *Engine, w *wait) {
	for _, sub := range t.ts {
		sub.arm(e, w)
	}
}

// AnyOf fires when the first of the given triggers fires.
func AnyOf(ts ...Trigger) Trigger {
	return anyOfTrigger{ts: ts}
}

type allOfTrigger struct {
	ts []Trigger
}

func (t allOfTrigger) arm(e *Engine, w *wait) {
	remaining := len(t.ts)
	if remaining == 0 {
		e.wake(w)
		return
	}

	for _, sub := range t.ts {
		sw := &wait{}
		sw.fire = func() {
			remaining--
			if remaining == 0 {
				e.wake(w)
			}
		}
		sub.arm(e, sw)
	}
}

// AllOf fires once every one of the given triggers has fired.
func AllOf(ts ...Trigger) Trigger {
	return allOfTrigger{ts: ts}
}

// A Flag is a set/clear/wait synchronization primitive. A Flag is itself a
// Trigger; waiting on a flag that is already set completes immediately.
type Flag struct {
	eng   *Engine
	set   bool
	waits []*wait
}

// NewFlag creates a cleared flag bound to the engine.
func NewFlag(e *Engine) *Flag {
	return &Flag{eng: e}
}

// Set marks the flag and wakes every activity waiting on it.
func (f *Flag) Set() {
	f.set = true

	waiters := f.waits
	f.waits = nil
	for _, w := range waiters {
		f.eng.wake(w)
	}
}

// Clear unmarks the flag.
func (f *Flag) Clear() {
	f.set = false
}

// IsSet reports whether the flag is set.
func (f *Flag) IsSet() bool {
	return f.set
}

func (f *Flag) arm(e *Engine, w *wait) {
	if f.set {
		e.wake(w)
		return
	}

	f.waits = append(f.waits, w)
}
