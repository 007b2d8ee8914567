package sim

import (
	"log"

	"github.com/pkg/errors"
)

// An Engine multiplexes many concurrent activities over one logical thread
// of control. Activities run as goroutines, but the engine resumes them
// strictly one at a time, so state shared between activities never needs
// locking: an activity can only lose control at an explicit suspension
// point (Activity.Wait).
//
// Within one virtual timestep the engine processes, in order: runnable
// activities (FIFO), events scheduled for the current time, then the settle
// phase (waking Settle waiters once everything else has quiesced). Only
// when nothing remains does virtual time advance to the next event.
type Engine struct {
	HookableBase

	time     VTimeInSec
	timed    *EventQueue
	runnable []*Activity
	settle   []*wait

	yield chan yieldMsg
}

type yieldMsg struct {
	act  *Activity
	done bool
}

// NewEngine creates an engine with no activities and time at zero.
func NewEngine() *Engine {
	e := new(Engine)
	e.timed = NewEventQueue()
	e.yield = make(chan yieldMsg)

	return e
}

// CurrentTime returns the virtual time the engine is at.
func (e *Engine) CurrentTime() VTimeInSec {
	return e.time
}

// Schedule registers an event to happen in the future. Scheduling an event
// earlier than the current time is a programming error.
func (e *Engine) Schedule(evt Event) {
	if evt.Time() < e.time {
		log.Panic("scheduling an event earlier than current time")
	}

	e.timed.Push(evt)
}

// Spawn registers a concurrent activity. The activity starts suspended and
// is resumed once the engine runs. Spawning from within a running activity
// is allowed; the new activity becomes runnable in the current timestep.
func (e *Engine) Spawn(name string, fn func(a *Activity)) *Activity {
	a := &Activity{
		id:     GetIDGenerator().Generate(),
		name:   name,
		eng:    e,
		resume: make(chan struct{}),
	}

	go func() {
		<-a.resume
		fn(a)
		e.yield <- yieldMsg{act: a, done: true}
	}()

	e.runnable = append(e.runnable, a)

	return a
}

// Run spawns fn as the root activity and processes activities and events
// until it completes. Spawned activities that are still suspended when the
// root completes are abandoned in place; their goroutines are reclaimed
// when the process exits. Run returns an error when the root activity can
// never make progress again.
func (e *Engine) Run(name string, fn func(a *Activity)) error {
	root := e.Spawn(name, fn)

	for !root.finished {
		switch {
		case len(e.runnable) > 0:
			a := e.runnable[0]
			e.runnable = e.runnable[1:]
			e.resumeActivity(a)
		case e.timed.Len() > 0 && e.timed.Peek().Time() <= e.time:
			evt := e.timed.Pop()
			evt.Happen()
		case len(e.settle) > 0:
			waiters := e.settle
			e.settle = nil
			for _, w := range waiters {
				e.wake(w)
			}
		case e.timed.Len() > 0:
			e.time = e.timed.Peek().Time()
		default:
			return errors.Errorf(
				"deadlock: activity %q cannot make progress at %.9fs",
				root.name, float64(e.time))
		}
	}

	return nil
}

func (e *Engine) resumeActivity(a *Activity) {
	if e.NumHooks() > 0 {
		e.InvokeHook(HookCtx{Domain: e, Pos: HookPosBeforeResume, Item: a})
	}

	a.resume <- struct{}{}
	msg := <-e.yield

	if msg.done {
		msg.act.finished = true
	}

	if e.NumHooks() > 0 {
		e.InvokeHook(HookCtx{Domain: e, Pos: HookPosAfterYield, Item: msg.act})
	}
}

// wake marks a wait as satisfied. A wait fires at most once; composite
// triggers arm the same wait on several sources and rely on this.
func (e *Engine) wake(w *wait) {
	if w.woken {
		return
	}

	w.woken = true
	w.fire()
}

func (e *Engine) makeRunnable(a *Activity) {
	e.runnable = append(e.runnable, a)
}

// A wait is one pending suspension. fire runs on the engine's thread of
// control when the awaited condition holds.
type wait struct {
	woken bool
	fire  func()
}

// An Activity is one cooperative flow of control, such as a drive loop or
// a monitor loop.
type Activity struct {
	id       string
	name     string
	eng      *Engine
	resume   chan struct{}
	finished bool
}

// ID returns the unique ID of the activity.
func (a *Activity) ID() string {
	return a.id
}

// Name returns the name of the activity.
func (a *Activity) Name() string {
	return a.name
}

// Wait suspends the activity until the trigger fires. It is the only
// suspension point; between two Waits an activity runs without
// interference from any other activity.
func (a *Activity) Wait(t Trigger) {
	w := &wait{}
	w.fire = func() { a.eng.makeRunnable(a) }

	t.arm(a.eng, w)

	a.eng.yield <- yieldMsg{act: a}
	<-a.resume
}

// WaitCycles aligns the activity to n consecutive active edges of the
// given clock, sitting through the settle phase before each edge.
func (a *Activity) WaitCycles(clk *Signal, n int) {
	for i := 0; i < n; i++ {
		a.Wait(Settle())
		a.Wait(RisingEdge(clk))
	}
}
