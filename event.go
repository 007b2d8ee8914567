package sim

// An Event is something going to happen at a future point in virtual time.
type Event interface {
	// Time returns the time that the event should happen.
	Time() VTimeInSec

	// Happen carries out the effect of the event. It runs on the engine's
	// thread of control, between activity resumptions.
	Happen()
}

// wakeEvent resumes a suspended wait at a scheduled time. It backs the
// Timer trigger and the clock generators.
type wakeEvent struct {
	time VTimeInSec
	eng  *Engine
	w    *wait
}

func (e wakeEvent) Time() VTimeInSec {
	return e.time
}

func (e wakeEvent) Happen() {
	e.eng.wake(e.w)
}
