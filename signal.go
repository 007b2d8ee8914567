package sim

import "log"

// A Signal is a handle to one wire or register bit-vector in the simulated
// design. Its value starts all-Unknown until something drives it.
type Signal struct {
	HookableBase

	eng      *Engine
	name     string
	value    Value
	watchers []signalWatcher
}

type signalWatcher struct {
	kind edgeKind
	w    *wait
}

// NewSignal creates a signal of the given width bound to the engine.
func NewSignal(e *Engine, name string, width int) *Signal {
	return &Signal{
		eng:   e,
		name:  name,
		value: NewValue(width),
	}
}

// Name returns the name of the signal.
func (s *Signal) Name() string {
	return s.name
}

// Width returns the number of bits of the signal.
func (s *Signal) Width() int {
	return s.value.Width()
}

// Value returns the current value of the signal.
func (s *Signal) Value() Value {
	return s.value
}

// Bit returns the current state of the i-th bit.
func (s *Signal) Bit(i int) Logic {
	return s.value.Bit(i)
}

// SetUint drives the signal with an unsigned integer.
func (s *Signal) SetUint(u uint64) {
	s.Set(ValueOf(s.value.Width(), u))
}

// Set drives the signal. Writes take effect immediately; edge waiters
// resume within the current timestep. Driving the value already on the
// wire is not a change and notifies nobody.
func (s *Signal) Set(v Value) {
	if v.Width() != s.value.Width() {
		log.Panicf("signal %s is %d bits wide, driven with %d bits",
			s.name, s.value.Width(), v.Width())
	}

	old := s.value
	if v.Eq(old) {
		return
	}
	s.value = v

	if s.NumHooks() > 0 {
		s.InvokeHook(HookCtx{
			Domain: s,
			Pos:    HookPosSignalChange,
			Item:   v,
			Detail: old,
		})
	}

	kept := s.watchers[:0]
	for _, wt := range s.watchers {
		if wt.w.woken {
			continue
		}
		if edgeMatches(wt.kind, old, v) {
			s.eng.wake(wt.w)
			continue
		}
		kept = append(kept, wt)
	}
	s.watchers = kept
}

func (s *Signal) addWatcher(kind edgeKind, w *wait) {
	s.watchers = append(s.watchers, signalWatcher{kind: kind, w: w})
}

func edgeMatches(kind edgeKind, old, new Value) bool {
	switch kind {
	case risingEdge:
		return old.Bit(0) != High && new.Bit(0) == High
	case fallingEdge:
		return old.Bit(0) != Low && new.Bit(0) == Low
	case anyEdge:
		return true
	}

	return false
}
