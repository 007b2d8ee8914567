// Package simulation provides the scaffolding of one test run: a registry
// of the signals and blocks in play, a unique run identity, and at-exit
// diagnostics for aborted runs.
package simulation

import (
	"log"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/powlib/sim"
	"github.com/powlib/sim/verify"
)

// A Simulation ties together the engine and everything registered for one
// test run.
type Simulation struct {
	engine *sim.Engine
	id     string

	signals map[string]*sim.Signal
	blocks  map[string]verify.Block
}

// New creates a simulation around the engine. The run gets a unique
// identity, and an at-exit handler records where virtual time stopped so an
// aborted run still leaves a trace of how far it got.
func New(engine *sim.Engine) *Simulation {
	s := &Simulation{
		engine:  engine,
		id:      xid.New().String(),
		signals: make(map[string]*sim.Signal),
		blocks:  make(map[string]verify.Block),
	}

	atexit.Register(s.atExit)

	return s
}

// ID returns the unique identity of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine driving the run.
func (s *Simulation) Engine() *sim.Engine {
	return s.engine
}

// NewSignal creates a signal and registers it under its name. Registering
// the same name twice is a programming error.
func (s *Simulation) NewSignal(name string, width int) *sim.Signal {
	if _, found := s.signals[name]; found {
		log.Panicf("signal %q already registered", name)
	}

	sig := sim.NewSignal(s.engine, name, width)
	s.signals[name] = sig

	return sig
}

// Signal returns a registered signal by name.
func (s *Simulation) Signal(name string) *sim.Signal {
	sig, found := s.signals[name]
	if !found {
		log.Panicf("signal %q is not registered", name)
	}

	return sig
}

// RegisterBlock registers a block under a unique name.
func (s *Simulation) RegisterBlock(name string, b verify.Block) {
	if _, found := s.blocks[name]; found {
		log.Panicf("block %q already registered", name)
	}

	s.blocks[name] = b
}

// Block returns a registered block by name.
func (s *Simulation) Block(name string) verify.Block {
	b, found := s.blocks[name]
	if !found {
		log.Panicf("block %q is not registered", name)
	}

	return b
}

func (s *Simulation) atExit() {
	log.Printf("simulation %s stopped at %.9fs",
		s.id, float64(s.engine.CurrentTime()))
}
