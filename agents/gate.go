package agents

import (
	"log"
	"math/rand"
)

// A Gate decides, cycle by cycle, whether a handshake side is permitted to
// assert its flow-control signal. Gates model backpressure and stalls;
// every provided implementation is deterministic so stall patterns are
// reproducible across runs.
type Gate interface {
	Next() bool
}

// AllowAlways permits every cycle.
type AllowAlways struct{}

// Next always permits.
func (AllowAlways) Next() bool {
	return true
}

// AllowNever permits no cycle at all.
type AllowNever struct{}

// Next never permits.
func (AllowNever) Next() bool {
	return false
}

// AllowRandom permits a seeded pseudo-random fraction of cycles.
type AllowRandom struct {
	rng  *rand.Rand
	prob float64
}

// NewAllowRandom creates a gate that permits roughly prob of all cycles,
// reproducibly for a given seed.
func NewAllowRandom(seed int64, prob float64) *AllowRandom {
	if prob < 0 || prob > 1 {
		log.Panicf("allow probability must be in [0,1], got %f", prob)
	}

	return &AllowRandom{
		rng:  rand.New(rand.NewSource(seed)),
		prob: prob,
	}
}

// Next permits with the configured probability.
func (g *AllowRandom) Next() bool {
	return g.rng.Float64() < g.prob
}

// AllowSeq replays a scripted permission pattern, repeating it forever.
type AllowSeq struct {
	pattern []bool
	next    int
}

// NewAllowSeq creates a gate cycling through the given pattern. An empty
// pattern has no meaning and is a programming error.
func NewAllowSeq(pattern ...bool) *AllowSeq {
	if len(pattern) == 0 {
		log.Panic("allow sequence must not be empty")
	}

	return &AllowSeq{pattern: pattern}
}

// Next returns the next scripted decision.
func (g *AllowSeq) Next() bool {
	decision := g.pattern[g.next]
	g.next = (g.next + 1) % len(g.pattern)

	return decision
}
