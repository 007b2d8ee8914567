package verify

// A Block is a reactive unit of testbench logic. Behavior is invoked, via
// the re-activation queue, whenever one of the block's InPorts receives
// data.
type Block interface {
	Behavior()
}

// A Queue is a FIFO of scheduled block re-activations. Writing to an InPort
// never invokes the owning block's Behavior inline; it schedules it here,
// decoupling the writer's call stack from the reactivated block and keeping
// deep fan-out graphs from recursing at write time.
//
// Multiple independent queues may coexist to scope settle passes to a
// sub-graph; ports not given one explicitly share the process-wide default.
type Queue struct {
	callables []func()
}

// NewQueue creates an empty re-activation queue.
func NewQueue() *Queue {
	return &Queue{}
}

var defaultQueue = NewQueue()

// DefaultQueue returns the process-wide re-activation queue.
func DefaultQueue() *Queue {
	return defaultQueue
}

// Schedule appends a callable to the queue.
func (q *Queue) Schedule(fn func()) {
	q.callables = append(q.callables, fn)
}

// Run drains the queue, invoking each scheduled callable in FIFO order.
// Callables may schedule further callables; the drain keeps going until the
// queue is empty, settling the graph to a fixpoint breadth-first.
func (q *Queue) Run() {
	for len(q.callables) > 0 {
		fn := q.callables[0]
		q.callables = q.callables[1:]
		fn()
	}
}

// An InPort feeds data into the block that owns it. Ownership is fixed at
// construction.
type InPort struct {
	block Block
	queue *Queue
	data  []interface{}
}

// NewInPort creates an InPort owned by the given block, scheduled on the
// default queue.
func NewInPort(block Block) *InPort {
	return NewInPortWithQueue(block, defaultQueue)
}

// NewInPortWithQueue creates an InPort owned by the given block, scheduled
// on an explicit queue.
func NewInPortWithQueue(block Block, queue *Queue) *InPort {
	return &InPort{block: block, queue: queue}
}

// Block returns the block that owns the port.
func (p *InPort) Block() Block {
	return p.block
}

// Write appends data to the port's FIFO and schedules the owning block's
// Behavior on the re-activation queue. It is non-blocking and always
// succeeds.
func (p *InPort) Write(data interface{}) {
	p.data = append(p.data, data)
	p.queue.Schedule(p.block.Behavior)
}

// Ready returns whether data is pending on the port.
func (p *InPort) Ready() bool {
	return len(p.data) != 0
}

// Read pops the oldest pending data. It returns nil when the port is
// empty; callers that cannot tolerate that must check Ready first.
func (p *InPort) Read() interface{} {
	if len(p.data) == 0 {
		return nil
	}

	data := p.data[0]
	p.data = p.data[1:]

	return data
}

// An OutPort fans data out to the InPorts connected to it. The connection
// list is a pure routing relation; the OutPort owns none of the InPorts.
type OutPort struct {
	block   Block
	queue   *Queue
	inports []*InPort
}

// NewOutPort creates an OutPort owned by the given block, draining the
// default queue on WriteAndRun.
func NewOutPort(block Block) *OutPort {
	return NewOutPortWithQueue(block, defaultQueue)
}

// NewOutPortWithQueue creates an OutPort owned by the given block, draining
// an explicit queue on WriteAndRun.
func NewOutPortWithQueue(block Block, queue *Queue) *OutPort {
	return &OutPort{block: block, queue: queue}
}

// Block returns the block that owns the port.
func (p *OutPort) Block() Block {
	return p.block
}

// Connect attaches an InPort to the fan-out list.
func (p *OutPort) Connect(in *InPort) {
	p.inports = append(p.inports, in)
}

// Disconnect removes the first occurrence of the InPort from the fan-out
// list. It returns whether the port was found; disconnecting a port that is
// not connected is not an error.
func (p *OutPort) Disconnect(in *InPort) bool {
	for i, connected := range p.inports {
		if connected == in {
			p.inports = append(p.inports[:i], p.inports[i+1:]...)
			return true
		}
	}

	return false
}

// Write fans the data out to every connected InPort, scheduling their
// blocks' behaviors without draining the queue.
func (p *OutPort) Write(data interface{}) {
	for _, in := range p.inports {
		in.Write(data)
	}
}

// WriteAndRun fans the data out and then drains the re-activation queue,
// guaranteeing all downstream behaviors have settled before it returns.
func (p *OutPort) WriteAndRun(data interface{}) {
	p.Write(data)
	p.queue.Run()
}
