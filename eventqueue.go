package sim

import "container/heap"

// EventQueue is a queue of events ordered by the time of the events. The
// engine owns the queue and accesses it from a single thread of control, so
// no locking is involved.
type EventQueue struct {
	events eventHeap
}

// NewEventQueue creates and returns a newly created EventQueue.
func NewEventQueue() *EventQueue {
	q := new(EventQueue)
	q.events = make(eventHeap, 0)
	heap.Init(&q.events)
	return q
}

// Push adds an event to the event queue.
func (q *EventQueue) Push(evt Event) {
	heap.Push(&q.events, evt)
}

// Pop returns the next earliest event.
func (q *EventQueue) Pop() Event {
	return heap.Pop(&q.events).(Event)
}

// Len returns the number of events in the queue.
func (q *EventQueue) Len() int {
	return q.events.Len()
}

// Peek returns the event in front of the queue without removing it from the
// queue.
func (q *EventQueue) Peek() Event {
	return q.events[0]
}

type eventHeap []Event

func (h eventHeap) Len() int {
	return len(h)
}

// Less returns true if the i-th event happens before the j-th event.
func (h eventHeap) Less(i, j int) bool {
	return h[i].Time() < h[j].Time()
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	event := x.(Event)
	*h = append(*h, event)
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	event := old[n-1]
	*h = old[0 : n-1]
	return event
}
