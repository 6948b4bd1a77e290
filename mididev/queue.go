package mididev

import (
	"sync"

	"github.com/Cable-s/PianoGame/model"
)

// Queue is the unbounded FIFO between the driver's decode callback and the
// consumer's tick loop. Producers never block; the consumer drains in one
// swap and never waits for new items.
type Queue struct {
	mu     sync.Mutex
	events []model.InputEvent
}

// Push appends one event in arrival order.
func (q *Queue) Push(e model.InputEvent) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain removes and returns every queued event, oldest first.
func (q *Queue) Drain() []model.InputEvent {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()
	return events
}

// Len is the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
