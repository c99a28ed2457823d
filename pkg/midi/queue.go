package midi

import (
	"sort"
	"sync"
)

// DefaultCapacity is the number of events a buffer holds per cycle.
const DefaultCapacity = 512

// EventQueue accumulates events between cycles and hands them out ordered by
// frame. Events sharing a frame keep their arrival order.
type EventQueue struct {
	events []Event
	mu     sync.RWMutex
	sorted bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, DefaultCapacity),
		sorted: true,
	}
}

func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n := len(q.events); n > 0 && q.events[n-1].Frame > event.Frame {
		q.sorted = false
	}
	q.events = append(q.events, event)
}

func (q *EventQueue) AddMultiple(events []Event) {
	for _, e := range events {
		q.Add(e)
	}
}

// GetEventsInRange returns a copy of the events with startFrame <= Frame < endFrame.
func (q *EventQueue) GetEventsInRange(startFrame, endFrame uint32) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortEvents()

	startIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Frame >= startFrame
	})
	endIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Frame >= endFrame
	})
	if startIdx >= endIdx {
		return nil
	}

	result := make([]Event, endIdx-startIdx)
	copy(result, q.events[startIdx:endIdx])
	return result
}

// Drain appends all queued events to dst in frame order and empties the queue.
func (q *EventQueue) Drain(dst []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortEvents()
	dst = append(dst, q.events...)
	q.events = q.events[:0]
	return dst
}

func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = q.events[:0]
	q.sorted = true
}

func (q *EventQueue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.events)
}

func (q *EventQueue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *EventQueue) sortEvents() {
	if q.sorted {
		return
	}
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].Frame < q.events[j].Frame
	})
	q.sorted = true
}

// EventProcessor consumes events one at a time.
type EventProcessor interface {
	ProcessEvent(event Event)
}

// ProcessEvents feeds the events in [startFrame, endFrame) to processor
// without removing them.
func (q *EventQueue) ProcessEvents(processor EventProcessor, startFrame, endFrame uint32) {
	for _, event := range q.GetEventsInRange(startFrame, endFrame) {
		processor.ProcessEvent(event)
	}
}

// EventBuffer is an append-only, order-preserving output sink with a fixed
// capacity. Writes past capacity are dropped and counted.
type EventBuffer struct {
	events  []Event
	dropped int
}

func NewEventBuffer(capacity int) *EventBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventBuffer{events: make([]Event, 0, capacity)}
}

// WriteMidiEvent implements Writer.
func (b *EventBuffer) WriteMidiEvent(e Event) bool {
	if len(b.events) == cap(b.events) {
		b.dropped++
		return false
	}
	b.events = append(b.events, e)
	return true
}

// Events returns the buffered events. The slice is reused after Reset.
func (b *EventBuffer) Events() []Event {
	return b.events
}

func (b *EventBuffer) Len() int {
	return len(b.events)
}

func (b *EventBuffer) Cap() int {
	return cap(b.events)
}

// Dropped reports how many writes were refused since the last Reset.
func (b *EventBuffer) Dropped() int {
	return b.dropped
}

func (b *EventBuffer) Reset() {
	b.events = b.events[:0]
	b.dropped = 0
}
