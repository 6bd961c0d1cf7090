// Package sequencer builds the per-segment event timeline and walks it with
// a step cursor. The timeline is computed once and replayed cyclically.
package sequencer

// EventType identifies which voice an event triggers.
type EventType uint8

const (
	EventKick EventType = iota
	EventSnare
	EventHat
	EventMelody
	EventMid // generic mid-range note, aux selects one of 7 timbres
	EventFMBass
	NumEventTypes
)

var eventNames = [NumEventTypes]string{"kick", "snare", "hat", "melody", "mid", "fm-bass"}

func (t EventType) String() string {
	if t < NumEventTypes {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a trigger at a segment-relative sample index.
type Event struct {
	Time int
	Type EventType
	Aux  uint8
}

// DefaultCapacity bounds the timeline. A full segment needs at most
// 32 steps * 6 event types.
const DefaultCapacity = 512

// Queue is a fixed-capacity, time-ordered event list. Pushes beyond
// capacity are dropped and counted.
type Queue struct {
	events  []Event
	dropped int
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{events: make([]Event, 0, capacity)}
}

// Push appends e, reporting false when the queue is full.
func (q *Queue) Push(e Event) bool {
	if len(q.events) == cap(q.events) {
		q.dropped++
		return false
	}
	q.events = append(q.events, e)
	return true
}

func (q *Queue) Len() int { return len(q.events) }
func (q *Queue) Cap() int { return cap(q.events) }
func (q *Queue) At(i int) Event { return q.events[i] }
func (q *Queue) Dropped() int { return q.dropped }
func (q *Queue) Events() []Event { return q.events }

// Reset empties the queue without releasing its storage.
func (q *Queue) Reset() {
	q.events = q.events[:0]
	q.dropped = 0
}

// Count returns how many queued events have type t.
func (q *Queue) Count(t EventType) int {
	n := 0
	for _, e := range q.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
