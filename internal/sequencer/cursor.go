package sequencer

import "github.com/cbegin/seedloop/internal/music"

// Cursor walks a Queue in step time. It is advanced only by rendered
// frames, never by wall clock. Wrapping past the last step rewinds the
// event index so the timeline loops.
type Cursor struct {
	Step      int
	EventIdx  int
	PosInStep int

	stepSamples int
}

func NewCursor(stepSamples int) Cursor {
	if stepSamples < 1 {
		stepSamples = 1
	}
	return Cursor{stepSamples: stepSamples}
}

func (c *Cursor) StepSamples() int { return c.stepSamples }

// Next pops the next event due at the start of the current step. It
// returns false once no more events match, or when the cursor is not on a
// step boundary.
func (c *Cursor) Next(q *Queue) (Event, bool) {
	if c.PosInStep != 0 || c.EventIdx >= q.Len() {
		return Event{}, false
	}
	e := q.At(c.EventIdx)
	if e.Time != c.Step*c.stepSamples {
		return Event{}, false
	}
	c.EventIdx++
	return e, true
}

// Span returns how many of the remaining frames fit before the next step
// boundary.
func (c *Cursor) Span(remaining int) int {
	left := c.stepSamples - c.PosInStep
	if remaining < left {
		return remaining
	}
	return left
}

// Advance moves the cursor n frames forward. n must not cross a step
// boundary; Span gives the largest legal value.
func (c *Cursor) Advance(n int) {
	c.PosInStep += n
	if c.PosInStep < c.stepSamples {
		return
	}
	c.PosInStep = 0
	c.Step++
	if c.Step >= music.TotalSteps {
		c.Step = 0
		c.EventIdx = 0
	}
}

// Frame returns the segment-relative frame the cursor points at.
func (c *Cursor) Frame() int {
	return c.Step*c.stepSamples + c.PosInStep
}

// SegmentFrames is the loop length in frames as walked by the cursor.
func (c *Cursor) SegmentFrames() int {
	return music.TotalSteps * c.stepSamples
}
