package generator

import (
	"fmt"
	"strings"

	"github.com/cbegin/seedloop/internal/sequencer"
)

// Stats is a snapshot of scheduling and effect counters.
type Stats struct {
	EventsScheduled      int
	EventsDropped        int
	EventsFired          map[string]uint64
	DelayFramesRequested int
	DelayFrames          int
	DelayClamped         bool
	BlocksRendered       uint64
}

// Stats must be called from the goroutine that calls Process.
func (g *Generator) Stats() Stats {
	fired := make(map[string]uint64, len(g.fired))
	for i, n := range g.fired {
		fired[sequencer.EventType(i).String()] = n
	}
	return Stats{
		EventsScheduled:      g.queue.Len(),
		EventsDropped:        g.queue.Dropped(),
		EventsFired:          fired,
		DelayFramesRequested: g.delay.Requested(),
		DelayFrames:          g.delay.Size(),
		DelayClamped:         g.delay.Clamped(),
		BlocksRendered:       g.blocks,
	}
}

// Describe summarises what the seed chose: tempo, key, rhythm and delay.
func (g *Generator) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "seed     %#x\n", g.seed)
	fmt.Fprintf(&b, "tempo    %.2f bpm (%d frames/step, %d frames/segment)\n",
		g.timing.BPM, g.timing.StepSamples, g.timing.SegFrames)
	fmt.Fprintf(&b, "key      %.2f Hz %s\n", g.scale.Root, g.scale.Kind)
	fmt.Fprintf(&b, "kick     %s (%d)\n", g.patterns.Kick, g.rhythm.Kick)
	fmt.Fprintf(&b, "snare    %s (%d)\n", g.patterns.Snare, g.rhythm.Snare)
	fmt.Fprintf(&b, "hat      %s (%d)\n", g.patterns.Hat, g.rhythm.Hat)
	fmt.Fprintf(&b, "rotation %d\n", g.rotation)
	fmt.Fprintf(&b, "events   %d (mid %d)\n", g.queue.Len(), g.queue.Count(sequencer.EventMid))
	fmt.Fprintf(&b, "delay    %g beats, %d frames", g.delayFactor, g.delay.Size())
	if g.delay.Clamped() {
		fmt.Fprintf(&b, " (clamped from %d)", g.delay.Requested())
	}
	b.WriteByte('\n')
	return b.String()
}
