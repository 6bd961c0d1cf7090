package sequencer

import (
	"fmt"

	"github.com/cbegin/seedloop/internal/euclid"
	"github.com/cbegin/seedloop/internal/music"
	"github.com/cbegin/seedloop/internal/rng"
)

// MidVariants is the number of mid timbres an aux value can select:
// three simple waveforms followed by the four FM mid presets.
const MidVariants = 7

// midChance is the probability of an off-beat mid note on the odd
// sixteenths of each beat.
const midChance = 0.1

// Rhythm holds the drum pulse counts drawn for a seed.
type Rhythm struct {
	Kick, Snare, Hat int
}

// DrawRhythm draws kick (2-4), snare (1-3) and hat (4-8) pulse counts in
// that order.
func DrawRhythm(r *rng.RNG) Rhythm {
	return Rhythm{
		Kick:  2 + r.Intn(3),
		Snare: 1 + r.Intn(3),
		Hat:   4 + r.Intn(5),
	}
}

// Patterns are the three drum patterns over one bar.
type Patterns struct {
	Kick, Snare, Hat euclid.Pattern
}

// Patterns builds one-bar patterns for rh and rotates all three left by
// rotation steps. Pulse counts are clamped to the bar length first.
func (rh Rhythm) Patterns(rotation int) (Patterns, error) {
	var p Patterns
	var err error
	build := func(pulses int) euclid.Pattern {
		if err != nil {
			return nil
		}
		var pat euclid.Pattern
		pat, err = euclid.Generate(euclid.Clamp(pulses, music.StepsPerBar), music.StepsPerBar)
		if err == nil {
			pat.Rotate(rotation)
		}
		return pat
	}
	p.Kick = build(rh.Kick)
	p.Snare = build(rh.Snare)
	p.Hat = build(rh.Hat)
	if err != nil {
		return Patterns{}, fmt.Errorf("sequencer: build patterns: %w", err)
	}
	return p, nil
}

// DrawRotation draws the shared pattern rotation in [0, StepsPerBar).
func DrawRotation(r *rng.RNG) int {
	return r.Intn(music.StepsPerBar)
}

// Build fills q with one segment of events. Events of a step share the
// step's start time and are appended in voice order, so q stays sorted.
// Mid notes draw from r; everything else is fixed by the patterns.
func Build(q *Queue, r *rng.RNG, p Patterns, stepSamples int) {
	q.Reset()
	for step := 0; step < music.TotalSteps; step++ {
		barStep := step % music.StepsPerBar
		t := step * stepSamples
		if hit(p.Kick, barStep) {
			q.Push(Event{Time: t, Type: EventKick})
		}
		if hit(p.Snare, barStep) {
			q.Push(Event{Time: t, Type: EventSnare})
		}
		if hit(p.Hat, barStep) {
			q.Push(Event{Time: t, Type: EventHat})
		}
		if barStep%8 == 0 {
			q.Push(Event{Time: t, Type: EventMelody, Aux: uint8(barStep / 8)})
		}
		switch barStep % 4 {
		case 2:
			q.Push(Event{Time: t, Type: EventMid, Aux: uint8(r.Intn(MidVariants))})
		case 1, 3:
			if r.Float32() < midChance {
				q.Push(Event{Time: t, Type: EventMid, Aux: uint8(r.Intn(MidVariants))})
			}
		}
		if barStep == 0 {
			q.Push(Event{Time: t, Type: EventFMBass})
		}
	}
}

func hit(p euclid.Pattern, i int) bool {
	return i < len(p) && p[i]
}
