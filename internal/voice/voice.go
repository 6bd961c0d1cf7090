// Package voice implements the monophonic sound generators the generator
// triggers from its event timeline. Every voice adds into the caller's
// buffers and never overwrites them.
package voice

import "math"

// Voice is the render side every voice shares. Trigger signatures differ
// per voice and are called directly by the generator.
type Voice interface {
	// Process adds up to len(l) samples into l and r. It is a no-op once the
	// voice is inactive.
	Process(l, r []float32)
	Active() bool
}

// silenceEp is the envelope level below which a decaying voice stops early.
const silenceEp = 1e-4

// span tracks how far a voice is through its current note.
type span struct {
	pos int
	len int
}

func (s *span) start(length int) {
	if length < 0 {
		length = 0
	}
	s.pos = 0
	s.len = length
}

// stop marks the voice inactive before its nominal length elapses.
func (s *span) stop() { s.pos = s.len }

func (s *span) Active() bool { return s.pos < s.len }

// Pos and Len expose the note cursor for tests and metering.
func (s *span) Pos() int { return s.pos }
func (s *span) Len() int { return s.len }

// lengthFor converts seconds to a truncated sample count capped at maxSec
// when maxSec > 0.
func lengthFor(sec, maxSec, sampleRate float64) int {
	if sec <= 0 {
		return 0
	}
	n := int(sec * sampleRate)
	if maxSec > 0 {
		if limit := int(maxSec * sampleRate); n > limit {
			n = limit
		}
	}
	return n
}

// clampFreq keeps a trigger frequency in [0, sampleRate/2) so the phase
// increment stays below π.
func clampFreq(freq, sampleRate float64) float64 {
	if nyquist := sampleRate / 2; freq >= nyquist {
		return math.Nextafter(nyquist, 0)
	}
	if freq > 0 {
		return freq
	}
	return 0
}

// clampAmp bounds a trigger amplitude to [0, 1].
func clampAmp(amp float64) float64 {
	return math.Min(math.Max(amp, 0), 1)
}

// clampDecay rejects negative decay rates, which would grow instead of decay.
func clampDecay(rate float64) float64 {
	return math.Max(rate, 0)
}

func frames(l, r []float32) int {
	if len(r) < len(l) {
		return len(r)
	}
	return len(l)
}
