// Package dsp holds the per-sample building blocks shared by the voices.
package dsp

import "math"

const TwoPi = 2 * math.Pi

// Waveform selects the shape an Osc renders.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Square
	Saw
)

func (w Waveform) String() string {
	switch w {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Saw:
		return "saw"
	default:
		return "sine"
	}
}

// Osc is a phase accumulator in [0, 2π). Phase carries over between
// blocks and between triggers unless Reset is called.
type Osc struct {
	phase float64
	inc   float64
}

// SetFreq sets the per-sample phase increment for freq at sampleRate.
func (o *Osc) SetFreq(freq, sampleRate float64) {
	o.inc = PhaseInc(freq, sampleRate)
}

func (o *Osc) Reset() { o.phase = 0 }

func (o *Osc) Phase() float64 { return o.phase }

// Advance steps the phase by one sample.
func (o *Osc) Advance() {
	o.phase = Wrap(o.phase + o.inc)
}

// Sample evaluates w at the current phase without advancing.
func (o *Osc) Sample(w Waveform) float64 {
	return Shape(w, o.phase)
}

// Next evaluates w at the current phase and then advances.
func (o *Osc) Next(w Waveform) float64 {
	s := Shape(w, o.phase)
	o.Advance()
	return s
}

// PhaseInc is the radians-per-sample step of a freq Hz oscillator.
func PhaseInc(freq, sampleRate float64) float64 {
	return TwoPi * freq / sampleRate
}

// Wrap brings phase back into [0, 2π). The common case of one increment
// past the end is a single subtraction.
func Wrap(phase float64) float64 {
	if phase >= TwoPi {
		phase -= TwoPi
		if phase >= TwoPi {
			phase = math.Mod(phase, TwoPi)
		}
	} else if phase < 0 {
		phase = math.Mod(phase, TwoPi) + TwoPi
		if phase >= TwoPi {
			phase = 0
		}
	}
	return phase
}

// Shape evaluates waveform w at phase (radians in [0, 2π)).
func Shape(w Waveform, phase float64) float64 {
	switch w {
	case Saw:
		return 2*(phase/TwoPi) - 1
	case Square:
		if phase < math.Pi {
			return 1
		}
		return -1
	case Triangle:
		frac := phase / TwoPi
		return 2*math.Abs(2*frac-1) - 1
	default:
		return math.Sin(phase)
	}
}
