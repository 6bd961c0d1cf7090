// Package music derives tempo-dependent timing and the key/scale a seed plays in.
package music

import "math"

const (
	StepsPerBeat   = 4 // sixteenth notes
	BeatsPerBar    = 4
	StepsPerBar    = StepsPerBeat * BeatsPerBar
	BarsPerSegment = 2
	TotalSteps     = BarsPerSegment * StepsPerBar

	MinBPM = 50.0
	MaxBPM = 120.0
)

// Timing holds the sample-accurate lengths derived from one tempo.
type Timing struct {
	BPM         float64
	BeatSec     float64
	StepSec     float64
	StepSamples int
	SegSec      float64
	SegFrames   int
	SampleRate  int
}

// NewTiming derives step and segment lengths for bpm at sampleRate.
func NewTiming(bpm float64, sampleRate int) Timing {
	sr := float64(sampleRate)
	t := Timing{BPM: bpm, SampleRate: sampleRate}
	t.BeatSec = 60 / bpm
	t.StepSec = t.BeatSec / StepsPerBeat
	t.StepSamples = int(math.Round(t.StepSec * sr))
	t.SegSec = t.StepSec * TotalSteps
	t.SegFrames = int(math.Round(t.SegSec * sr))
	return t
}

// BPMFromUnit maps a uniform draw in [0,1) onto [MinBPM, MaxBPM).
func BPMFromUnit(u float32) float64 {
	return MinBPM + float64(u)*(MaxBPM-MinBPM)
}

// Samples converts a duration in seconds to a truncated sample count.
func (t Timing) Samples(sec float64) int {
	if sec <= 0 {
		return 0
	}
	return int(sec * float64(t.SampleRate))
}

// StepStart returns the segment-relative sample index of step.
func (t Timing) StepStart(step int) int {
	return step * t.StepSamples
}
