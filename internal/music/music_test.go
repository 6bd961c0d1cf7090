package music

import (
	"math"
	"testing"

	"github.com/cbegin/seedloop/internal/rng"
)

func TestTimingDerivation(t *testing.T) {
	for _, bpm := range []float64{50, 60, 87.5, 119.99} {
		tm := NewTiming(bpm, 44100)
		if math.Abs(tm.BeatSec-60/bpm) > 1e-12 {
			t.Errorf("bpm %v: beat sec %v", bpm, tm.BeatSec)
		}
		if want := int(math.Round(tm.StepSec * 44100)); tm.StepSamples != want {
			t.Errorf("bpm %v: step samples %d, want %d", bpm, tm.StepSamples, want)
		}
		if math.Abs(tm.SegSec-tm.StepSec*32) > 1e-12 {
			t.Errorf("bpm %v: segment is not 32 steps", bpm)
		}
		if want := int(math.Round(tm.SegSec * 44100)); tm.SegFrames != want {
			t.Errorf("bpm %v: seg frames %d, want %d", bpm, tm.SegFrames, want)
		}
	}
}

func TestTimingAt120BPM(t *testing.T) {
	tm := NewTiming(120, 44100)
	if tm.StepSamples != 5513 { // 0.125s * 44100 = 5512.5 rounds up
		t.Fatalf("step samples = %d", tm.StepSamples)
	}
	if tm.SegFrames != 176400 {
		t.Fatalf("seg frames = %d", tm.SegFrames)
	}
	if tm.StepStart(3) != 3*5513 {
		t.Fatalf("step start = %d", tm.StepStart(3))
	}
}

func TestBPMFromUnit(t *testing.T) {
	if BPMFromUnit(0) != MinBPM {
		t.Fatal("zero draw should map to MinBPM")
	}
	if b := BPMFromUnit(0.999999); b >= MaxBPM || b < MinBPM {
		t.Fatalf("bpm %v out of range", b)
	}
}

func TestScaleDrawsFromTables(t *testing.T) {
	kinds := map[ScaleKind]int{}
	for seed := uint64(0); seed < 200; seed++ {
		r := rng.New(seed)
		s := NewScale(&r)
		found := false
		for _, root := range RootChoices {
			if s.Root == root {
				found = true
			}
		}
		if !found {
			t.Fatalf("seed %d: root %v not a choice", seed, s.Root)
		}
		switch s.Kind {
		case MajorPentatonic:
			if s.Degrees != majorPentatonic {
				t.Fatalf("major degrees mismatch: %v", s.Degrees)
			}
		case MinorPentatonic:
			if s.Degrees != minorPentatonic {
				t.Fatalf("minor degrees mismatch: %v", s.Degrees)
			}
		}
		kinds[s.Kind]++
	}
	if len(kinds) != 2 {
		t.Fatalf("expected both scale kinds across seeds, got %v", kinds)
	}
}

func TestScaleFreq(t *testing.T) {
	s := Scale{Root: 220}
	if got := s.Freq(0, 1); math.Abs(got-440) > 1e-9 {
		t.Fatalf("octave up = %v", got)
	}
	if got := s.Freq(12, 0); math.Abs(got-440) > 1e-9 {
		t.Fatalf("12 semitones = %v", got)
	}
	if got := s.Freq(7, 0); math.Abs(got-329.6275569) > 1e-6 {
		t.Fatalf("fifth = %v", got)
	}
}
